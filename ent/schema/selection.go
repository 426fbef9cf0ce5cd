package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Selection remembers which student last practised on this machine.
// The table holds a single row keyed by slot.
type Selection struct {
	ent.Schema
}

func (Selection) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("slot").
			Immutable().
			Comment("Row key, always \"current\""),
		field.String("student_id").
			NotEmpty().
			Comment("Backend student identifier"),
		field.String("name"),
		field.Int("year_level").
			Default(0),
		field.String("avatar").
			Default("star").
			Comment("Avatar tag as sent by the backend"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
