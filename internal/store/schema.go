package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// selectionsColumns holds the columns for the "selections" table.
	selectionsColumns = []*schema.Column{
		{Name: "slot", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "year_level", Type: field.TypeInt, Default: 0},
		{Name: "avatar", Type: field.TypeString, Default: "star"},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// selectionsTable holds the schema information for the "selections" table.
	selectionsTable = &schema.Table{
		Name:       "selections",
		Columns:    selectionsColumns,
		PrimaryKey: []*schema.Column{selectionsColumns[0]},
	}

	tables = []*schema.Table{
		selectionsTable,
	}
)
