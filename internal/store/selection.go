package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// currentSlot is the key of the single remembered selection.
const currentSlot = "current"

// Selection is the student last chosen on this machine.
type Selection struct {
	StudentID string
	Name      string
	YearLevel int
	Avatar    string
	UpdatedAt time.Time
}

// SelectionRepo remembers which student is practicing.
type SelectionRepo interface {
	// Save replaces the remembered selection.
	Save(ctx context.Context, sel Selection) error

	// Load returns the remembered selection, or nil if there is none.
	Load(ctx context.Context) (*Selection, error)

	// Clear forgets the selection. Clearing when nothing is saved is not an error.
	Clear(ctx context.Context) error
}

// selectionRepo implements SelectionRepo with ent's SQL builder.
type selectionRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *selectionRepo) Save(ctx context.Context, sel Selection) error {
	if sel.StudentID == "" {
		return errors.New("save selection: empty student id")
	}
	if sel.UpdatedAt.IsZero() {
		sel.UpdatedAt = time.Now()
	}

	query, args := builder().
		Insert(selectionsTable.Name).
		Columns("slot", "student_id", "name", "year_level", "avatar", "updated_at").
		Values(currentSlot, sel.StudentID, sel.Name, sel.YearLevel, sel.Avatar, sel.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("slot"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

func (r *selectionRepo) Load(ctx context.Context) (*Selection, error) {
	query, args := builder().
		Select("student_id", "name", "year_level", "avatar", "updated_at").
		From(entsql.Table(selectionsTable.Name)).
		Where(entsql.EQ("slot", currentSlot)).
		Query()

	var sel Selection
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&sel.StudentID, &sel.Name, &sel.YearLevel, &sel.Avatar, &sel.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load selection: %w", err)
	}
	return &sel, nil
}

func (r *selectionRepo) Clear(ctx context.Context) error {
	query, args := builder().
		Delete(selectionsTable.Name).
		Where(entsql.EQ("slot", currentSlot)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}
