package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldLayout is a reusable, named template of custom field names. Only
// names are captured — applying a layout never restores values.
type FieldLayout struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	Name      string    `db:"name" json:"name"`
	Fields    []string  `db:"fields" json:"fields"`
}

// NewFieldLayout snapshots the names of the given working fields into a
// layout. Saving an empty field set is rejected with no side effect.
func NewFieldLayout(name string, fields []CustomField) (FieldLayout, error) {
	if len(fields) == 0 {
		return FieldLayout{}, fmt.Errorf("%w: layout needs at least one field", ErrValidation)
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return FieldLayout{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Name:      name,
		Fields:    names,
	}, nil
}

// Apply materializes the layout as fresh custom fields with empty values.
// The result replaces the editor's working set entirely; it is a template
// apply, not a data restore.
func (l FieldLayout) Apply() []CustomField {
	fields := make([]CustomField, len(l.Fields))
	for i, name := range l.Fields {
		fields[i] = CustomField{
			ID:    uuid.New(),
			Name:  name,
			Value: "",
		}
	}
	return fields
}
