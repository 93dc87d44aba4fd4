package dataset

import (
	"errors"
	"fmt"
)

var ErrSchema = errors.New("schema error")

// SchemaError reports a target list that does not fit the rows it is applied to.
type SchemaError struct {
	Field string
	Row   int
	Msg   string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrSchema, e.Msg)
	}
	if e.Row < 0 {
		return fmt.Sprintf("%s: field %q: %s", ErrSchema, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: field %q in row %d: %s", ErrSchema, e.Field, e.Row, e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

func schemaf(field string, row int, format string, args ...any) error {
	return &SchemaError{Field: field, Row: row, Msg: fmt.Sprintf(format, args...)}
}
