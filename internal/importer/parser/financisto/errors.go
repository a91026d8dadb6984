package financisto

import (
	"errors"
	"fmt"
)

var (
	ErrNotABackup          = errors.New("not a valid Financisto backup")
	ErrUnterminatedEntity  = errors.New("entity block is not terminated with $$")
	ErrUnexpectedEntityEnd = errors.New("$$ outside of an entity block")
	ErrFieldMissing        = errors.New("required field is missing")
)

// DecodeError is returned when a field of a record cannot be decoded.
type DecodeError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
