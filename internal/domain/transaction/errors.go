package transaction

import "fmt"

// ErrMissingField reports a record inside the requested period that lacks a
// required field. It fails the whole normalization run.
type ErrMissingField struct {
	Index         int
	TransactionID TransactionID
	Field         string
}

func (e ErrMissingField) Error() string {
	return fmt.Sprintf("transaction %q at index %d is missing required field %s", e.TransactionID, e.Index, e.Field)
}

// Is matches any ErrMissingField when the target has no Field set.
func (e ErrMissingField) Is(target error) bool {
	t, ok := target.(ErrMissingField)
	if !ok {
		return false
	}
	if t.Field == "" {
		return true
	}
	return e.Field == t.Field && e.Index == t.Index
}
