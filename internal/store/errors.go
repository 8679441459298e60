package store

import (
	"encoding/json"
	"fmt"
)

// ErrCorruptSnapshot indicates a stored snapshot could not be decoded.
type ErrCorruptSnapshot struct {
	ID      int
	Content json.RawMessage
	Err     error
}

func (e *ErrCorruptSnapshot) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("corrupt snapshot %d: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("corrupt snapshot: %v", e.Err)
}

func (e *ErrCorruptSnapshot) Unwrap() error { return e.Err }
