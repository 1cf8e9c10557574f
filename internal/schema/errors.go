package schema

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnknownEventType marks a timeline event whose type tag has no decoder.
var ErrUnknownEventType = crerr.New("unknown timeline event type")

// SchemaValidationError reports the first offending field of a payload.
type SchemaValidationError struct {
	Path   string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed at %s: %s", e.Path, e.Reason)
}

// UnknownEventTypeError is fatal for the whole timeline payload.
type UnknownEventTypeError struct {
	Path string
	Type string
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown timeline event type %q at %s", e.Type, e.Path)
}

func (e *UnknownEventTypeError) Unwrap() error {
	return ErrUnknownEventType
}
