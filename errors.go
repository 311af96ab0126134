package facoding

import (
	"fmt"

	"github.com/pkg/errors"
)

// CodecError reports a contract violation by the caller: an invalid
// alphabet size, a symbol out of range, a mode mismatch, and so on.
// These are programming errors, not recoverable runtime conditions,
// so the library panics with one rather than returning it.
type CodecError struct {
	Op     string
	Detail string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("facoding: %s: %s", e.Op, e.Detail)
}

func codecError(op, detail string) error {
	return errors.WithStack(&CodecError{Op: op, Detail: detail})
}

// fail panics with a CodecError carrying a captured stack trace.
func fail(op, detail string) {
	panic(codecError(op, detail))
}
