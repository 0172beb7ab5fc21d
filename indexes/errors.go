package indexes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIndexNotFound     = errors.New("indexes: index not found")
	ErrIndexCodeRequired = errors.New("indexes: index code is required")
	ErrIndexPathRequired = errors.New("indexes: index document path is required")
	ErrBrokenReference   = errors.New("indexes: entry references missing post")
)

// BrokenReferenceError reports index entries whose paths resolve to no stored
// post. Strict syncs fail with this error; lax syncs record the paths instead.
type BrokenReferenceError struct {
	Code  string
	Paths []string
}

func (e *BrokenReferenceError) Error() string {
	if e == nil || len(e.Paths) == 0 {
		return ErrBrokenReference.Error()
	}
	return fmt.Sprintf("%s: %s", ErrBrokenReference.Error(), strings.Join(e.Paths, ", "))
}

func (e *BrokenReferenceError) Unwrap() error {
	return ErrBrokenReference
}
