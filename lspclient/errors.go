package lspclient

import (
	"fmt"
	"strings"

	"github.com/lspsansio/lspclient/jsonrpc2"
	errors "golang.org/x/xerrors"
)

// ErrUnknownResponseID is the sentinel wrapped when a Response arrives whose
// ID is not in the correlation table (spec.md §7: fatal, indicates server
// misbehavior).
var ErrUnknownResponseID = errors.New("lspclient: response id not found in correlation table")

// InvalidStateError reports that an operation was invoked outside its
// permitted lifecycle state set (spec.md §4.4, §7). It is a programmer
// error: the session is left unmodified.
type InvalidStateError struct {
	Op    string
	State State
	Want  []State
}

func (e *InvalidStateError) Error() string {
	names := make([]string, len(e.Want))
	for i, w := range e.Want {
		names[i] = w.String()
	}
	return fmt.Sprintf("lspclient: %s: invalid state %s, want one of [%s]", e.Op, e.State, strings.Join(names, ", "))
}

// UnknownResponseIDError wraps ErrUnknownResponseID with the offending id.
type UnknownResponseIDError struct {
	ID jsonrpc2.ID
}

func (e *UnknownResponseIDError) Error() string {
	return fmt.Sprintf("%v: id=%s", ErrUnknownResponseID, e.ID)
}

func (e *UnknownResponseIDError) Unwrap() error { return ErrUnknownResponseID }
