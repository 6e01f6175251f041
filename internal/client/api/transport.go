package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ovasilenko/breedbook/internal/common"
)

// TokenSource yields the current bearer credential, if any. The session
// manager implements it.
type TokenSource interface {
	Token() (string, bool)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() (string, bool)

func (f TokenSourceFunc) Token() (string, bool) { return f() }

// authTransport augments outbound requests: a bearer Authorization header
// when a credential is available, and a fresh request id for log
// correlation. Absence of a credential is not an error; the request is
// forwarded unmodified apart from the id.
type authTransport struct {
	base http.RoundTripper
	ts   TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per the RoundTripper contract the original request is not mutated.
	clone := req.Clone(req.Context())
	clone.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if t.ts != nil {
		if token, ok := t.ts.Token(); ok {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
