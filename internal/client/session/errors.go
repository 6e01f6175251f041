package session

import "errors"

// ErrNotAuthenticated reports a failed revalidation or a missing
// credential. The failed remote cause is wrapped underneath.
var ErrNotAuthenticated = errors.New("not authenticated")
