package identity

import "errors"

var ErrUnauthenticated = errors.New("no valid identity")
