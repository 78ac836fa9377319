package exposure

import "errors"

var ErrInvalidEmail = errors.New("exposed email is empty")
