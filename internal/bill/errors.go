package bill

import "errors"

var ErrNotFound = errors.New("bill not found")
