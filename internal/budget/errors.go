package budget

import "errors"

var ErrNotFound = errors.New("budget not found")
