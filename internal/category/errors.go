package category

import "errors"

var ErrNotFound = errors.New("category not found")
