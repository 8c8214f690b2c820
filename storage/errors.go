package storage

import "errors"

var ErrItemNotFound = errors.New("item not found in storage")
var ErrItemAlreadyExists = errors.New("item already exists in storage")
