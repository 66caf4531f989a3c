package contract

import "errors"

// ErrNoRows is returned by writes that address a record which does not exist.
var ErrNoRows = errors.New("no rows affected")
