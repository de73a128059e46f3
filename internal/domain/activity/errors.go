package activity

import "errors"

// ErrSaveFailed indicates the activity collection could not be written back.
// The record that triggered the write is lost.
var ErrSaveFailed = errors.New("saving activity collection failed")
