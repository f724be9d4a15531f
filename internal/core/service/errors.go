package service

import "errors"

var ErrNotOwner = errors.New("todo does not belong to the current user")

// ErrLocalStore marks a failed wipe or commit of the local store. The store
// state is unknown after one, so callers fail the whole attempt.
var ErrLocalStore = errors.New("local store failure")
