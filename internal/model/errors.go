package model

import "errors"

// ErrNotFound covers both "no such row" and "row not visible to the caller":
// a scoped write that affects zero rows is indistinguishable from a missing
// record, and the API deliberately reports them the same way.
var ErrNotFound = errors.New("not found or access denied")

// ErrInvalidArgument marks caller input rejected before any store access.
var ErrInvalidArgument = errors.New("invalid argument")
