package repository

import "errors"

// Uniqueness conflicts surfaced by the store. Implementations translate
// their driver-specific constraint errors into these so services never
// see a raw database error.
var (
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateNickname = errors.New("nickname already in use")
)
