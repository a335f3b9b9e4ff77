package otp

import (
	"errors"
	"time"
)

var (
	// ErrExpired indicates no pending code exists or its window has passed.
	ErrExpired = errors.New("otp expired or missing")
	// ErrInvalid indicates the submitted code does not match the pending one.
	ErrInvalid = errors.New("otp invalid")
	// ErrNotVerified indicates a reset was attempted before a successful verify.
	ErrNotVerified = errors.New("otp not verified")
	// ErrMailFailure indicates the code was recorded but could not be mailed.
	ErrMailFailure = errors.New("otp mail dispatch failed")
)

// Record is the pending one-time passcode for a single account. At most one
// live record exists per account identifier; a new request overwrites the
// prior one. Expiry is checked at read time, never swept proactively.
type Record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

// ExpiredAt reports whether the record is logically dead at the given instant.
func (r Record) ExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
