package utils

import "errors"

// ValidationError signals malformed input: bad time format, wrong slot
// duration, bad phone shape.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// NotFoundError signals an unknown slot, booking or user id.
type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string { return e.Msg }

// ConflictError signals a full/inactive slot, a duplicate booking, a slot
// with existing bookings on delete, or a lost concurrent increment.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string { return e.Msg }

// InvalidStateError signals an illegal status transition or a counter
// decrement below zero.
type InvalidStateError struct {
	Msg string
}

func (e InvalidStateError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var e ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e ConflictError
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e InvalidStateError
	return errors.As(err, &e)
}
