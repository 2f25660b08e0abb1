package services

import "errors"

// Expected, user-facing outcomes of engine operations. Controllers map these
// to 4xx responses; anything else is a 500.
var (
	ErrForbidden              = errors.New("access to this resource is not allowed")
	ErrNotFound               = errors.New("record not found")
	ErrCapacityExceeded       = errors.New("no capacity remaining for this date")
	ErrRoomConflict           = errors.New("room is already booked for the requested period")
	ErrInsufficientTicket     = errors.New("no sessions remaining on ticket contract")
	ErrInvalidInterval        = errors.New("checkout must be after checkin")
	ErrInvalidToken           = errors.New("invalid QR code")
	ErrTokenExpired           = errors.New("QR code expired")
	ErrStoreMismatch          = errors.New("QR code does not belong to this store")
	ErrInvalidStateTransition = errors.New("reservation state does not allow this operation")
	ErrConflict               = errors.New("concurrent update detected, please retry")
)
