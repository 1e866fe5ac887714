package models

import "errors"

// Domain errors shared by the stores, services and the HTTP layer. The
// HTTP layer owns the mapping to status codes; everything below it
// dispatches with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrItemNotFound    = errors.New("one or both items not found")
	ErrItemUnavailable = errors.New("one or both items are no longer available")

	ErrSwapNotFound        = errors.New("swap request not found")
	ErrAlreadyResolved     = errors.New("this swap has already been responded to")
	ErrOwnershipMismatch   = errors.New("item ownership mismatch")
	ErrRequesterCantAfford = errors.New("you have insufficient credits for the swap fee")
	ErrReceiverCantAfford  = errors.New("the other user cannot afford the swap fee right now")

	ErrInvalidAmount = errors.New("amount must be a positive number")

	ErrStorageUnavailable = errors.New("database not connected")
)
