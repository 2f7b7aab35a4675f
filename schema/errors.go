package schema

import (
	"errors"
)

var (
	ErrNotExist = errors.New("not_exist_record")
	ErrNotFound = errors.New("not_found")
	ErrExist    = errors.New("s3_bucket_exist")

	ErrNotAuthorized       = errors.New("not_authorized")
	ErrInvalidArgument     = errors.New("invalid_argument")
	ErrStateConflict       = errors.New("state_conflict")
	ErrInsufficientPayment = errors.New("insufficient_payment")
	ErrInsufficientBalance = errors.New("insufficient_balance")

	ErrNotImplement = errors.New("method not implement")
)
