package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyReviewed    = errors.New("act already reviewed")
	ErrNotPending         = errors.New("only pending acts can be modified")
	ErrIdentityTaken      = errors.New("email or username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
