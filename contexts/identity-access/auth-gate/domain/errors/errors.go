package errors

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidAdminInput  = errors.New("invalid admin input")
	ErrDuplicateAdmin     = errors.New("admin with this email already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrVoterNotFound      = errors.New("voter not found")
)
