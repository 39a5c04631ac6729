package service

import "errors"

var (
	ErrInvalidTerm       = errors.New("term must be one of 5, 10, 15, 20, 25 or 30 years")
	ErrUnknownField      = errors.New("unknown calculator field")
	ErrSessionNotFound   = errors.New("calculator session not found")
	ErrInvalidAmount     = errors.New("invalid loan amount")
	ErrInvalidRate       = errors.New("invalid interest rate")
	ErrInvalidTermLength = errors.New("invalid loan term")
)
