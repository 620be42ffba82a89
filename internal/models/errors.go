package models

import "errors"

var (
	ErrInvalidAirportCode = errors.New("invalid airport code")
	ErrOutOfRange         = errors.New("parameter out of range")
	ErrMissingHistory     = errors.New("no traffic history for airport")
	ErrNoBaseline         = errors.New("baseline year not present in traffic history")
	ErrTickAborted        = errors.New("tick aborted")
)
