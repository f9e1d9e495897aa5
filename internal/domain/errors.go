package domain

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownPart    = errors.New("unknown part")
	ErrTooManyPickups = errors.New("too many pickup points for exhaustive route search")
	ErrInvalidPoint   = errors.New("point coordinates must be finite")
)
