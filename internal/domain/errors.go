package domain

import "errors"

var (
	ErrInvalidCapacity   = errors.New("capacity must be positive")
	ErrInvalidLeg        = errors.New("invalid delivery step")
	ErrEmptyDeliveryID   = errors.New("delivery id must not be empty")
	ErrDuplicateDelivery = errors.New("duplicate delivery id")
)
