package domain

import "errors"

var (
	ErrInvalidProductName = errors.New("product name is required")
	ErrInvalidPrice       = errors.New("price must be a non-negative number")
	ErrProductNotFound    = errors.New("product not found")
)
