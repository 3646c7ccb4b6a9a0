package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidGoal        = errors.New("invalid daily goal")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
