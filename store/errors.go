package store

import "errors"

// Domain-rule violations. Handlers map these onto HTTP statuses; every
// one of them leaves the catalog completely unchanged.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrLocationNotFound  = errors.New("location not found")
	ErrInsufficientStock = errors.New("insufficient stock at source location")
	ErrInvalidRoute      = errors.New("invalid transfer route")
	ErrDuplicateLocation = errors.New("location already exists")
	ErrLocationInUse     = errors.New("location still holds stock")
	ErrDuplicateUser     = errors.New("username already taken")
	ErrLastAdmin         = errors.New("cannot remove the last admin")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidUser       = errors.New("invalid user")
)
