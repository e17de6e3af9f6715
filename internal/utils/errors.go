package utils

import "errors"

// Common application errors used across services. Messages are part of the
// API contract: clients match on them.
var (
	ErrProductNotFound       = errors.New("Product not found")
	ErrSKUExists             = errors.New("Product with this SKU already exists")
	ErrInsufficientInventory = errors.New("Not enough inventory")
	ErrCategoryNotFound      = errors.New("Category not found")
	ErrSlugExists            = errors.New("Category with this slug already exists")
	ErrCategoryInUse         = errors.New("Category is referenced by existing products")
	ErrOrderNotFound         = errors.New("Order not found")
	ErrEmailExists           = errors.New("User already exists")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrUserNotFound          = errors.New("User not found")
)
