// Package domain contains the catalog's value objects and aggregates.
// These types have no knowledge of databases, HTTP, or any infrastructure concerns.
//
// Every value object is created through its factory and reports rule
// violations as a result.Result; aggregates are built from value objects and
// are never handed out in an invalid state.
package domain

import "errors"

// Errors for lookups and authorization outside of construction.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// Rule names shared by several value objects. Together with the field name
// they form the stable ErrorCode "{Field}.{Rule}".
const (
	RuleRequired      = "Required"
	RuleMaximumLength = "MaximumLength"
	RuleMinimumLength = "MinimumLength"
	RuleInvalid       = "Invalid"
	RuleInvalidFormat = "InvalidFormat"
	RuleAlreadyExists = "AlreadyExists"
)
