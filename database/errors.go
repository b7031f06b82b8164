package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("incorrect username and/or password")
	ErrValidation         = errors.New("invalid request")
	ErrReferential        = errors.New("referential integrity violation")
)

// NotFoundError reports an unknown natural key or id. Entity is one of
// "user", "admin", "vendor", "item", "dish", "order", "order line" or
// "offer" (both item and vendor exist, but the vendor does not sell the item).
type NotFoundError struct {
	Entity string
	Key    string
	Vendor string // set for "offer" only
}

func (e *NotFoundError) Error() string {
	if e.Entity == "offer" {
		return fmt.Sprintf("vendor '%s' does not offer dish '%s'", e.Vendor, e.Key)
	}
	return fmt.Sprintf("could not find %s '%s'", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// OfferNotFound is returned when a vendor does not sell an item.
func OfferNotFound(item, vendor string) *NotFoundError {
	return &NotFoundError{Entity: "offer", Key: item, Vendor: vendor}
}

type AlreadyExistsError struct {
	Entity string
	Key    string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// ReferentialError reports a foreign key whose target is missing, or a delete
// of a row that other rows still reference.
type ReferentialError struct {
	Entity string
	Key    string
	Reason string
}

func (e *ReferentialError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s '%s': %s", e.Entity, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s '%s' does not exist", e.Entity, e.Key)
}

func (e *ReferentialError) Is(target error) bool { return target == ErrReferential }

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "Error 1062")
}

// IsForeignKeyViolation reports whether err came from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "Error 1451") ||
		strings.Contains(msg, "Error 1452")
}
