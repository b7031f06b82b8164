package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		message  string
	}{
		{&NotFoundError{Entity: "item", Key: "Tea"}, ErrNotFound, "could not find item 'Tea'"},
		{OfferNotFound("Tea", "Cafe"), ErrNotFound, "vendor 'Cafe' does not offer dish 'Tea'"},
		{&AlreadyExistsError{Entity: "user", Key: "bob"}, ErrAlreadyExists, "user 'bob' already exists"},
		{&ReferentialError{Entity: "vendor", Key: "7"}, ErrReferential, "vendor '7' does not exist"},
		{&ValidationError{Field: "price", Message: "must not be negative"}, ErrValidation, "price: must not be negative"},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("wrapped: %w", tt.err)
		assert.ErrorIs(t, wrapped, tt.sentinel)
		assert.EqualError(t, tt.err, tt.message)
	}
}

func TestConstraintClassification(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, IsUniqueViolation(errors.New("Error 1062 (23000): Duplicate entry 'x'")))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyViolation(errors.New("UNIQUE constraint failed")))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%pizza%", containsPattern("Pizza"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%!!%", containsPattern("!"))
	assert.Equal(t, "%café%", containsPattern("CAFÉ"))
}
