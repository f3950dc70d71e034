package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserEmailColumnUsesBinaryCollation(t *testing.T) {
	field, ok := reflect.TypeOf(User{}).FieldByName("Email")
	assert.True(t, ok)

	// Differently-cased emails are distinct users, so the column must not
	// fall back to MySQL's case-insensitive default collation.
	assert.Contains(t, field.Tag.Get("gorm"), "COLLATE utf8mb4_bin")
	assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex")
}
