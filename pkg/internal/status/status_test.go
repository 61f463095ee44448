package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("post was not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("slug %q is already in use", "hello")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not yours")))
	assert.Equal(t, KindInvalidState, KindOf(InvalidState("comments are disabled")))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("something else")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("saving comment: %w", Conflict("parent comment belongs to a different post"))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestFromGorm(t *testing.T) {
	assert.NoError(t, FromGorm(nil, "post"))

	err := FromGorm(gorm.ErrRecordNotFound, "post")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = FromGorm(gorm.ErrDuplicatedKey, "category")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Anything else passes through untouched
	other := fmt.Errorf("connection refused")
	assert.Equal(t, other, FromGorm(other, "post"))
}

func TestErrorMessage(t *testing.T) {
	err := Conflict("tag slug %q is already in use", "golang")
	assert.Equal(t, `tag slug "golang" is already in use`, err.Error())
}
