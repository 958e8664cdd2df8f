package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("no")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindConflict, KindOf(Conflict("busy")))
	assert.Equal(t, KindInternal, KindOf(errors.New("driver exploded")))
	assert.Equal(t, KindInternal, KindOf(Internal(errors.New("x"), "failed")))
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("outer context: %w", NotFound("record not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "record not found", MessageOf(err))
}

func TestMessageOfHidesUnknownErrors(t *testing.T) {
	assert.Equal(t, "internal error", MessageOf(errors.New("pq: relation missing")))
}

func TestInternalPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "failed to load asset")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load asset", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	assert.ErrorIs(t, NotFound("asset not found"), NotFound("record not found"))
	assert.NotErrorIs(t, NotFound("asset not found"), Conflict("record busy"))
}

func TestMessageFormatting(t *testing.T) {
	err := Validation("code %q already exists in this organization", "srv-1")
	assert.Equal(t, `code "srv-1" already exists in this organization`, MessageOf(err))
}
