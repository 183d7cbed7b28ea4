package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"goldenbites/internal/apperror"
)

func TestKindOf(t *testing.T) {
	err := apperror.New(apperror.KindNotFound, "order not found")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	wrapped := fmt.Errorf("service: %w", err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(wrapped))

	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(errors.New("plain")))
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(nil))
}

func TestMessageOf(t *testing.T) {
	err := apperror.Wrap(apperror.KindTransient, "storage unavailable", errors.New("dial tcp: refused"))
	assert.Equal(t, "storage unavailable", apperror.MessageOf(err))
	assert.Equal(t, "internal error", apperror.MessageOf(errors.New("plain")))
}

func TestErrorIs_MatchesByKind(t *testing.T) {
	a := apperror.New(apperror.KindConflict, "order already acknowledged")
	b := apperror.New(apperror.KindConflict, "different message")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, apperror.New(apperror.KindState, "x")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("constraint violated")
	err := apperror.Wrap(apperror.KindIntegrity, "storage rejected the write", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "integrity")
	assert.Contains(t, err.Error(), "constraint violated")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", apperror.KindValidation.String())
	assert.Equal(t, "not_found", apperror.KindNotFound.String())
	assert.Equal(t, "unknown", apperror.KindUnknown.String())
}
