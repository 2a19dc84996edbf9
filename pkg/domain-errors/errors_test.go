package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOfWalksWrapChain(t *testing.T) {
	base := New(CodeNotFound, "product not found")
	wrapped := fmt.Errorf("lookup failed: %w", base)

	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeConflict))
}

func TestHasCodeSeesNestedDomainErrors(t *testing.T) {
	inner := New(CodeNotFound, "product not found")
	outer := Wrap(inner, CodeUnavailable, "catalog lookup failed")

	assert.Equal(t, CodeUnavailable, CodeOf(outer), "CodeOf reports the outermost code")
	assert.True(t, HasCode(outer, CodeUnavailable))
	assert.True(t, HasCode(outer, CodeNotFound), "inner domain codes stay visible")
	assert.False(t, HasCode(outer, CodeConflict))

	// Non-domain wrappers between domain errors do not break the walk.
	layered := Wrap(fmt.Errorf("retrying: %w", inner), CodeInternal, "gave up")
	assert.True(t, HasCode(layered, CodeNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "case management unreachable")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Contains(t, err.Error(), "case management unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeInvalidInput:       http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeUnavailable:        http.StatusServiceUnavailable,
		CodeInvariantViolation: http.StatusInternalServerError,
		CodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
