package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		kind string
		code int
	}{
		{"NotFound", NotFoundError("missing"), KindNotFound, http.StatusNotFound},
		{"InsufficientBalance", InsufficientBalanceError("short"), KindInsufficientBalance, http.StatusBadRequest},
		{"InvalidState", InvalidStateError("already approved"), KindInvalidState, http.StatusConflict},
		{"InvalidSignature", InvalidSignatureError("bad signature"), KindInvalidSignature, http.StatusBadRequest},
		{"Upstream", UpstreamError("gateway down", errors.New("timeout")), KindUpstream, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestIsKind(t *testing.T) {
	err := InsufficientBalanceError("short")
	assert.True(t, IsKind(err, KindInsufficientBalance))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := UpstreamError("gateway unreachable", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "gateway unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}
