package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
	assert.Equal(t, "Invalid request format", err.Error())
	assert.Nil(t, err.Details)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("marketplace", "must be shopee or tiktok")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "marketplace", detail.Field)
}

func TestPredefinedPipelineErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, ErrEmptyBatch.StatusCode)
	assert.Equal(t, "semua file kosong atau tidak valid", ErrEmptyBatch.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, ErrNoActiveRows.StatusCode)
	assert.Equal(t, "tidak ada data setelah filter batal", ErrNoActiveRows.Message)
}
