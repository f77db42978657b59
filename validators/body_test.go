package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"frozo-api/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"userId":"guest_1","productId":"abc","quantity":2,"extra":true}`))
	w := httptest.NewRecorder()

	var req addRequest
	require.NoError(t, DecodeJSONBody(w, r, &req))
	assert.Equal(t, "guest_1", req.UserID)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 2, *req.Quantity)
}

func TestDecodeJSONBodyOptionalQuantity(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"userId":"guest_1","productId":"abc"}`))

	var req addRequest
	require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), r, &req))
	assert.Nil(t, req.Quantity)
}

func TestDecodeJSONBodyValidationMessages(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"productId":"abc","quantity":0}`))

	var req addRequest
	err := DecodeJSONBody(httptest.NewRecorder(), r, &req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Equal(t, "quantity must be at least 1; userId is required", apperrors.As(err).Message())
}

func TestDecodeJSONBodyStringLengths(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/admin/register", strings.NewReader(`{"email":"nope","password":"short"}`))

	var req signupRequest
	err := DecodeJSONBody(httptest.NewRecorder(), r, &req)
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email; password must be at least 8 characters", apperrors.As(err).Message())
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"userId":`))

	var req addRequest
	err := DecodeJSONBody(httptest.NewRecorder(), r, &req)
	require.Error(t, err)
	assert.Equal(t, "invalid request body", apperrors.As(err).Message())
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	huge := `{"userId":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	r := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(huge))

	var req addRequest
	err := DecodeJSONBody(httptest.NewRecorder(), r, &req)
	require.Error(t, err)
	assert.Equal(t, "request body too large", apperrors.As(err).Message())
}
