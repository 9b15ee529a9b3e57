package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterMerchantRequest{
		BusinessName: "  Cafe Beirut  ",
		FirstName:    " Rami ",
		Email:        "  owner@cafe.example  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Cafe Beirut", req.BusinessName)
	assert.Equal(t, "Rami", req.FirstName)
	assert.Equal(t, "owner@cafe.example", req.Email)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := RegisterCustomerRequest{
		FullName:    "customer <script>alert('x')</script>",
		PhoneNumber: "+9611700000",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.FullName, "&lt;script&gt;")
	assert.NotContains(t, req.FullName, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	email := "  customer@example.com  "
	req := RegisterCustomerRequest{
		FullName:    "Lina",
		PhoneNumber: "+9611700001",
		Email:       &email,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "customer@example.com", *req.Email)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := RegisterCustomerRequest{
		FullName:    "Lina",
		PhoneNumber: "+9611700001",
		Email:       nil,
	}
	SanitizeStruct(&req)
	assert.Nil(t, req.Email)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}
