package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type shippingFixture struct {
	PhoneNumber string `validate:"required,len=11,numeric"`
	Address     string `validate:"required,max=200"`
}

func TestValidateStruct_ValidValueReturnsNil(t *testing.T) {
	errs := ValidateStruct(shippingFixture{PhoneNumber: "01234567890", Address: "42 Harbor Lane"})
	assert.Nil(t, errs)
}

func TestValidateStruct_ReportsFieldMessages(t *testing.T) {
	cases := []struct {
		name    string
		fixture shippingFixture
		field   string
	}{
		{"short phone", shippingFixture{PhoneNumber: "12345", Address: "a"}, "PhoneNumber"},
		{"non-digit phone", shippingFixture{PhoneNumber: "0123456789x", Address: "a"}, "PhoneNumber"},
		{"missing address", shippingFixture{PhoneNumber: "01234567890"}, "Address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateStruct(tc.fixture)
			assert.Contains(t, errs, tc.field)
		})
	}
}
