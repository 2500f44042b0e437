package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

func TestStrongPasswordValidation(t *testing.T) {
	cases := map[string]bool{
		"Sup3r$ecret": true,
		"short1$A":    true,
		"alllowercase1$": false,
		"NoNumbers$here": false,
		"NoSpecials123A": false,
		"2short$A":       true,
		"tiny":           false,
	}

	for password, want := range cases {
		err := ValidateStruct(&passwordFixture{Password: password})
		if want {
			assert.NoError(t, err, password)
		} else {
			assert.Error(t, err, password)
		}
	}
}

type usernameFixture struct {
	Username string `validate:"username"`
}

func TestUsernameValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&usernameFixture{Username: "valid_user_42"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "ab"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "has spaces"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "dash-not-ok"}))
}

type methodFixture struct {
	Method string `validate:"payout_method"`
}

func TestPayoutMethodValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&methodFixture{Method: "UPI"}))
	assert.NoError(t, ValidateStruct(&methodFixture{Method: "bank_transfer"}))
	assert.NoError(t, ValidateStruct(&methodFixture{Method: "PAYPAL"}))
	assert.Error(t, ValidateStruct(&methodFixture{Method: "CARRIER_PIGEON"}))
}
