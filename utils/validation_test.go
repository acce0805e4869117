package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Valid", "john_doe42", true},
		{"MinLength", "abc", true},
		{"TooShort", "ab", false},
		{"TooLong", "this_username_is_way_too_long", false},
		{"InvalidChars", "john.doe", false},
		{"Spaces", "john doe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateUsername(tt.username)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"Valid", "user@example.com", true},
		{"Subdomain", "user@mail.example.co.in", true},
		{"NoAt", "userexample.com", false},
		{"NoDomain", "user@", false},
		{"NoTLD", "user@example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"Valid", "Sup3rSecret", true},
		{"TooShort", "Ab1xyz", false},
		{"NoUpper", "sup3rsecret", false},
		{"NoLower", "SUP3RSECRET", false},
		{"NoNumber", "SuperSecret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidatePassword(tt.password)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"WholeCoins", 100, true},
		{"TwoDecimals", 99.99, true},
		{"SingleDecimal", 10.5, true},
		{"Zero", 0, false},
		{"Negative", -5, false},
		{"ThreeDecimals", 10.999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateAmount(tt.amount)
			assert.Equal(t, tt.valid, valid)
		})
	}
}
