package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMobileNumber(t *testing.T) {
	valid := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"09876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"98765-43210", "+919876543210"},
		{" 6123456789 ", "+916123456789"},
	}
	for _, tc := range valid {
		got, err := NormalizeMobileNumber(tc.in)
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	invalid := []string{
		"",
		"12345",
		"5876543210",
		"98765432101",
		"987654321a",
		"+12025550123",
	}
	for _, in := range invalid {
		_, err := NormalizeMobileNumber(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCustomerIDBase(t *testing.T) {
	cases := []struct {
		name   string
		mobile string
		want   string
	}{
		{"Priya Sharma", "+919876543210", "PRI3210"},
		{"Jo", "+919876543210", "JOX3210"},
		{"A. K. Rao", "+919812340000", "AKR0000"},
		{"", "+919876543210", "XXX3210"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CustomerIDBase(tc.name, tc.mobile), "name %q", tc.name)
	}
}
