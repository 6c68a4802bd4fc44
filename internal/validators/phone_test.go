package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+55 (11) 98765-4321":         "5511987654321",
		"11 98765-4321":               "5511987654321",
		"551198765432@s.whatsapp.net": "551198765432",
		"011 3333-4444":               "551133334444",
		"abc":                         "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("5511987654321"))
	assert.False(t, IsPhoneValid("12345"))
	assert.False(t, IsPhoneValid(""))
	assert.False(t, IsPhoneValid("1234567890123456"))
}

