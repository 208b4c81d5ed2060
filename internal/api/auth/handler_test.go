package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPasswordStrong(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "secret123", true},
		{"too short", "ab1", false},
		{"letters only", "onlyletters", false},
		{"digits only", "12345678", false},
		{"mixed with symbols", "pa55word!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isPasswordStrong(tc.password))
		})
	}
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, isEmailValid("editor@example.org"))
	assert.True(t, isEmailValid("first.last+tag@sub.example.co"))
	assert.False(t, isEmailValid("no-at-sign"))
	assert.False(t, isEmailValid("missing@tld"))
}

func TestGenerateVerificationToken(t *testing.T) {
	a := generateVerificationToken()
	b := generateVerificationToken()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
