package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	valid := []string{"bob", "alice_99", "A_b_C", strings.Repeat("x", 30)}
	for _, v := range valid {
		assert.Nil(t, Username("username", v), v)
	}

	invalid := []string{"", "ab", "has space", "dots.not.ok", "emoji🙂", strings.Repeat("x", 31)}
	for _, v := range invalid {
		assert.NotNil(t, Username("username", v), v)
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		pw string
		ok bool
	}{
		{"Password1", true},
		{"aB3aB3aB3", true},
		{"Short1", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{strings.Repeat("Aa1", 43), false}, // 129 chars
	}
	for _, c := range cases {
		err := Password("password", c.pw)
		if c.ok {
			assert.Nil(t, err, c.pw)
		} else {
			assert.NotNil(t, err, c.pw)
		}
	}
}

func TestURL(t *testing.T) {
	assert.Nil(t, URL("website", ""))
	assert.Nil(t, URL("website", "https://example.com/path"))
	assert.Nil(t, URL("website", "http://example.com"))

	assert.NotNil(t, URL("website", "ftp://example.com"))
	assert.NotNil(t, URL("website", "javascript:alert(1)"))
	assert.NotNil(t, URL("website", "example.com"))
	assert.NotNil(t, URL("website", "https://"))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "a@b.co"))
	assert.NotNil(t, Email("email", "not-an-email"))
	assert.NotNil(t, Email("email", ""))
}

func TestCollect(t *testing.T) {
	out := Collect(
		Required("a", ""),
		Required("b", "present"),
		MaxLen("c", "toolong", 3),
	)
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Field)
	assert.Equal(t, "c", out[1].Field)
}
