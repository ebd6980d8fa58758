package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        "en",
		"fr":                      "fr",
		"fr-CA,fr;q=0.9":          "fr",
		"de-DE,de;q=0.9,fr;q=0.8": "fr",
		"es":                      "en",
		"en-GB,fr;q=0.5":          "en",
		";;;":                     "en",
	}

	for header, want := range cases {
		assert.Equal(t, want, negotiateLanguage(header), header)
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = bearerToken("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = bearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
