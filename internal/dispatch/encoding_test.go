package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBase64OrNil(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain", "aG9sYQ==", "hola", true},
		{"surrounding spaces", "  aG9sYQ==  ", "hola", true},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"embedded newline", "aG9s\nYQ==", "", false},
		{"embedded carriage return", "aG9s\rYQ==", "", false},
		{"bad length", "aG9sYQ", "", false},
		{"non alphabet", "aG9s!Q==", "", false},
		{"not base64 at all", `{"email":"x@y.z"}`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DecodeBase64OrNil(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
