package businesses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"Panadería San José", "panaderia-san-jose"},
		{"  Café   Río  ", "cafe-rio"},
		{"ALL CAPS!!", "all-caps"},
		{"multi---dash__name", "multi-dash-name"},
		{"ñandú & cía.", "nandu-cia"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}
