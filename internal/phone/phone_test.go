package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "919876543210", "919876543210"},
		{"leading plus", "+919876543210", "919876543210"},
		{"interior spaces", "91 98765 43210", "919876543210"},
		{"transport suffix", "919876543210@s.whatsapp.net", "919876543210"},
		{"plus spaces and suffix", " +91 98765 43210@s.whatsapp.net ", "919876543210"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"+91 98765 43210",
		"919876543210@s.whatsapp.net",
		"98765 43210",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalizing %q twice diverged", in)
	}
}
