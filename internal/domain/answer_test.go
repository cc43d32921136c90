package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \t\n", want: ""},
		{name: "trims both sides", raw: "  Paris ", want: "Paris"},
		{name: "keeps case", raw: "PaRiS", want: "PaRiS"},
		{name: "keeps inner spaces", raw: " New  York ", want: "New  York"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "padded and lowercase", a: " Paris ", b: "paris", want: true},
		{name: "unanswered", a: "", b: "Paris", want: false},
		{name: "empty correct answer", a: "Paris", b: "", want: false},
		{name: "both empty", a: "", b: "  ", want: true},
		{name: "both blank", a: "  ", b: "", want: true},
		{name: "different", a: "London", b: "Paris", want: false},
		{name: "padded correct answer", a: "4", b: " 4\n", want: true},
		{name: "symmetric", a: "paris", b: " Paris ", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals(tt.a, tt.b))
		})
	}
}
