package svghash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", "1"},
		{"1.0", "1"},
		{"0.50", "0.5"},
		{".5", "0.5"},
		{"+5", "5"},
		{"-0", "0"},
		{"1e2", "100"},
		{" 5 ", "5"},
		{"0 0 100.0 100", "0 0 100 100"},
		{"0\t0\n100  100", "0 0 100 100"},
		{"5px", "5px"},
		{"red", "red"},
		{"#ff0000", "#ff0000"},
		{"display: none;", "display: none;"},
		{"M 0 0 L 10.0 0", "M 0 0 L 10 0"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "%q", tt.in)
	}
}
