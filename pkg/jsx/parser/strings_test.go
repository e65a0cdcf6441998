package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"a\nb"`, "a\nb"},
		{`'it\'s'`, "it's"},
		{`"A\x42\u{43}"`, "ABC"},
		{`"\q"`, "q"},
		{`"\u12"`, "u12"},
		{`""`, ""},
		{`x`, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, unquote(tt.raw))
		})
	}
}
