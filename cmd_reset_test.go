package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmReset(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := confirmReset(strings.NewReader(tt.input), &out)

		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), resetPrompt)
	}
}
