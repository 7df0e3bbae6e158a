package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// TestParseChoice verifies the mapping of menu keys to actions.
func TestParseChoice(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Action
	}{
		{"1", model.ActionStart},
		{"2", model.ActionStop},
		{"3", model.ActionRestart},
		{"4", model.ActionStatus},
		{"5", model.ActionLogs},
		{"6", model.ActionExit},
		{" 6 ", model.ActionExit},
		{"0", model.ActionInvalid},
		{"7", model.ActionInvalid},
		{"", model.ActionInvalid},
		{"start", model.ActionInvalid},
		{"11", model.ActionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseChoice(tt.input))
		})
	}
}

// TestParseTail verifies the permissive log line count parsing.
func TestParseTail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain number", "50", 50},
		{"surrounding whitespace", " 50 ", 50},
		{"empty", "", 0},
		{"text", "abc", 0},
		{"negative", "-5", 0},
		{"explicit plus sign", "+5", 0},
		{"zero", "0", 0},
		{"decimal", "2.5", 0},
		{"overflow", "99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTail(tt.input))
		})
	}
}
