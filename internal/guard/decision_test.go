package guard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	tests := []struct {
		name     string
		decision *Decision
		wantJSON string
	}{
		{
			name:     "deny with reason",
			decision: Deny("NEVER run commands with find"),
			wantJSON: `{"hookSpecificOutput":{"hookEventName":"PreToolUse","permissionDecision":"deny","permissionDecisionReason":"NEVER run commands with find"}}`,
		},
		{
			name:     "ask without reason omits the reason key",
			decision: Ask(""),
			wantJSON: `{"hookSpecificOutput":{"hookEventName":"PreToolUse","permissionDecision":"ask"}}`,
		},
		{
			name:     "deny without reason omits the reason key",
			decision: Deny(""),
			wantJSON: `{"hookSpecificOutput":{"hookEventName":"PreToolUse","permissionDecision":"deny"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewResponse(tt.decision))
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(data))
		})
	}
}

func TestNewResponse_NoExtraneousKeys(t *testing.T) {
	data, err := json.Marshal(NewResponse(Ask("confirm")))
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded, 1)
	inner, ok := decoded["hookSpecificOutput"]
	require.True(t, ok)
	assert.Len(t, inner, 3)
	assert.Equal(t, "PreToolUse", inner["hookEventName"])
	assert.Equal(t, "ask", inner["permissionDecision"])
	assert.Equal(t, "confirm", inner["permissionDecisionReason"])
}

func TestNewStopOutput(t *testing.T) {
	data, err := json.Marshal(NewStopOutput("hook misconfigured"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"continue":false,"stopReason":"hook misconfigured"}`, string(data))
}

func TestFatalError_Error(t *testing.T) {
	err := &FatalError{Reason: "something went wrong"}
	assert.Equal(t, "something went wrong", err.Error())
}
