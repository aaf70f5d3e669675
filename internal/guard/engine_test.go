package guard

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRuleEngine(t *testing.T) {
	tests := []struct {
		name  string
		rules Ruleset
	}{
		{
			name:  "creates engine with no rules",
			rules: Ruleset{},
		},
		{
			name: "creates engine with one rule",
			rules: Ruleset{
				denyRule(`\bsudo\b`, ""),
			},
		},
		{
			name: "creates engine with multiple rules",
			rules: Ruleset{
				denyRule(`\bsudo\b`, ""),
				askRule(`\brm\b`, ""),
				denyRule(`\balias\b`, ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRuleEngine(tt.rules)
			assert.NotNil(t, got)
			assert.Equal(t, len(tt.rules), len(got.rules))
		})
	}
}

func TestRuleEngine_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		rules   Ruleset
		command string
		want    *Decision
	}{
		{
			name:    "no rules returns nil",
			rules:   Ruleset{},
			command: "rm -rf /",
			want:    nil,
		},
		{
			name: "no matching rule returns nil",
			rules: Ruleset{
				denyRule(`\bsudo\b`, "no escalation"),
			},
			command: "ls -la",
			want:    nil,
		},
		{
			name: "first rule matches",
			rules: Ruleset{
				denyRule(`\bsudo\b`, "no escalation"),
				askRule(`\brm\b`, "confirm deletion"),
			},
			command: "sudo apt update",
			want:    Deny("no escalation"),
		},
		{
			name: "second rule matches when first does not",
			rules: Ruleset{
				denyRule(`\bsudo\b`, "no escalation"),
				askRule(`\brm\b`, "confirm deletion"),
			},
			command: "rm build.log",
			want:    Ask("confirm deletion"),
		},
		{
			name: "first match wins when multiple rules match",
			rules: Ruleset{
				denyRule(`--no-preserve-root`, "unconditional"),
				askRule(`\brm\b`, "confirm deletion"),
			},
			command: "rm --no-preserve-root -rf /",
			want:    Deny("unconditional"),
		},
		{
			name: "order decides which of two matching rules applies",
			rules: Ruleset{
				askRule(`\brm\b`, "confirm deletion"),
				denyRule(`--no-preserve-root`, "unconditional"),
			},
			command: "rm --no-preserve-root -rf /",
			want:    Ask("confirm deletion"),
		},
		{
			name: "pattern matches anywhere in the command",
			rules: Ruleset{
				askRule(`\bsudo\b`, ""),
			},
			command: "echo done && sudo systemctl restart nginx",
			want:    Ask(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewRuleEngine(tt.rules)
			got := engine.Evaluate(tt.command)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleEngine_Evaluate_ShortCircuits(t *testing.T) {
	// A later rule with an always-matching pattern must never be reached
	// once an earlier rule matched.
	rules := Ruleset{
		denyRule(`\bsudo\b`, "first"),
		Rule{Pattern: regexp.MustCompile(``), Decision: Deny("catch-all")},
	}

	engine := NewRuleEngine(rules)

	assert.Equal(t, Deny("first"), engine.Evaluate("sudo reboot"))
	assert.Equal(t, Deny("catch-all"), engine.Evaluate("ls"))
}
