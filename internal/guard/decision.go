package guard

// Action is the permission decision a matching rule applies.
type Action string

const (
	// ActionAsk requires human confirmation before the command runs.
	ActionAsk Action = "ask"
	// ActionDeny refuses the command outright.
	ActionDeny Action = "deny"
)

// Decision is the outcome of a rule match. A nil *Decision means no rule
// matched and the command is implicitly allowed.
type Decision struct {
	Action Action
	Reason string
}

// Ask creates a confirmation decision. An empty reason is omitted from the
// emitted document.
func Ask(reason string) *Decision {
	return &Decision{Action: ActionAsk, Reason: reason}
}

// Deny creates a refusal decision.
func Deny(reason string) *Decision {
	return &Decision{Action: ActionDeny, Reason: reason}
}

// HookSpecificOutput is the inner payload of a permission decision document.
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

// Response is the document written to stdout when a rule matched.
type Response struct {
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

// NewResponse wraps a decision into the response document shape.
func NewResponse(decision *Decision) Response {
	return Response{
		HookSpecificOutput: HookSpecificOutput{
			HookEventName:            "PreToolUse",
			PermissionDecision:       string(decision.Action),
			PermissionDecisionReason: decision.Reason,
		},
	}
}

// StopOutput is the document written to stdout on a fatal condition. It tells
// the host not to proceed at all, as opposed to a deny decision which is a
// normal policy outcome.
type StopOutput struct {
	Continue   bool   `json:"continue"`
	StopReason string `json:"stopReason"`
}

// NewStopOutput builds the stop document for a fatal reason.
func NewStopOutput(reason string) StopOutput {
	return StopOutput{Continue: false, StopReason: reason}
}

// FatalError marks a condition that must stop the hook with exit status 1:
// malformed input, a misconfigured invocation, or a project boundary
// violation. Policy matches are never fatal.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return e.Reason
}
