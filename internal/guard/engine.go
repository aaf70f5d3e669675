package guard

// Evaluator decides a command. A nil decision means no rule matched and the
// command is implicitly allowed.
type Evaluator interface {
	Evaluate(command string) *Decision
}

// ruleEngine evaluates an ordered ruleset with first-match-wins semantics.
type ruleEngine struct {
	rules Ruleset
}

// NewRuleEngine creates a rule engine over the given ordered rules.
func NewRuleEngine(rules Ruleset) *ruleEngine {
	return &ruleEngine{
		rules: rules,
	}
}

// Evaluate scans the rules in order and returns the first matching rule's
// decision. Patterns match anywhere in the command text. Later rules are
// never consulted after a match; rule order is itself policy.
func (e *ruleEngine) Evaluate(command string) *Decision {
	for _, rule := range e.rules {
		if rule.Pattern.MatchString(command) {
			return rule.Decision
		}
	}
	return nil
}
