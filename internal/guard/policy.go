package guard

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// PolicyFile is the on-disk shape of a rule-table override. When Rules is
// non-empty it replaces the builtin table entirely, in file order; otherwise
// Enumeration alone selects the builtin generation.
type PolicyFile struct {
	Enumeration EnumerationPolicy `yaml:"enumeration"`
	Rules       []PolicyRule      `yaml:"rules"`
}

// PolicyRule is one rule entry in a policy file.
type PolicyRule struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
	Reason  string `yaml:"reason"`
}

// LoadPolicyFile reads and validates a YAML policy file.
func LoadPolicyFile(path string) (*PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var policy PolicyFile
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	switch policy.Enumeration {
	case "", EnumerationDenyDestructive, EnumerationDenyAlways:
	default:
		return nil, fmt.Errorf("policy file %s: unknown enumeration policy %q", path, policy.Enumeration)
	}

	for i, rule := range policy.Rules {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("policy file %s: rule %d has no pattern", path, i+1)
		}
		if rule.Action != string(ActionAsk) && rule.Action != string(ActionDeny) {
			return nil, fmt.Errorf("policy file %s: rule %d has unknown action %q", path, i+1, rule.Action)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return nil, fmt.Errorf("policy file %s: rule %d pattern: %w", path, i+1, err)
		}
	}

	return &policy, nil
}

// Ruleset compiles the policy into an ordered rule table. The alias
// deny-list applies only to the builtin table: a file that spells out its
// own rules owns the complete policy.
func (p *PolicyFile) Ruleset(deniedAliases []string) Ruleset {
	if len(p.Rules) == 0 {
		return DefaultRuleset(p.enumeration(), deniedAliases)
	}

	rules := make(Ruleset, 0, len(p.Rules))
	for _, rule := range p.Rules {
		rules = append(rules, Rule{
			Pattern:  regexp.MustCompile(rule.Pattern),
			Decision: &Decision{Action: Action(rule.Action), Reason: rule.Reason},
		})
	}
	return rules
}

func (p *PolicyFile) enumeration() EnumerationPolicy {
	if p.Enumeration == "" {
		return EnumerationDenyDestructive
	}
	return p.Enumeration
}
