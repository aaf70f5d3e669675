package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule pairs a pattern with the decision to apply when the pattern matches
// anywhere in the command text.
type Rule struct {
	Pattern  *regexp.Regexp
	Decision *Decision
}

// Ruleset is an ordered rule table. Order is policy: evaluation is
// first-match-wins, so an earlier rule shadows any later rule it overlaps.
type Ruleset []Rule

// EnumerationPolicy selects how file-enumeration utilities (find, bfs) are
// treated across rule-set generations.
type EnumerationPolicy string

const (
	// EnumerationDenyDestructive denies find/bfs only when combined with an
	// execution or deletion flag.
	EnumerationDenyDestructive EnumerationPolicy = "destructive-only"
	// EnumerationDenyAlways denies find/bfs unconditionally.
	EnumerationDenyAlways EnumerationPolicy = "always"
)

// askRule creates a rule requiring confirmation. The pattern must compile;
// the builtin tables are static so a bad pattern is a programming error.
func askRule(pattern string, reason string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Decision: Ask(reason)}
}

// denyRule creates a rule refusing the command.
func denyRule(pattern string, reason string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Decision: Deny(reason)}
}

// DefaultRuleset builds the builtin rule table. The enumeration policy picks
// between the two observed generations of find/bfs handling; deniedAliases is
// an externally supplied list of alias names to refuse as whole words.
func DefaultRuleset(enumeration EnumerationPolicy, deniedAliases []string) Ruleset {
	var rules Ruleset

	switch enumeration {
	case EnumerationDenyAlways:
		rules = append(rules,
			denyRule(`\b(bfs|find)\b`, "NEVER run commands with find"),
		)
	default:
		rules = append(rules,
			denyRule(`\b(bfs|find).*-exec`, "NEVER run commands with find"),
			denyRule(`\b(bfs|find).*-delete`, "NEVER delete files with find."),
		)
	}

	rules = append(rules,
		askRule(`\bsudo\b`, ""),
		denyRule(`\brm.*--no-preserve-root`, ""),
		askRule(`\brm.*(-[rRf]+|--recursive|--force)`, ""),
		denyRule(`\balias\b`, "Shell aliases are not allowed"),
	)

	if rule, ok := deniedAliasRule(deniedAliases); ok {
		rules = append(rules, rule)
	}

	return rules
}

// deniedAliasRule builds a whole-word alternation over the deny-list. Names
// are quoted so a list entry can never widen the pattern; empty entries are
// dropped. Returns false when the list leaves nothing to match.
func deniedAliasRule(names []string) (Rule, bool) {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	if len(quoted) == 0 {
		return Rule{}, false
	}

	pattern := fmt.Sprintf(`\b(%s)\b`, strings.Join(quoted, "|"))
	return denyRule(pattern, "This alias is not allowed"), true
}

// ParseDeniedAliases splits a comma-separated deny-list into alias names,
// trimming whitespace and dropping empty entries.
func ParseDeniedAliases(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var names []string
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
