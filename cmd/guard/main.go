package main

import (
	"fmt"
	"os"

	"github.com/guardhooks/claude-guard/internal/guard"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-guard",
		Short: "Claude Code guard for shell command execution",
		Long:  `A Claude Code PreToolUse hook that inspects Bash commands before execution and denies or asks for confirmation on destructive command patterns.`,
	}

	rootCmd.AddCommand(newPreToolUseCmd())

	return rootCmd
}

type preToolUseOptions struct {
	policyPath      string
	deniedAliases   string
	denyEnumeration bool
	logPath         string
}

func newPreToolUseCmd() *cobra.Command {
	opts := &preToolUseOptions{}

	cmd := &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Evaluate a Bash command against the guard rules",
		Long: `Reads a PreToolUse hook request from stdin as JSON and evaluates the command
against an ordered rule table. Writes a permission decision to stdout when a
rule matches, nothing when the command is allowed, and a stop document on a
fatal misconfiguration. Exits 0 on completion, 1 on a fatal condition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, opts)
			if err != nil {
				return err
			}

			if code := runner.Run(); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.policyPath, "policy", os.Getenv("CLAUDE_GUARD_POLICY"),
		"path to a YAML policy file replacing the builtin rule table")
	cmd.Flags().StringVar(&opts.deniedAliases, "denied-aliases", os.Getenv("CLAUDE_GUARD_DENIED_ALIASES"),
		"comma-separated alias names to deny as whole words")
	cmd.Flags().BoolVar(&opts.denyEnumeration, "deny-enumeration", false,
		"deny find/bfs unconditionally instead of only with -exec/-delete")
	cmd.Flags().StringVar(&opts.logPath, "log", os.Getenv("CLAUDE_GUARD_LOG"),
		"path to an append-only decision log (disabled when empty)")

	return cmd
}

// newRunner assembles the rule table and protocol runner from flags and
// environment. Configuration errors surface as ordinary command errors;
// they happen before any request is read.
func newRunner(cmd *cobra.Command, opts *preToolUseOptions) (*guard.Runner, error) {
	deniedAliases := guard.ParseDeniedAliases(opts.deniedAliases)

	var rules guard.Ruleset
	if opts.policyPath != "" {
		policy, err := guard.LoadPolicyFile(opts.policyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
		rules = policy.Ruleset(deniedAliases)
	} else {
		enumeration := guard.EnumerationDenyDestructive
		if opts.denyEnumeration {
			enumeration = guard.EnumerationDenyAlways
		}
		rules = guard.DefaultRuleset(enumeration, deniedAliases)
	}

	projectRoot, err := guard.ResolveProjectRoot(os.Getenv("CLAUDE_PROJECT_DIR"))
	if err != nil {
		return nil, err
	}

	runner := &guard.Runner{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Evaluator:   guard.NewRuleEngine(rules),
		ProjectRoot: projectRoot,
	}
	if opts.logPath != "" {
		runner.Log = guard.NewDecisionLog(opts.logPath)
	}

	return runner, nil
}
