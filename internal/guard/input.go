package guard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BashToolName is the one tool this guard is wired to inspect.
const BashToolName = "Bash"

// HookInput is the single request document describing the tool invocation
// about to run.
type HookInput struct {
	ToolName      string          `json:"tool_name"`
	ToolInput     json.RawMessage `json:"tool_input"`
	CWD           string          `json:"cwd"`
	HookEventName string          `json:"hook_event_name"`
	parsed        map[string]interface{}
}

// ParseHookInput reads and decodes exactly one request document from a
// reader. Malformed input is a fatal condition.
func ParseHookInput(reader io.Reader) (*HookInput, error) {
	var input HookInput
	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return nil, &FatalError{Reason: fmt.Sprintf("Error: Invalid JSON input for tool call: %v", err)}
	}

	if len(input.ToolInput) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(input.ToolInput, &parsed); err != nil {
			return nil, &FatalError{Reason: fmt.Sprintf("Error: Invalid JSON input for tool call: %v", err)}
		}
		input.parsed = parsed
	}

	return &input, nil
}

// GetStringArg retrieves a string argument from the tool input.
// Returns the value and true if found, empty string and false if not found.
func (h *HookInput) GetStringArg(name string) (string, bool) {
	if h.parsed == nil {
		return "", false
	}

	value, ok := h.parsed[name]
	if !ok {
		return "", false
	}

	strValue, ok := value.(string)
	if !ok {
		return "", false
	}

	return strValue, true
}

// ExtractCommand validates the request and returns the command text. The
// request must name the Bash tool with a non-empty command, and its working
// directory must lie within the project root. Every violation is fatal, not
// a policy decision.
func ExtractCommand(input *HookInput, projectRoot string) (string, error) {
	command, ok := input.GetStringArg("command")
	if input.ToolName != BashToolName || !ok || command == "" {
		return "", &FatalError{Reason: fmt.Sprintf(
			"Command validator hook is configured incorrectly. Hook event: %s, tool name: %s",
			input.HookEventName, input.ToolName,
		)}
	}

	cwd := resolvePath(input.CWD)
	if !isWithin(projectRoot, cwd) {
		return "", &FatalError{Reason: fmt.Sprintf(
			"Current working directory %s is outside of project root %s",
			cwd, projectRoot,
		)}
	}

	return command, nil
}

// ResolveProjectRoot resolves the configured project root to an absolute,
// symlink-free path. An empty value defaults to the process working
// directory.
func ResolveProjectRoot(configured string) (string, error) {
	root := configured
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}
	return resolvePath(root), nil
}

// resolvePath makes a path absolute and resolves symlinks. A path that does
// not exist keeps its absolute form; containment is still checked lexically.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// isWithin reports whether path equals root or is a descendant of it.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
