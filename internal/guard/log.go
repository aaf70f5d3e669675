package guard

import (
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// maxLoggedCommandLen bounds the command text kept in a log line.
const maxLoggedCommandLen = 200

// DecisionLog appends one line per decided request to a shared log file.
// Hook processes can run concurrently, so appends are serialized with a
// sidecar flock.
type DecisionLog struct {
	path         string
	timeProvider func() time.Time
}

// NewDecisionLog creates a decision log writing to the given path.
func NewDecisionLog(path string) *DecisionLog {
	return &DecisionLog{
		path:         path,
		timeProvider: time.Now,
	}
}

// Record appends a formatted line for an evaluated command and its decision.
func (l *DecisionLog) Record(command string, decision *Decision) error {
	fileLock := flock.New(l.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to lock decision log: %w", err)
	}
	defer fileLock.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open decision log: %w", err)
	}
	defer f.Close()

	if len(command) > maxLoggedCommandLen {
		command = command[:maxLoggedCommandLen] + "..."
	}

	timestamp := l.timeProvider().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s | command=%s | reason=%s\n",
		timestamp, decision.Action, command, decision.Reason)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write decision log: %w", err)
	}

	return nil
}
