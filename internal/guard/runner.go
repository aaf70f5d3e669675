package guard

import (
	"encoding/json"
	"io"
)

// Runner drives one hook invocation: read the single request document,
// validate it, evaluate the command, and write at most one document. The
// returned value is the process exit status: 0 when the run completed
// (allow or an emitted decision), 1 on any fatal condition.
type Runner struct {
	In          io.Reader
	Out         io.Writer
	Evaluator   Evaluator
	ProjectRoot string
	Log         *DecisionLog
}

// Run performs the read, validate, evaluate, emit sequence.
func (r *Runner) Run() int {
	input, err := ParseHookInput(r.In)
	if err != nil {
		return r.stop(err)
	}

	command, err := ExtractCommand(input, r.ProjectRoot)
	if err != nil {
		return r.stop(err)
	}

	decision := r.Evaluator.Evaluate(command)
	if decision == nil {
		// No rule matched: implicit allow, no output.
		return 0
	}

	if r.Log != nil {
		// Logging is diagnostic only; a failure never changes the decision.
		_ = r.Log.Record(command, decision)
	}

	if err := json.NewEncoder(r.Out).Encode(NewResponse(decision)); err != nil {
		return 1
	}
	return 0
}

// stop emits the stop document for a fatal condition and returns exit
// status 1. Non-fatal errors still stop the run; their text becomes the
// stop reason.
func (r *Runner) stop(err error) int {
	reason := err.Error()
	_ = json.NewEncoder(r.Out).Encode(NewStopOutput(reason))
	return 1
}
