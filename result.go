package flexer

import "fmt"

// ResultKind classifies a whole lexing run.
type ResultKind int

const (
	// ResultSuccess means the run reached end of input cleanly.
	ResultSuccess ResultKind = iota
	// ResultPartial means the run stopped mid-way but produced output.
	ResultPartial
	// ResultFailure means the run hit a reader fault or a structural
	// error in the compiled automaton.
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "Success"
	case ResultPartial:
		return "Partial"
	case ResultFailure:
		return "Failure"
	default:
		return "?"
	}
}

// Result is the outcome of one run. Output always carries whatever tokens
// were accumulated, regardless of kind; Err is set for failures.
type Result[O any] struct {
	Kind   ResultKind
	Output O
	Err    error
}

type stageKind int

const (
	stageInitial stageKind = iota
	stageContinue
	stageExitSuccess
	stageExitFinished
	stageExitFail
)

// StageStatus is the state of one character-scan pass: Initial before the
// first step, ContinueWith while dispatch keeps consuming, and one of the
// exit states when the pass ends.
type StageStatus struct {
	kind stageKind
	next int // sub-state for stageContinue
}

// ContinueWith continues the scan in the given sub-state.
func ContinueWith(sub int) StageStatus {
	return StageStatus{kind: stageContinue, next: sub}
}

func exitStatus(kind stageKind) StageStatus {
	return StageStatus{kind: kind}
}

// ContinueAs returns the sub-state the scan should step next. Initial
// status steps sub-state 0.
func (s StageStatus) ContinueAs() (int, bool) {
	switch s.kind {
	case stageInitial:
		return 0, true
	case stageContinue:
		return s.next, true
	default:
		return 0, false
	}
}

// ShouldContinue reports whether the scan keeps consuming input.
func (s StageStatus) ShouldContinue() bool {
	_, ok := s.ContinueAs()
	return ok
}

// IsExitSuccess reports whether the pass fired a rule.
func (s StageStatus) IsExitSuccess() bool {
	return s.kind == stageExitSuccess
}

func (s StageStatus) String() string {
	switch s.kind {
	case stageInitial:
		return "Initial"
	case stageContinue:
		return fmt.Sprintf("ContinueWith(%d)", s.next)
	case stageExitSuccess:
		return "ExitSuccess"
	case stageExitFinished:
		return "ExitFinished"
	case stageExitFail:
		return "ExitFail"
	default:
		return "?"
	}
}
