package flexer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/flexer/generate"
	"github.com/gnoswap-labs/flexer/reader"
)

// Run drives one full lexing pass over rd and returns the accumulated
// output with the run's classification: Success when end of input was
// reached cleanly, Failure on a reader fault or a structural dispatch
// error, Partial otherwise. Output is returned in every case.
func (f *Flexer[O]) Run(rd reader.Reader) Result[O] {
	if f.program == nil {
		if err := f.Compile(); err != nil {
			var zero O
			return Result[O]{Kind: ResultFailure, Output: zero, Err: err}
		}
	}
	f.reset()
	if f.setUp != nil {
		f.setUp()
	}

	rd.Advance(f.bookmarks)
	// the matched bookmark restarts at the reader's first character;
	// a reused engine must not carry the previous run's match position
	f.bookmarks.Bookmark(f.bookmarks.Matched, rd)
	for f.runCurrentState(rd).IsExitSuccess() {
	}

	var kind ResultKind
	switch f.status.kind {
	case stageExitFinished:
		kind = ResultSuccess
	case stageExitFail:
		kind = ResultFailure
		// keep the reader position consistent with the consumed output
		f.bookmarks.Rewind(f.bookmarks.Matched, rd)
	default:
		kind = ResultPartial
	}

	output := f.Output
	var zero O
	f.Output = zero
	if f.tearDown != nil {
		f.tearDown()
	}
	return Result[O]{Kind: kind, Output: output, Err: f.err}
}

func (f *Flexer[O]) reset() {
	f.stack = f.stack[:0]
	f.stack = append(f.stack, f.InitialState())
	f.status = StageStatus{}
	f.err = nil
	f.CurrentMatch = ""
}

// runCurrentState executes one token-scan pass: step the dispatch tables
// of the active group until a step stops continuing, consuming one
// character per continuing step. When the pass steps at end of input with
// nothing left to read, the run finalizes with ExitFinished.
func (f *Flexer[O]) runCurrentState(rd reader.Reader) StageStatus {
	f.status = StageStatus{}
	finished := false
	for {
		next, ok := f.status.ContinueAs()
		if !ok {
			break
		}
		f.status = f.step(next, rd)
		if finished && rd.Finished(f.bookmarks) {
			f.status = exitStatus(stageExitFinished)
		}
		finished = rd.Current().IsEOF()

		if f.status.ShouldContinue() {
			ch := rd.Current()
			switch {
			case ch.Err == nil:
				rd.AppendMatch(ch.Rune())
			case errors.Is(ch.Err, reader.ErrEndOfInput):
				// nothing to buffer
			case errors.Is(ch.Err, reader.ErrInvalidEncoding):
				rd.AppendMatch(utf8.RuneError)
			default:
				f.err = fmt.Errorf("flexer: reader fault: %w", ch.Err)
				f.logger.Error("reader fault", zap.Error(ch.Err))
				f.status = exitStatus(stageExitFail)
				return f.status
			}
			rd.Advance(f.bookmarks)
		}
	}
	return f.status
}

// step dispatches one sub-state of the active group against the current
// symbol. An accepting branch fires its rule: the matched span is
// captured, the action runs through its reference, and the matched
// bookmark advances — in that order.
func (f *Flexer[O]) step(sub int, rd reader.Reader) StageStatus {
	gp := f.program.Group(f.CurrentState())
	if sub >= len(gp.SubStates) {
		// unreachable when the program came from Specialize
		panic(fmt.Sprintf("flexer: unreachable sub-state %d in group %q", sub, gp.Name))
	}
	sym := rd.Current().Sym
	br := gp.SubStates[sub].Lookup(sym)
	switch br.Kind {
	case generate.StepContinue:
		return ContinueWith(br.Target)
	case generate.StepAccept:
		f.CurrentMatch = rd.PopMatch()
		f.registry.Action(br.Action)(f.CurrentMatch)
		f.bookmarks.Bookmark(f.bookmarks.Matched, rd)
		return exitStatus(stageExitSuccess)
	default:
		f.err = &EndOfGroupError{Group: gp.Name, Symbol: sym}
		f.logger.Error("missing rules for state",
			zap.String("group", gp.Name),
			zap.Stringer("symbol", sym))
		return exitStatus(stageExitFail)
	}
}
