package flexer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/flexer/automata"
	"github.com/gnoswap-labs/flexer/generate"
	"github.com/gnoswap-labs/flexer/group"
	"github.com/gnoswap-labs/flexer/reader"
)

// ErrStateUnderflow is returned when an action tries to pop the sole
// remaining group off the stack.
var ErrStateUnderflow = errors.New("flexer: state underflow: cannot pop the root group")

// EndOfGroupError reports that dispatch reached a sub-state with no viable
// transition for the current symbol. It signals a defect in the group
// definition that initial-state validation could not see; the run fails
// with it instead of aborting the process.
type EndOfGroupError struct {
	Group  string
	Symbol automata.Symbol
}

func (e *EndOfGroupError) Error() string {
	return fmt.Sprintf("flexer: missing rules for state %q on symbol %s", e.Group, e.Symbol)
}

// Definition is the contract a lexer definition fulfils for tooling: build
// all groups and rules, expose the registry, run per-run hooks, and
// produce the compiled artifact.
type Definition interface {
	Define() error
	Groups() *group.Registry
	SetUp()
	TearDown()
	Generate() (*generate.Program, error)
}

// Flexer is the runtime driver. O is the output stream type accumulated by
// rule actions; a run takes the accumulated value and leaves the field
// zeroed for the next run.
//
// One Flexer owns one group registry, one bookmark set and one run state.
// Definitions embed it, register rules whose actions close over it, and
// call Run per input.
type Flexer[O any] struct {
	logger    *zap.Logger
	registry  *group.Registry
	bookmarks *reader.Bookmarks
	program   *generate.Program
	initial   group.Identifier

	stack  []group.Identifier
	status StageStatus
	err    error

	// CurrentMatch is the substring captured by the most recently fired
	// rule. Actions read it through their text argument; it stays
	// exposed for actions that need it after pushing or popping states.
	CurrentMatch string

	// Output is the stream rule actions append to.
	Output O

	setUp, tearDown func()
}

// New creates an engine with an empty registry. A nil logger disables
// logging.
func New[O any](logger *zap.Logger) *Flexer[O] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flexer[O]{
		logger:    logger,
		registry:  group.NewRegistry(),
		bookmarks: reader.NewBookmarks(),
	}
}

// Groups returns the engine's group registry.
func (f *Flexer[O]) Groups() *group.Registry {
	return f.registry
}

// Bookmarks returns the engine's bookmark manager.
func (f *Flexer[O]) Bookmarks() *reader.Bookmarks {
	return f.bookmarks
}

// SetInitialState selects the group every run starts in. Unset, the first
// defined group is used.
func (f *Flexer[O]) SetInitialState(id group.Identifier) {
	f.registry.Group(id) // unknown ids are a programming error
	f.initial = id
}

// InitialState returns the run entry group.
func (f *Flexer[O]) InitialState() group.Identifier {
	if f.initial.IsNil() {
		ids := f.registry.All()
		if len(ids) == 0 {
			panic("flexer: no groups defined")
		}
		return ids[0]
	}
	return f.initial
}

// SetHooks installs the per-run set-up and tear-down callbacks. Either may
// be nil.
func (f *Flexer[O]) SetHooks(setUp, tearDown func()) {
	f.setUp = setUp
	f.tearDown = tearDown
}

// CurrentState returns the group on top of the stack.
func (f *Flexer[O]) CurrentState() group.Identifier {
	return f.stack[len(f.stack)-1]
}

// PushState enters a group; subsequent scans match with its rules.
func (f *Flexer[O]) PushState(id group.Identifier) {
	f.registry.Group(id)
	f.logger.Debug("push state", zap.Stringer("group", id))
	f.stack = append(f.stack, id)
}

// PopState leaves the current group. The stack is never left empty:
// popping the root group fails with ErrStateUnderflow.
func (f *Flexer[O]) PopState() error {
	if len(f.stack) <= 1 {
		return ErrStateUnderflow
	}
	f.logger.Debug("pop state", zap.Stringer("group", f.CurrentState()))
	f.stack = f.stack[:len(f.stack)-1]
	return nil
}

// Compile specializes the registry into the dispatch program the runtime
// steps. Definition errors are returned, not deferred to Run.
func (f *Flexer[O]) Compile() error {
	prog, err := generate.Specialize(f.registry, generate.Options{Logger: f.logger})
	if err != nil {
		return err
	}
	f.program = prog
	return nil
}

// Generate returns the compiled dispatch program, specializing the
// registry if Compile has not run yet.
func (f *Flexer[O]) Generate() (*generate.Program, error) {
	if f.program == nil {
		if err := f.Compile(); err != nil {
			return nil, err
		}
	}
	return f.program, nil
}

// UseProgram installs an ahead-of-time generated program instead of
// compiling the registry. The program must come from a definition whose
// groups and actions were registered in the same order.
func (f *Flexer[O]) UseProgram(prog *generate.Program) {
	f.program = prog
}
