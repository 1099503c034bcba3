package flexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/flexer/automata"
	"github.com/gnoswap-labs/flexer/generate"
	"github.com/gnoswap-labs/flexer/group"
	"github.com/gnoswap-labs/flexer/reader"
)

type token struct {
	kind string
	text string
}

func word(text string) token         { return token{kind: "word", text: text} }
func unrecognized(text string) token { return token{kind: "unrecognized", text: text} }

// newWordLexer builds the two-group lexer used across these tests: the
// root group matches the first word of runs of 'a' or 'b'; after a word
// the lexer shifts into a group expecting further words with a leading
// space. Anything else is an unrecognized token.
func newWordLexer(t testing.TB) *Flexer[[]token] {
	t.Helper()
	f := New[[]token](nil)
	reg := f.Groups()
	root := reg.DefineGroup("root", group.NoParent)
	seen := reg.DefineGroup("seen_first_word", group.NoParent)

	must := func(err error) {
		t.Helper()
		require.NoError(t, err)
	}

	run := func(c rune) automata.Pattern { return automata.Many1(automata.Char(c)) }

	must(reg.AddRule(root, run('a'), func(text string) {
		f.Output = append(f.Output, word(text))
		f.PushState(seen)
	}))
	must(reg.AddRule(root, run('b'), func(text string) {
		f.Output = append(f.Output, word(text))
		f.PushState(seen)
	}))
	must(reg.AddRule(root, automata.Eof(), func(string) {}))
	must(reg.AddRule(root, automata.Any(), func(text string) {
		f.Output = append(f.Output, unrecognized(text))
	}))

	spaced := func(c rune) automata.Pattern {
		return automata.Seq(automata.Char(' '), run(c))
	}
	must(reg.AddRule(seen, spaced('a'), func(text string) {
		f.Output = append(f.Output, word(strings.TrimPrefix(text, " ")))
	}))
	must(reg.AddRule(seen, spaced('b'), func(text string) {
		f.Output = append(f.Output, word(strings.TrimPrefix(text, " ")))
	}))
	must(reg.AddRule(seen, automata.Eof(), func(string) {
		_ = f.PopState()
	}))
	must(reg.AddRule(seen, automata.Any(), func(text string) {
		f.Output = append(f.Output, unrecognized(text))
		_ = f.PopState()
	}))
	return f
}

func TestRunWordLanguage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []token
	}{
		{"two_words", "a b", []token{word("a"), word("b")}},
		{"many_words", "aa b bbb", []token{word("aa"), word("b"), word("bbb")}},
		{"missing_space", "ba", []token{word("b"), unrecognized("a")}},
		{"empty_input", "", nil},
		{"single_run", "aaa", []token{word("aaa")}},
		{"leading_junk", "!a", []token{unrecognized("!"), word("a")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newWordLexer(t)
			res := f.Run(reader.NewSourceString(tc.input))
			assert.Equal(t, ResultSuccess, res.Kind, "status: %s", f.status)
			assert.NoError(t, res.Err)
			assert.Equal(t, tc.want, res.Output)
		})
	}
}

func TestRunAdvancesMatchedBookmark(t *testing.T) {
	t.Parallel()
	f := newWordLexer(t)
	res := f.Run(reader.NewSourceString("aaa"))
	require.Equal(t, ResultSuccess, res.Kind)

	bm := f.Bookmarks()
	assert.Equal(t, 3, bm.Offset(bm.Matched), "matched bookmark sits at end of input")
}

func TestRunTakesOutput(t *testing.T) {
	t.Parallel()
	f := newWordLexer(t)
	res := f.Run(reader.NewSourceString("a"))
	require.Equal(t, []token{word("a")}, res.Output)

	// the engine's stream is handed off, not shared
	assert.Nil(t, f.Output)
	res = f.Run(reader.NewSourceString("b"))
	assert.Equal(t, []token{word("b")}, res.Output)
}

func TestRunHooks(t *testing.T) {
	t.Parallel()
	f := newWordLexer(t)
	var calls []string
	f.SetHooks(
		func() { calls = append(calls, "setUp") },
		func() { calls = append(calls, "tearDown") },
	)
	f.Run(reader.NewSourceString("a"))
	assert.Equal(t, []string{"setUp", "tearDown"}, calls)
}

func TestRunCompileErrorSurfaces(t *testing.T) {
	t.Parallel()
	f := New[[]token](nil)
	id := f.Groups().DefineGroup("gappy", group.NoParent)
	require.NoError(t, f.Groups().AddRule(id, automata.Char('a'), func(string) {}))

	res := f.Run(reader.NewSourceString("a"))
	assert.Equal(t, ResultFailure, res.Kind)
	var derr *generate.DefinitionError
	require.ErrorAs(t, res.Err, &derr)
	assert.Contains(t, derr.Reason, "missing rules for state")
}

func TestRunEndOfGroupFailure(t *testing.T) {
	t.Parallel()
	// The initial state is total, but two characters into "abc" the scan
	// can reach a sub-state with no viable step. That is a runtime
	// failure, not an abort.
	f := New[[]token](nil)
	reg := f.Groups()
	id := reg.DefineGroup("root", group.NoParent)
	require.NoError(t, reg.AddRule(id, automata.Str("abc"), func(text string) {
		f.Output = append(f.Output, word(text))
	}))
	require.NoError(t, reg.AddRule(id, automata.Eof(), func(string) {}))
	require.NoError(t, reg.AddRule(id, automata.Any(), func(text string) {
		f.Output = append(f.Output, unrecognized(text))
	}))

	res := f.Run(reader.NewSourceString("abx"))
	assert.Equal(t, ResultFailure, res.Kind)
	var gerr *EndOfGroupError
	require.ErrorAs(t, res.Err, &gerr)
	assert.Equal(t, "root", gerr.Group)
	assert.Equal(t, automata.SymbolOf('x'), gerr.Symbol)

	res = f.Run(reader.NewSourceString("abc!"))
	assert.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, []token{word("abc"), unrecognized("!")}, res.Output)
}

func TestRunReuseAfterLongerInput(t *testing.T) {
	t.Parallel()
	// After a successful run, the matched bookmark sits at the end of
	// that input. A failing run over a shorter input on the same engine
	// must rewind within the new reader, not to the stale position.
	f := New[[]token](nil)
	reg := f.Groups()
	id := reg.DefineGroup("root", group.NoParent)
	require.NoError(t, reg.AddRule(id, automata.Str("abc"), func(text string) {
		f.Output = append(f.Output, word(text))
	}))
	require.NoError(t, reg.AddRule(id, automata.Eof(), func(string) {}))
	require.NoError(t, reg.AddRule(id, automata.Any(), func(text string) {
		f.Output = append(f.Output, unrecognized(text))
	}))

	res := f.Run(reader.NewSourceString("abcabc"))
	require.Equal(t, ResultSuccess, res.Kind)
	require.Equal(t, []token{word("abc"), word("abc")}, res.Output)

	var short Result[[]token]
	assert.NotPanics(t, func() {
		short = f.Run(reader.NewSourceString("abx"))
	})
	assert.Equal(t, ResultFailure, short.Kind)
	var gerr *EndOfGroupError
	assert.ErrorAs(t, short.Err, &gerr)
}

func TestRunReaderFault(t *testing.T) {
	t.Parallel()
	f := newWordLexer(t)
	res := f.Run(reader.NewSource(&brokenReader{}))
	assert.Equal(t, ResultFailure, res.Kind)
	assert.ErrorContains(t, res.Err, "reader fault")
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}

func TestStateStack(t *testing.T) {
	t.Parallel()
	f := New[[]token](nil)
	reg := f.Groups()
	root := reg.DefineGroup("root", group.NoParent)
	other := reg.DefineGroup("other", group.NoParent)

	f.reset()
	assert.Equal(t, root, f.CurrentState())
	assert.ErrorIs(t, f.PopState(), ErrStateUnderflow)

	f.PushState(other)
	assert.Equal(t, other, f.CurrentState())
	require.NoError(t, f.PopState())
	assert.Equal(t, root, f.CurrentState())
}

func TestSetInitialState(t *testing.T) {
	t.Parallel()
	f := New[[]token](nil)
	reg := f.Groups()
	reg.DefineGroup("first", group.NoParent)
	second := reg.DefineGroup("second", group.NoParent)

	f.SetInitialState(second)
	assert.Equal(t, second, f.InitialState())

	assert.Panics(t, func() {
		other := group.NewRegistry()
		other.DefineGroup("a", group.NoParent)
		other.DefineGroup("b", group.NoParent)
		f.SetInitialState(other.DefineGroup("c", group.NoParent))
	})
}

func TestInheritedRulesMatchInChild(t *testing.T) {
	t.Parallel()
	f := New[[]token](nil)
	reg := f.Groups()
	base := reg.DefineGroup("base", group.NoParent)
	require.NoError(t, reg.AddRule(base, automata.Eof(), func(string) {}))
	require.NoError(t, reg.AddRule(base, automata.Any(), func(text string) {
		f.Output = append(f.Output, unrecognized(text))
	}))

	child := reg.DefineGroup("child", base)
	require.NoError(t, reg.AddRule(child, automata.Str("ok"), func(text string) {
		f.Output = append(f.Output, word(text))
	}))
	f.SetInitialState(child)

	res := f.Run(reader.NewSourceString("ok?ok"))
	assert.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, []token{word("ok"), unrecognized("?"), word("ok")}, res.Output)
}

func TestUseProgramSkipsCompilation(t *testing.T) {
	t.Parallel()
	// An ahead-of-time program drives a second engine whose registry was
	// built by the same definition code, so action references line up.
	first := newWordLexer(t)
	prog, err := first.Generate()
	require.NoError(t, err)

	second := newWordLexer(t)
	second.UseProgram(prog)
	res := second.Run(reader.NewSourceString("a b"))
	assert.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, []token{word("a"), word("b")}, res.Output)
}

func TestCurrentMatchExposed(t *testing.T) {
	t.Parallel()
	f := newWordLexer(t)
	res := f.Run(reader.NewSourceString("a b"))
	require.Equal(t, ResultSuccess, res.Kind)
	// the final fired rule is the end-of-input rule with an empty span
	assert.Equal(t, "", f.CurrentMatch)
	assert.Equal(t, []token{word("a"), word("b")}, res.Output)
}
