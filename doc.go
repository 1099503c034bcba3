// Package flexer is a lexer-construction engine.
//
// A lexer definition declares hierarchical groups of (pattern, action)
// rules through the group registry. The generate package compiles every
// group into a deterministic automaton with range-compressed transition
// tables; this package drives the compiled program against a streaming
// character source, managing the group stack, the bookmark-based match
// protocol, and the assembled token output.
//
// The dispatch program is immutable once specialized, so any number of
// engine instances may run it concurrently; each instance owns its group
// stack, match buffer and output.
//
// The shape of a definition:
//
//	l := flexer.New[TokenStream](logger)
//	root := l.Groups().DefineGroup("ROOT", group.NoParent)
//	_ = l.Groups().AddRule(root, automata.Many1(automata.Char('a')), func(text string) {
//		l.Output.Push(Word(text))
//	})
//	_ = l.Groups().AddRule(root, automata.Eof(), func(string) {})
//	_ = l.Groups().AddRule(root, automata.Any(), func(text string) {
//		l.Output.Push(Unrecognized(text))
//	})
//	res := l.Run(reader.NewSourceString(input))
package flexer
