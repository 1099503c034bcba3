package generate

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DumpProgram renders a human-readable view of the dispatch tables, used
// by the flexgen inspect command. Colors degrade to plain text when the
// output is not a terminal.
func DumpProgram(prog *Program) string {
	groupName := color.New(color.FgCyan, color.Bold).SprintFunc()
	acceptStep := color.New(color.FgGreen).SprintFunc()
	rejectStep := color.New(color.FgRed).SprintFunc()

	var b strings.Builder
	for _, gp := range prog.Groups {
		fmt.Fprintf(&b, "group %s (%d sub-states)\n", groupName(gp.Name), len(gp.SubStates))
		for i, sub := range gp.SubStates {
			fmt.Fprintf(&b, "  sub-state %d\n", i)
			for _, br := range sub.Branches {
				span := fmt.Sprintf("%s..%s", br.Lo, br.Hi)
				if br.Lo == br.Hi {
					span = br.Lo.String()
				}
				switch br.Kind {
				case StepContinue:
					fmt.Fprintf(&b, "    %-24s -> continue %d\n", span, br.Target)
				case StepAccept:
					fmt.Fprintf(&b, "    %-24s -> %s\n", span,
						acceptStep(fmt.Sprintf("accept rule %d (action %s)", br.Rule, br.Action)))
				default:
					fmt.Fprintf(&b, "    %-24s -> %s\n", span, rejectStep("reject"))
				}
			}
		}
	}
	return b.String()
}
