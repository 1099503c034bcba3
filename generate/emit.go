package generate

import (
	"fmt"
	"io"
	"strings"
)

// EmitOptions configures the Go source artifact.
type EmitOptions struct {
	// Package is the target package name.
	Package string
	// Name is the exported base name; the artifact defines
	// New<Name>Program and <Name>ActionNames.
	Name string
	// ActionNames labels the action table, indexed by reference. It is
	// carried into the artifact so the hosting application can wire its
	// callbacks by name.
	ActionNames []string
}

// EmitGo writes the program as a compilable Go source file. The artifact
// rebuilds the same structured dispatch tables; group and action indices
// match the definition order of the registry the program was specialized
// from, and actions stay behind their references rather than being spliced
// in as source text.
func EmitGo(w io.Writer, prog *Program, opts EmitOptions) error {
	if opts.Package == "" {
		return fmt.Errorf("generate: emit requires a package name")
	}
	if opts.Name == "" {
		return fmt.Errorf("generate: emit requires an artifact name")
	}

	var b strings.Builder
	b.WriteString("// Code generated by flexgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/gnoswap-labs/flexer/generate\"\n")
	b.WriteString("\t\"github.com/gnoswap-labs/flexer/group\"\n")
	b.WriteString(")\n\n")

	if len(opts.ActionNames) > 0 {
		fmt.Fprintf(&b, "// %sActionNames labels the action table, indexed by action reference.\n", opts.Name)
		fmt.Fprintf(&b, "var %sActionNames = []string{\n", opts.Name)
		for _, name := range opts.ActionNames {
			fmt.Fprintf(&b, "\t%q,\n", name)
		}
		b.WriteString("}\n\n")
	}

	fmt.Fprintf(&b, "// New%sProgram rebuilds the compiled dispatch program.\n", opts.Name)
	fmt.Fprintf(&b, "func New%sProgram() *generate.Program {\n", opts.Name)
	b.WriteString("\treturn &generate.Program{\n")
	b.WriteString("\t\tGroups: []generate.GroupProgram{\n")
	for _, gp := range prog.Groups {
		fmt.Fprintf(&b, "\t\t\t{\n\t\t\t\tIndex: %d,\n\t\t\t\tName:  %q,\n", gp.Index, gp.Name)
		b.WriteString("\t\t\t\tSubStates: []generate.SubState{\n")
		for _, sub := range gp.SubStates {
			b.WriteString("\t\t\t\t\t{Branches: []generate.Branch{\n")
			for _, br := range sub.Branches {
				b.WriteString("\t\t\t\t\t\t" + branchLiteral(br) + ",\n")
			}
			b.WriteString("\t\t\t\t\t}},\n")
		}
		b.WriteString("\t\t\t\t},\n\t\t\t},\n")
	}
	b.WriteString("\t\t},\n\t}\n}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func branchLiteral(br Branch) string {
	switch br.Kind {
	case StepContinue:
		return fmt.Sprintf("{Lo: %#x, Hi: %#x, Kind: generate.StepContinue, Target: %d}",
			uint32(br.Lo), uint32(br.Hi), br.Target)
	case StepAccept:
		return fmt.Sprintf("{Lo: %#x, Hi: %#x, Kind: generate.StepAccept, Rule: %d, Action: group.NewActionRef(%d)}",
			uint32(br.Lo), uint32(br.Hi), br.Rule, br.Action.Int())
	default:
		return fmt.Sprintf("{Lo: %#x, Hi: %#x, Kind: generate.StepReject}",
			uint32(br.Lo), uint32(br.Hi))
	}
}
