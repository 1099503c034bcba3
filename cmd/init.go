package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: flexgen init
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter lexer definition file",
	Run: func(cmd *cobra.Command, args []string) {
		path := "lexer.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := writeStarterDefinition(path); err != nil {
			logger.Error("Error writing definition file", zap.Error(err))
			return
		}
		fmt.Printf("Definition file created: %s\n", path)
	},
}

func writeStarterDefinition(path string) error {
	def := Definition{
		Name:    "Lexer",
		Package: "lexer",
		Groups: []GroupDefinition{
			{
				Name: "root",
				Rules: []RuleDefinition{
					{Pattern: `'a'..'z'+`, Action: "onWord"},
					{Pattern: `eof`, Action: "onEnd"},
					{Pattern: `any`, Action: "onUnrecognized"},
				},
			},
		},
	}
	d, err := yaml.Marshal(def)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
