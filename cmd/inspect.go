package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/flexer/generate"
)

// inspectCmd: flexgen inspect
var inspectCmd = &cobra.Command{
	Use:   "inspect [definition]",
	Short: "Print the compiled dispatch tables of a definition",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one definition file path")
			os.Exit(1)
		}

		def, err := loadDefinition(args[0])
		if err != nil {
			logger.Fatal("Failed to load definition", zap.Error(err))
		}
		reg, _, err := buildRegistry(def)
		if err != nil {
			logger.Fatal("Failed to build rule registry", zap.Error(err))
		}
		prog, err := generate.Specialize(reg, generate.Options{Logger: logger})
		if err != nil {
			logger.Fatal("Failed to specialize definition", zap.Error(err))
		}

		fmt.Print(generate.DumpProgram(prog))
	},
}
