package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/gnoswap-labs/flexer/generate"
)

var outDir string

// generateCmd: flexgen generate
var generateCmd = &cobra.Command{
	Use:   "generate [definitions...]",
	Short: "Compile lexer definitions into Go dispatch tables",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide definition file paths")
			os.Exit(1)
		}

		bar := progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		failed := false
		for _, path := range args {
			if err := generateArtifact(path, outDir); err != nil {
				logger.Error("Error generating artifact", zap.String("definition", path), zap.Error(err))
				failed = true
			}
			_ = bar.Add(1)
		}
		fmt.Println()
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outDir, "output", "o", ".", "Directory the artifacts are written to")
}

func generateArtifact(path, dir string) error {
	def, err := loadDefinition(path)
	if err != nil {
		return err
	}
	reg, actionNames, err := buildRegistry(def)
	if err != nil {
		return err
	}

	prog, err := generate.Specialize(reg, generate.Options{Logger: logger})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = generate.EmitGo(&buf, prog, generate.EmitOptions{
		Package:     def.Package,
		Name:        def.Name,
		ActionNames: actionNames,
	})
	if err != nil {
		return err
	}

	outPath := filepath.Join(dir, strings.ToLower(def.Name)+"_tables.go")
	src, err := imports.Process(outPath, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("formatting artifact: %w", err)
	}

	return os.WriteFile(outPath, src, 0o644)
}
