package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dhamidi/kei/format"
	"github.com/dhamidi/kei/project"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var showDiff bool
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a JavaScript file in canonical style",
		Long: `Reformat JavaScript source to stdout.

If a file is provided, it must have a .js, .mjs, or .cjs extension.
If no file is provided, reads source from stdin.

Use -w to overwrite the file in place (requires a file argument).
Use --diff to print the changes instead of the formatted source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				if !project.IsSourceFile(filename) {
					return fmt.Errorf("expected .js, .mjs, or .cjs file, got %s", filepath.Ext(filename))
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			sourceType, err := resolveSourceType(filename, typeFlag)
			if err != nil {
				return err
			}

			output, err := format.PrintSource(source, sourceType)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if showDiff {
				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(string(source), string(output), false)
				if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
					return nil
				}
				fmt.Print(dmp.DiffPrettyText(diffs))
				return nil
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print changes instead of the formatted source")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "source type (script, module, auto)")

	return cmd
}
