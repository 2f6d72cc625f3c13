package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kei/format"
	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/project"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the file summary from a JavaScript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if !project.IsSourceFile(filename) {
				return fmt.Errorf("unsupported file extension: %s (expected .js, .mjs, or .cjs)", filepath.Ext(filename))
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			sourceType, err := resolveSourceType(filename, "auto")
			if err != nil {
				return err
			}

			sum, err := js.SummarizeFile(filename, data, sourceType)
			if err != nil {
				return fmt.Errorf("parse file: %w", err)
			}

			var enc format.Encoder
			switch dumpFormat {
			case "json":
				enc = format.NewJSONEncoder(os.Stdout)
			case "line":
				enc = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", dumpFormat)
			}

			if err := enc.Encode(sum); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if dumpFormat == "json" {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
