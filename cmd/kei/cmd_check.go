package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/parser"
)

func newCheckCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				if err := checkFile(filename, typeFlag); err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "source type (script, module, auto)")

	return cmd
}

func checkFile(filename, typeFlag string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	sourceType, err := resolveSourceType(filename, typeFlag)
	if err != nil {
		return err
	}

	p := parser.New(data, parser.WithFile(filename))
	if sourceType == js.SourceTypeModule {
		_, err = p.ParseModule()
	} else {
		_, err = p.ParseScript()
	}
	return err
}
