package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kei/format"
	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/parser"
	"github.com/dhamidi/kei/project"
)

func newParseCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JavaScript file and dump its syntax tree",
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

			sourceType, err := resolveSourceType(filename, typeFlag)
			if err != nil {
				return err
			}

			p := parser.New(data, parser.WithFile(filename))

			var prog ast.Program
			if sourceType == js.SourceTypeModule {
				prog, err = p.ParseModule()
			} else {
				prog, err = p.ParseScript()
			}
			if err != nil {
				return err
			}

			enc := format.NewASTJSONEncoder(os.Stdout, p.Interner())
			if err := enc.Encode(prog); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "source type (script, module, auto)")

	return cmd
}

// resolveSourceType maps the --type flag to a parse goal. In auto mode
// the extension and the nearest package.json decide; without a manifest,
// bare .js parses as a script.
func resolveSourceType(path, typeFlag string) (js.SourceType, error) {
	switch typeFlag {
	case "script":
		return js.SourceTypeScript, nil
	case "module":
		return js.SourceTypeModule, nil
	case "auto":
		proj, err := project.LoadFrom(filepath.Dir(path))
		if err != nil {
			return project.SourceTypeFor(path, false), nil
		}
		return proj.SourceTypeOf(path), nil
	}
	return "", fmt.Errorf("unknown source type: %s (expected script, module, or auto)", typeFlag)
}
