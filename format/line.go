package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/kei/js"
)

type LineEncoder struct {
	w       io.Writer
	summary *js.FileSummary
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(summary *js.FileSummary) error {
	e.summary = summary
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	s := e.summary

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", s.SourceType, orDash(s.Path), e.summaryModeStr())

	for _, imp := range s.Imports {
		fmt.Fprintf(&sb, "import\t%s\t%s\n", imp.From, e.importBindingsStr(imp))
	}

	for _, exp := range s.Exports {
		fmt.Fprintf(&sb, "export\t%s\t%s\t%s\n",
			exp.Exported,
			orDash(exp.Local),
			orDash(exp.From),
		)
	}

	for _, fn := range s.Functions {
		fmt.Fprintf(&sb, "function\t%s\t%s\t%d\t%s\n",
			orDash(fn.Name),
			fn.Kind,
			fn.ParamCount,
			e.functionModifiersStr(fn),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) summaryModeStr() string {
	if e.summary.Strict {
		return "strict"
	}
	return "sloppy"
}

func (e *LineEncoder) importBindingsStr(imp js.ImportRecord) string {
	var parts []string
	if imp.Default != "" {
		parts = append(parts, imp.Default)
	}
	if imp.Namespace != "" {
		parts = append(parts, "* as "+imp.Namespace)
	}
	for _, n := range imp.Named {
		if n.Imported == n.Local {
			parts = append(parts, n.Imported)
		} else {
			parts = append(parts, n.Imported+" as "+n.Local)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func (e *LineEncoder) functionModifiersStr(fn js.FunctionSummary) string {
	var mods []string
	if fn.IsAsync {
		mods = append(mods, "async")
	}
	if fn.IsGenerator {
		mods = append(mods, "generator")
	}
	if fn.IsStrict {
		mods = append(mods, "strict")
	}
	if !fn.SimpleParams {
		mods = append(mods, "patterns")
	}
	if fn.DuplicateParams {
		mods = append(mods, "duplicates")
	}
	if fn.HasRestParam {
		mods = append(mods, "rest")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
