package js

import (
	"strings"

	"github.com/dhamidi/kei/js/ast"
)

// Span is shared with the ast package.
type Span = ast.Span

type SourceType string

const (
	SourceTypeScript SourceType = "script"
	SourceTypeModule SourceType = "module"
)

type FunctionKind string

const (
	FunctionKindFunction FunctionKind = "function"
	FunctionKindArrow    FunctionKind = "arrow"
	FunctionKindMethod   FunctionKind = "method"
	FunctionKindGetter   FunctionKind = "getter"
	FunctionKindSetter   FunctionKind = "setter"
)

// FileSummary is the flattened view of one parsed source file: its goal,
// strictness, and the inventories the tooling layers consume.
type FileSummary struct {
	Path       string
	SourceType SourceType
	Strict     bool
	Functions  []FunctionSummary
	Imports    []ImportRecord
	Exports    []ExportRecord
}

type FunctionSummary struct {
	Name            string
	Kind            FunctionKind
	IsAsync         bool
	IsGenerator     bool
	ParamCount      int
	HasRestParam    bool
	SimpleParams    bool
	DuplicateParams bool
	IsStrict        bool
	Doc             string
	Span            Span
}

// Label folds the async and generator flags into the kind, giving the
// names developers use: "generator function", "async method", "arrow".
func (f FunctionSummary) Label() string {
	parts := make([]string, 0, 3)
	if f.IsAsync {
		parts = append(parts, "async")
	}
	if f.IsGenerator {
		parts = append(parts, "generator")
	}
	parts = append(parts, string(f.Kind))
	return strings.Join(parts, " ")
}

// ImportRecord is one import declaration. Default and Namespace are empty
// when the corresponding clause is absent; a bare `import "mod"` has
// nothing but From.
type ImportRecord struct {
	From      string
	Default   string
	Namespace string
	Named     []ImportedName
	Span      Span
}

type ImportedName struct {
	Imported string
	Local    string
}

// ExportRecord is one name made visible to importers. Star re-exports
// without an alias use "*" as the exported name. When From is set, Local
// names the binding on that module rather than one here; default
// expression exports bind nothing and leave Local empty.
type ExportRecord struct {
	Exported  string
	Local     string
	From      string
	IsDefault bool
	Span      Span
}
