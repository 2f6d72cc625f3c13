package js

import (
	"sort"
	"strings"

	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
	"github.com/dhamidi/kei/js/parser"
)

// docFinder matches /** */ block comments to the declarations they
// precede, by position.
type docFinder struct {
	comments []parser.Token // only block comments starting with /**, sorted by start line ascending
	used     map[int]bool   // tracks which comments (by index) have been claimed
}

func newDocFinder(comments []parser.Token) *docFinder {
	var docs []parser.Token
	for _, c := range comments {
		if c.Kind == parser.TokenComment && strings.HasPrefix(c.Literal, "/**") {
			docs = append(docs, c)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Span.Start.Line < docs[j].Span.Start.Line
	})
	return &docFinder{comments: docs, used: make(map[int]bool)}
}

// FindBefore returns the doc comment that ends closest above the given
// span. A comment may be separated from its declaration by a couple of
// lines (an `export` keyword pushed to its own line, a blank line), but
// no more. Each comment is claimed at most once, so two declarations
// never share one.
func (df *docFinder) FindBefore(span ast.Span) string {
	if df == nil || len(df.comments) == 0 {
		return ""
	}
	startLine := span.Start.Line

	bestIdx := -1
	bestDistance := 3

	for i, c := range df.comments {
		if df.used[i] {
			continue
		}
		endLine := c.Span.End.Line
		if endLine > startLine {
			continue
		}
		if endLine == startLine && c.Span.End.Column >= span.Start.Column {
			continue
		}
		distance := startLine - endLine
		if distance < bestDistance {
			bestIdx = i
			bestDistance = distance
		}
	}

	if bestIdx >= 0 {
		df.used[bestIdx] = true
		return df.comments[bestIdx].Literal
	}
	return ""
}

// Summarize parses source under the given goal and builds its summary.
// Parse failures are returned as-is; a summary is only produced for
// programs that parse cleanly.
func Summarize(source []byte, sourceType SourceType, opts ...parser.Option) (*FileSummary, error) {
	opts = append(opts, parser.WithComments())
	p := parser.New(source, opts...)

	var prog ast.Program
	var err error
	if sourceType == SourceTypeModule {
		prog, err = p.ParseModule()
	} else {
		prog, err = p.ParseScript()
	}
	if err != nil {
		return nil, err
	}
	return SummarizeProgram(prog, p.Interner(), p.Comments()), nil
}

// SummarizeFile is Summarize with the path recorded in spans and in the
// summary itself.
func SummarizeFile(path string, source []byte, sourceType SourceType) (*FileSummary, error) {
	sum, err := Summarize(source, sourceType, parser.WithFile(path))
	if err != nil {
		return nil, err
	}
	sum.Path = path
	return sum, nil
}

// SummarizeProgram builds the summary for an already-parsed program.
// Symbols are resolved through the interner the parse used; comments may
// be nil when the parse did not collect them.
func SummarizeProgram(prog ast.Program, in *interner.Interner, comments []parser.Token) *FileSummary {
	sum := &FileSummary{SourceType: SourceTypeScript}

	var body []ast.Stmt
	switch p := prog.(type) {
	case *ast.Script:
		body = p.Body
		sum.Strict = p.Strict
	case *ast.Module:
		body = p.Body
		sum.SourceType = SourceTypeModule
		sum.Strict = true
	}

	c := &collector{
		sum:     sum,
		in:      in,
		docs:    newDocFinder(comments),
		pending: make(map[*ast.FunctionLit]string),
	}
	for _, s := range body {
		ast.Inspect(s, c.visit)
	}
	return sum
}

// collector walks a program in source order, naming functions from their
// context: a declarator target, an assignment target, a property key, or
// the method key. The pending map carries such names from the parent node
// to the function literal, which is always visited after it.
type collector struct {
	sum     *FileSummary
	in      *interner.Interner
	docs    *docFinder
	pending map[*ast.FunctionLit]string
}

func (c *collector) visit(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.ImportDecl:
		c.sum.Imports = append(c.sum.Imports, c.importRecord(n))

	case *ast.ExportAllDecl:
		rec := ExportRecord{Exported: "*", From: c.name(n.From), Span: n.Span}
		if n.As != interner.SymNone {
			rec.Exported = c.name(n.As)
			rec.Local = "*"
		}
		c.sum.Exports = append(c.sum.Exports, rec)

	case *ast.ExportNamedDecl:
		c.recordNamedExport(n)

	case *ast.ExportDefaultDecl:
		rec := ExportRecord{Exported: "default", IsDefault: true, Span: n.Span}
		if fd, ok := n.Decl.(*ast.FunctionDecl); ok {
			rec.Local = c.name(fd.Fn.Name)
			if fd.Fn.Name == interner.SymNone {
				c.pending[fd.Fn] = "default"
			}
		}
		c.sum.Exports = append(c.sum.Exports, rec)

	case *ast.VarDecl:
		for _, d := range n.Decls {
			target, ok := d.Target.(*ast.Ident)
			if !ok {
				continue
			}
			if fn, ok := d.Init.(*ast.FunctionLit); ok {
				c.pending[fn] = c.name(target.Name)
			}
		}

	case *ast.AssignExpr:
		if n.Op != "=" {
			break
		}
		target, ok := n.Target.(*ast.Ident)
		if !ok {
			break
		}
		if fn, ok := n.Value.(*ast.FunctionLit); ok {
			c.pending[fn] = c.name(target.Name)
		}

	case *ast.PropertyDef:
		if n.Computed {
			break
		}
		if fn, ok := n.Value.(*ast.FunctionLit); ok {
			c.pending[fn] = c.keyName(n.Key)
		}

	case *ast.MethodDef:
		if !n.Computed {
			c.pending[n.Fn] = c.keyName(n.Key)
		}

	case *ast.FunctionLit:
		c.sum.Functions = append(c.sum.Functions, c.functionSummary(n))
	}
	return true
}

func (c *collector) functionSummary(fn *ast.FunctionLit) FunctionSummary {
	f := FunctionSummary{
		Name:        c.name(fn.Name),
		Kind:        kindOf(fn.Role),
		IsAsync:     fn.Async,
		IsGenerator: fn.Generator,
		IsStrict:    fn.Strict,
		Doc:         c.docs.FindBefore(fn.Span),
		Span:        fn.Span,
	}
	if f.Name == "" {
		f.Name = c.pending[fn]
	}
	if fn.Params != nil {
		f.ParamCount = len(fn.Params.List)
		f.SimpleParams = fn.Params.IsSimple
		f.DuplicateParams = fn.Params.HasDuplicates
		for _, p := range fn.Params.List {
			if p.Rest {
				f.HasRestParam = true
			}
		}
	}
	return f
}

func kindOf(role ast.FunctionRole) FunctionKind {
	switch role {
	case ast.RoleArrow:
		return FunctionKindArrow
	case ast.RoleMethod:
		return FunctionKindMethod
	case ast.RoleGetter:
		return FunctionKindGetter
	case ast.RoleSetter:
		return FunctionKindSetter
	}
	return FunctionKindFunction
}

func (c *collector) importRecord(n *ast.ImportDecl) ImportRecord {
	rec := ImportRecord{
		From:      c.name(n.From),
		Default:   c.name(n.Default),
		Namespace: c.name(n.Namespace),
		Span:      n.Span,
	}
	for _, spec := range n.Named {
		rec.Named = append(rec.Named, ImportedName{
			Imported: c.name(spec.Imported),
			Local:    c.name(spec.Local),
		})
	}
	return rec
}

func (c *collector) recordNamedExport(n *ast.ExportNamedDecl) {
	if n.Decl != nil {
		for _, ref := range ast.BoundNameRefs(n.Decl) {
			name := c.name(ref.Sym)
			c.sum.Exports = append(c.sum.Exports, ExportRecord{
				Exported: name,
				Local:    name,
				Span:     ref.Span,
			})
		}
		return
	}
	from := ""
	if n.HasFrom {
		from = c.name(n.From)
	}
	for _, spec := range n.Specs {
		c.sum.Exports = append(c.sum.Exports, ExportRecord{
			Exported: c.name(spec.Exported),
			Local:    c.name(spec.Local),
			From:     from,
			Span:     spec.Span,
		})
	}
}

func (c *collector) name(sym ast.Symbol) string {
	return c.in.Resolve(sym)
}

// keyName renders a non-computed property key. String keys drop their
// quotes; numeric keys keep their source spelling.
func (c *collector) keyName(key ast.Expr) string {
	switch k := key.(type) {
	case *ast.Ident:
		return c.name(k.Name)
	case *ast.StringLit:
		return c.name(k.Value)
	case *ast.NumberLit:
		return k.Raw
	}
	return ""
}
