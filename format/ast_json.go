package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// ASTJSONEncoder renders a syntax tree as indented JSON. Every node
// carries a "kind" naming its type and a "span" with 1-based line and
// column positions; identifier symbols are resolved back to text through
// the interner the parse used.
type ASTJSONEncoder struct {
	w  io.Writer
	in *interner.Interner
}

func NewASTJSONEncoder(w io.Writer, in *interner.Interner) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, in: in}
}

func (e *ASTJSONEncoder) Encode(n ast.Node) error {
	text, err := e.MarshalText(n)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(n ast.Node) ([]byte, error) {
	return json.MarshalIndent(e.node(n), "", "  ")
}

func (e *ASTJSONEncoder) base(kind string, span ast.Span) map[string]any {
	return map[string]any{
		"kind": kind,
		"span": map[string]any{
			"start": map[string]any{"line": span.Start.Line, "column": span.Start.Column},
			"end":   map[string]any{"line": span.End.Line, "column": span.End.Column},
		},
	}
}

func (e *ASTJSONEncoder) sym(sym ast.Symbol) string {
	return e.in.Resolve(sym)
}

func (e *ASTJSONEncoder) stmts(list []ast.Stmt) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = e.node(s)
	}
	return out
}

func (e *ASTJSONEncoder) exprs(list []ast.Expr) []any {
	out := make([]any, len(list))
	for i, x := range list {
		if x == nil {
			out[i] = nil
			continue
		}
		out[i] = e.node(x)
	}
	return out
}

// node builds the JSON object for one node. Optional children are
// omitted rather than emitted as null, except array elisions, which
// must keep their slot.
func (e *ASTJSONEncoder) node(n ast.Node) map[string]any {
	switch n := n.(type) {
	case *ast.Script:
		obj := e.base("Script", n.Span)
		obj["sourceType"] = "script"
		obj["strict"] = n.Strict
		obj["body"] = e.stmts(n.Body)
		return obj
	case *ast.Module:
		obj := e.base("Module", n.Span)
		obj["sourceType"] = "module"
		obj["body"] = e.stmts(n.Body)
		return obj

	case *ast.Ident:
		obj := e.base("Ident", n.Span)
		obj["name"] = e.sym(n.Name)
		return obj
	case *ast.NullLit:
		return e.base("NullLit", n.Span)
	case *ast.BoolLit:
		obj := e.base("BoolLit", n.Span)
		obj["value"] = n.Value
		return obj
	case *ast.NumberLit:
		obj := e.base("NumberLit", n.Span)
		obj["value"] = n.Value
		obj["raw"] = n.Raw
		return obj
	case *ast.StringLit:
		obj := e.base("StringLit", n.Span)
		obj["value"] = e.sym(n.Value)
		obj["raw"] = n.Raw
		return obj
	case *ast.RegExpLit:
		obj := e.base("RegExpLit", n.Span)
		obj["pattern"] = e.sym(n.Pattern)
		obj["flags"] = e.sym(n.Flags)
		return obj
	case *ast.TemplateElement:
		obj := e.base("TemplateElement", n.Span)
		obj["cooked"] = e.sym(n.Cooked)
		obj["raw"] = n.Raw
		return obj
	case *ast.TemplateLit:
		obj := e.base("TemplateLit", n.Span)
		quasis := make([]any, len(n.Quasis))
		for i, q := range n.Quasis {
			quasis[i] = e.node(q)
		}
		obj["quasis"] = quasis
		obj["exprs"] = e.exprs(n.Exprs)
		return obj
	case *ast.TaggedTemplate:
		obj := e.base("TaggedTemplate", n.Span)
		obj["tag"] = e.node(n.Tag)
		obj["quasi"] = e.node(n.Quasi)
		return obj

	case *ast.ArrayLit:
		obj := e.base("ArrayLit", n.Span)
		obj["elems"] = e.exprs(n.Elems)
		return obj
	case *ast.SpreadElement:
		obj := e.base("SpreadElement", n.Span)
		obj["arg"] = e.node(n.Arg)
		return obj
	case *ast.ObjectLit:
		obj := e.base("ObjectLit", n.Span)
		members := make([]any, len(n.Members))
		for i, m := range n.Members {
			members[i] = e.node(m)
		}
		obj["members"] = members
		return obj
	case *ast.PropertyDef:
		obj := e.base("PropertyDef", n.Span)
		obj["key"] = e.node(n.Key)
		obj["computed"] = n.Computed
		obj["shorthand"] = n.Shorthand
		if n.Value != nil {
			obj["value"] = e.node(n.Value)
		}
		if n.CoverInit != nil {
			obj["coverInit"] = e.node(n.CoverInit)
		}
		return obj
	case *ast.MethodDef:
		obj := e.base("MethodDef", n.Span)
		obj["key"] = e.node(n.Key)
		obj["computed"] = n.Computed
		obj["fn"] = e.node(n.Fn)
		return obj

	case *ast.ThisExpr:
		return e.base("ThisExpr", n.Span)
	case *ast.SuperExpr:
		return e.base("SuperExpr", n.Span)
	case *ast.MemberExpr:
		obj := e.base("MemberExpr", n.Span)
		obj["object"] = e.node(n.Object)
		obj["prop"] = e.node(n.Prop)
		obj["computed"] = n.Computed
		obj["optional"] = n.Optional
		return obj
	case *ast.CallExpr:
		obj := e.base("CallExpr", n.Span)
		obj["callee"] = e.node(n.Callee)
		obj["args"] = e.exprs(n.Args)
		obj["optional"] = n.Optional
		return obj
	case *ast.NewExpr:
		obj := e.base("NewExpr", n.Span)
		obj["callee"] = e.node(n.Callee)
		obj["args"] = e.exprs(n.Args)
		return obj
	case *ast.UnaryExpr:
		obj := e.base("UnaryExpr", n.Span)
		obj["op"] = n.Op
		obj["operand"] = e.node(n.Operand)
		return obj
	case *ast.UpdateExpr:
		obj := e.base("UpdateExpr", n.Span)
		obj["op"] = n.Op
		obj["prefix"] = n.Prefix
		obj["operand"] = e.node(n.Operand)
		return obj
	case *ast.BinaryExpr:
		obj := e.base("BinaryExpr", n.Span)
		obj["op"] = n.Op
		obj["left"] = e.node(n.Left)
		obj["right"] = e.node(n.Right)
		return obj
	case *ast.AssignExpr:
		obj := e.base("AssignExpr", n.Span)
		obj["op"] = n.Op
		obj["target"] = e.node(n.Target)
		obj["value"] = e.node(n.Value)
		return obj
	case *ast.CondExpr:
		obj := e.base("CondExpr", n.Span)
		obj["test"] = e.node(n.Test)
		obj["cons"] = e.node(n.Cons)
		obj["alt"] = e.node(n.Alt)
		return obj
	case *ast.YieldExpr:
		obj := e.base("YieldExpr", n.Span)
		obj["delegate"] = n.Delegate
		if n.Arg != nil {
			obj["arg"] = e.node(n.Arg)
		}
		return obj
	case *ast.AwaitExpr:
		obj := e.base("AwaitExpr", n.Span)
		obj["arg"] = e.node(n.Arg)
		return obj
	case *ast.SequenceExpr:
		obj := e.base("SequenceExpr", n.Span)
		obj["exprs"] = e.exprs(n.Exprs)
		return obj

	case *ast.FunctionLit:
		obj := e.base("FunctionLit", n.Span)
		obj["role"] = n.Role.String()
		obj["async"] = n.Async
		obj["generator"] = n.Generator
		obj["strict"] = n.Strict
		if n.Name != interner.SymNone {
			obj["name"] = e.sym(n.Name)
		}
		if n.Params != nil {
			obj["params"] = e.node(n.Params)
		}
		if n.Body != nil {
			obj["body"] = e.node(n.Body)
		} else if n.ExprBody != nil {
			obj["exprBody"] = e.node(n.ExprBody)
		}
		return obj
	case *ast.ParamList:
		obj := e.base("ParamList", n.Span)
		obj["simple"] = n.IsSimple
		obj["duplicates"] = n.HasDuplicates
		list := make([]any, len(n.List))
		for i, p := range n.List {
			list[i] = e.node(p)
		}
		obj["list"] = list
		return obj
	case *ast.Param:
		obj := e.base("Param", n.Span)
		obj["rest"] = n.Rest
		obj["target"] = e.node(n.Target)
		if n.Default != nil {
			obj["default"] = e.node(n.Default)
		}
		return obj
	case *ast.ObjectPattern:
		obj := e.base("ObjectPattern", n.Span)
		props := make([]any, len(n.Props))
		for i, p := range n.Props {
			props[i] = e.node(p)
		}
		obj["props"] = props
		if n.Rest != nil {
			obj["rest"] = e.node(n.Rest)
		}
		return obj
	case *ast.PropertyPattern:
		obj := e.base("PropertyPattern", n.Span)
		obj["key"] = e.node(n.Key)
		obj["computed"] = n.Computed
		obj["value"] = e.node(n.Value)
		if n.Default != nil {
			obj["default"] = e.node(n.Default)
		}
		return obj
	case *ast.ArrayPattern:
		obj := e.base("ArrayPattern", n.Span)
		elems := make([]any, len(n.Elems))
		for i, p := range n.Elems {
			if p == nil {
				continue
			}
			elems[i] = e.node(p)
		}
		obj["elems"] = elems
		return obj

	case *ast.BlockStmt:
		obj := e.base("BlockStmt", n.Span)
		obj["body"] = e.stmts(n.List)
		return obj
	case *ast.VarDecl:
		obj := e.base("VarDecl", n.Span)
		obj["declKind"] = n.Kind
		decls := make([]any, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = e.node(d)
		}
		obj["decls"] = decls
		return obj
	case *ast.Declarator:
		obj := e.base("Declarator", n.Span)
		obj["target"] = e.node(n.Target)
		if n.Init != nil {
			obj["init"] = e.node(n.Init)
		}
		return obj
	case *ast.EmptyStmt:
		return e.base("EmptyStmt", n.Span)
	case *ast.ExprStmt:
		obj := e.base("ExprStmt", n.Span)
		obj["expr"] = e.node(n.Expr)
		if n.Directive != "" {
			obj["directive"] = n.Directive
		}
		return obj
	case *ast.IfStmt:
		obj := e.base("IfStmt", n.Span)
		obj["test"] = e.node(n.Test)
		obj["cons"] = e.node(n.Cons)
		if n.Alt != nil {
			obj["alt"] = e.node(n.Alt)
		}
		return obj
	case *ast.DoWhileStmt:
		obj := e.base("DoWhileStmt", n.Span)
		obj["body"] = e.node(n.Body)
		obj["test"] = e.node(n.Test)
		return obj
	case *ast.WhileStmt:
		obj := e.base("WhileStmt", n.Span)
		obj["test"] = e.node(n.Test)
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.ForStmt:
		obj := e.base("ForStmt", n.Span)
		if n.Init != nil {
			obj["init"] = e.node(n.Init)
		}
		if n.Test != nil {
			obj["test"] = e.node(n.Test)
		}
		if n.Update != nil {
			obj["update"] = e.node(n.Update)
		}
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.ForInStmt:
		obj := e.base("ForInStmt", n.Span)
		obj["left"] = e.node(n.Left)
		obj["right"] = e.node(n.Right)
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.ForOfStmt:
		obj := e.base("ForOfStmt", n.Span)
		obj["left"] = e.node(n.Left)
		obj["right"] = e.node(n.Right)
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.ContinueStmt:
		obj := e.base("ContinueStmt", n.Span)
		if n.Label != interner.SymNone {
			obj["label"] = e.sym(n.Label)
		}
		return obj
	case *ast.BreakStmt:
		obj := e.base("BreakStmt", n.Span)
		if n.Label != interner.SymNone {
			obj["label"] = e.sym(n.Label)
		}
		return obj
	case *ast.ReturnStmt:
		obj := e.base("ReturnStmt", n.Span)
		if n.Arg != nil {
			obj["arg"] = e.node(n.Arg)
		}
		return obj
	case *ast.WithStmt:
		obj := e.base("WithStmt", n.Span)
		obj["object"] = e.node(n.Object)
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.LabeledStmt:
		obj := e.base("LabeledStmt", n.Span)
		obj["label"] = e.sym(n.Label)
		obj["body"] = e.node(n.Body)
		return obj
	case *ast.SwitchStmt:
		obj := e.base("SwitchStmt", n.Span)
		obj["disc"] = e.node(n.Disc)
		cases := make([]any, len(n.Cases))
		for i, cc := range n.Cases {
			cases[i] = e.node(cc)
		}
		obj["cases"] = cases
		return obj
	case *ast.CaseClause:
		obj := e.base("CaseClause", n.Span)
		if n.Test != nil {
			obj["test"] = e.node(n.Test)
		}
		obj["body"] = e.stmts(n.Body)
		return obj
	case *ast.ThrowStmt:
		obj := e.base("ThrowStmt", n.Span)
		obj["arg"] = e.node(n.Arg)
		return obj
	case *ast.TryStmt:
		obj := e.base("TryStmt", n.Span)
		obj["block"] = e.node(n.Block)
		if n.CatchParam != nil {
			obj["catchParam"] = e.node(n.CatchParam)
		}
		if n.CatchBody != nil {
			obj["catchBody"] = e.node(n.CatchBody)
		}
		if n.Finally != nil {
			obj["finally"] = e.node(n.Finally)
		}
		return obj
	case *ast.DebuggerStmt:
		return e.base("DebuggerStmt", n.Span)
	case *ast.FunctionDecl:
		obj := e.base("FunctionDecl", n.Span)
		obj["fn"] = e.node(n.Fn)
		return obj

	case *ast.ImportDecl:
		obj := e.base("ImportDecl", n.Span)
		obj["from"] = e.sym(n.From)
		if n.Default != interner.SymNone {
			obj["default"] = e.sym(n.Default)
		}
		if n.Namespace != interner.SymNone {
			obj["namespace"] = e.sym(n.Namespace)
		}
		if len(n.Named) > 0 {
			named := make([]any, len(n.Named))
			for i, spec := range n.Named {
				named[i] = e.node(spec)
			}
			obj["named"] = named
		}
		return obj
	case *ast.ImportSpec:
		obj := e.base("ImportSpec", n.Span)
		obj["imported"] = e.sym(n.Imported)
		obj["local"] = e.sym(n.Local)
		return obj
	case *ast.ExportSpec:
		obj := e.base("ExportSpec", n.Span)
		obj["local"] = e.sym(n.Local)
		obj["exported"] = e.sym(n.Exported)
		return obj
	case *ast.ExportNamedDecl:
		obj := e.base("ExportNamedDecl", n.Span)
		if n.Decl != nil {
			obj["decl"] = e.node(n.Decl)
			return obj
		}
		specs := make([]any, len(n.Specs))
		for i, spec := range n.Specs {
			specs[i] = e.node(spec)
		}
		obj["specs"] = specs
		if n.HasFrom {
			obj["from"] = e.sym(n.From)
		}
		return obj
	case *ast.ExportAllDecl:
		obj := e.base("ExportAllDecl", n.Span)
		if n.As != interner.SymNone {
			obj["as"] = e.sym(n.As)
		}
		obj["from"] = e.sym(n.From)
		return obj
	case *ast.ExportDefaultDecl:
		obj := e.base("ExportDefaultDecl", n.Span)
		obj["decl"] = e.node(n.Decl)
		return obj
	}

	return map[string]any{"kind": "Unknown"}
}
