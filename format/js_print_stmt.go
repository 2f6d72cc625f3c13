package format

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

func (p *Printer) printStmt(s ast.Stmt) {
	p.writeIndent()
	switch n := s.(type) {
	case *ast.BlockStmt:
		p.printBlock(n)
		p.newline()
	case *ast.VarDecl:
		p.printVarDecl(n, false)
		p.write(";")
		p.newline()
	case *ast.EmptyStmt:
		p.write(";")
		p.newline()
	case *ast.ExprStmt:
		p.printExprStmt(n)
	case *ast.IfStmt:
		p.printIf(n)
	case *ast.DoWhileStmt:
		p.write("do")
		if block, ok := n.Body.(*ast.BlockStmt); ok {
			p.write(" ")
			p.printBlock(block)
			p.write(" ")
		} else {
			p.newline()
			p.indent++
			p.printStmt(n.Body)
			p.indent--
			p.writeIndent()
		}
		p.write("while (")
		p.printExpr(n.Test, precLowest)
		p.write(");")
		p.newline()
	case *ast.WhileStmt:
		p.write("while (")
		p.printExpr(n.Test, precLowest)
		p.write(")")
		p.printBody(n.Body)
	case *ast.ForStmt:
		p.write("for (")
		if n.Init != nil {
			p.printForInit(n.Init)
		}
		p.write(";")
		if n.Test != nil {
			p.write(" ")
			p.printExpr(n.Test, precLowest)
		}
		p.write(";")
		if n.Update != nil {
			p.write(" ")
			p.printExpr(n.Update, precLowest)
		}
		p.write(")")
		p.printBody(n.Body)
	case *ast.ForInStmt:
		p.write("for (")
		p.printForTarget(n.Left)
		p.write(" in ")
		p.printExpr(n.Right, precLowest)
		p.write(")")
		p.printBody(n.Body)
	case *ast.ForOfStmt:
		p.write("for (")
		p.printForTarget(n.Left)
		p.write(" of ")
		p.printExpr(n.Right, precAssign)
		p.write(")")
		p.printBody(n.Body)
	case *ast.ContinueStmt:
		p.write("continue")
		if n.Label != interner.SymNone {
			p.write(" ")
			p.write(p.name(n.Label))
		}
		p.write(";")
		p.newline()
	case *ast.BreakStmt:
		p.write("break")
		if n.Label != interner.SymNone {
			p.write(" ")
			p.write(p.name(n.Label))
		}
		p.write(";")
		p.newline()
	case *ast.ReturnStmt:
		p.write("return")
		if n.Arg != nil {
			p.write(" ")
			p.printExpr(n.Arg, precComma)
		}
		p.write(";")
		p.newline()
	case *ast.WithStmt:
		p.write("with (")
		p.printExpr(n.Object, precLowest)
		p.write(")")
		p.printBody(n.Body)
	case *ast.LabeledStmt:
		p.write(p.name(n.Label))
		p.write(": ")
		p.printStmt(n.Body)
	case *ast.SwitchStmt:
		p.printSwitch(n)
	case *ast.ThrowStmt:
		p.write("throw ")
		p.printExpr(n.Arg, precComma)
		p.write(";")
		p.newline()
	case *ast.TryStmt:
		p.write("try ")
		p.printBlock(n.Block)
		if n.CatchBody != nil {
			p.write(" catch ")
			if n.CatchParam != nil {
				p.write("(")
				p.printPattern(n.CatchParam)
				p.write(") ")
			}
			p.printBlock(n.CatchBody)
		}
		if n.Finally != nil {
			p.write(" finally ")
			p.printBlock(n.Finally)
		}
		p.newline()
	case *ast.DebuggerStmt:
		p.write("debugger;")
		p.newline()
	case *ast.FunctionDecl:
		p.printFunction(n.Fn)
		p.newline()
	case *ast.ImportDecl:
		p.printImport(n)
	case *ast.ExportNamedDecl:
		p.printExportNamed(n)
	case *ast.ExportAllDecl:
		p.write("export *")
		if n.As != interner.SymNone {
			p.write(" as ")
			p.write(p.name(n.As))
		}
		p.write(" from ")
		p.write(quoteString(p.name(n.From)))
		p.write(";")
		p.newline()
	case *ast.ExportDefaultDecl:
		p.printExportDefault(n)
	}
}

func (p *Printer) printBlock(n *ast.BlockStmt) {
	p.write("{")
	if len(n.List) == 0 {
		p.write("}")
		return
	}
	p.newline()
	p.indent++
	p.printStmts(n.List)
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printBody prints the body of a control construct: blocks inline after a
// space, anything else indented on its own line.
func (p *Printer) printBody(s ast.Stmt) {
	if block, ok := s.(*ast.BlockStmt); ok {
		p.write(" ")
		p.printBlock(block)
		p.newline()
		return
	}
	p.newline()
	p.indent++
	p.printStmt(s)
	p.indent--
}

func (p *Printer) printIf(n *ast.IfStmt) {
	p.write("if (")
	p.printExpr(n.Test, precLowest)
	p.write(")")
	if n.Alt == nil {
		p.printBody(n.Cons)
		return
	}
	if block, ok := n.Cons.(*ast.BlockStmt); ok {
		p.write(" ")
		p.printBlock(block)
		p.write(" ")
	} else {
		p.newline()
		p.indent++
		p.printStmt(n.Cons)
		p.indent--
		p.writeIndent()
	}
	p.write("else")
	if elseIf, ok := n.Alt.(*ast.IfStmt); ok {
		p.write(" ")
		p.printIf(elseIf)
		return
	}
	p.printBody(n.Alt)
}

func (p *Printer) printSwitch(n *ast.SwitchStmt) {
	p.write("switch (")
	p.printExpr(n.Disc, precLowest)
	p.write(") {")
	p.newline()
	for _, cc := range n.Cases {
		p.writeIndent()
		if cc.Test != nil {
			p.write("case ")
			p.printExpr(cc.Test, precLowest)
			p.write(":")
		} else {
			p.write("default:")
		}
		p.newline()
		p.indent++
		p.printStmts(cc.Body)
		p.indent--
	}
	p.writeIndent()
	p.write("}")
	p.newline()
}

func (p *Printer) printExprStmt(n *ast.ExprStmt) {
	if exprStmtNeedsParens(n.Expr) {
		p.write("(")
		p.printExprInner(n.Expr)
		p.write(")")
	} else {
		p.printExpr(n.Expr, precComma)
	}
	p.write(";")
	p.newline()
}

// leadingConstruct walks to the node that produces the first token of an
// expression's printed form, following the left spine of member accesses,
// calls, operators, and assignments.
func leadingConstruct(e ast.Expr) ast.Node {
	for {
		switch n := e.(type) {
		case *ast.MemberExpr:
			e = n.Object
		case *ast.CallExpr:
			e = n.Callee
		case *ast.TaggedTemplate:
			e = n.Tag
		case *ast.BinaryExpr:
			e = n.Left
		case *ast.CondExpr:
			e = n.Test
		case *ast.SequenceExpr:
			e = n.Exprs[0]
		case *ast.UpdateExpr:
			if n.Prefix {
				return n
			}
			e = n.Operand
		case *ast.AssignExpr:
			switch t := n.Target.(type) {
			case *ast.ObjectPattern:
				return t
			case *ast.ArrayPattern:
				return t
			}
			e = n.Target.(ast.Expr)
		default:
			return n
		}
	}
}

// exprStmtNeedsParens reports whether a statement starting with this
// expression would be claimed by another production: `{` opens a block,
// `function` and `async function` open declarations, and an identifier
// spelled `let` can fuse with a following `[` into a lexical declaration.
func exprStmtNeedsParens(e ast.Expr) bool {
	switch h := leadingConstruct(e).(type) {
	case *ast.ObjectLit, *ast.ObjectPattern:
		return true
	case *ast.FunctionLit:
		return h.Role != ast.RoleArrow
	case *ast.Ident:
		return h.Name == interner.SymLet
	}
	return false
}

func (p *Printer) printVarDecl(n *ast.VarDecl, noIn bool) {
	p.write(n.Kind)
	p.write(" ")
	for i, d := range n.Decls {
		if i > 0 {
			p.write(", ")
		}
		p.printPattern(d.Target)
		if d.Init != nil {
			p.write(" = ")
			if noIn && containsInExpr(d.Init) {
				p.write("(")
				p.printExprInner(d.Init)
				p.write(")")
			} else {
				p.printExpr(d.Init, precAssign)
			}
		}
	}
}

func (p *Printer) printForInit(init ast.Node) {
	switch n := init.(type) {
	case *ast.VarDecl:
		p.printVarDecl(n, true)
	case ast.Expr:
		if containsInExpr(n) {
			p.write("(")
			p.printExprInner(n)
			p.write(")")
			return
		}
		p.printExpr(n, precLowest)
	}
}

func (p *Printer) printForTarget(left ast.Node) {
	switch n := left.(type) {
	case *ast.VarDecl:
		p.printVarDecl(n, false)
	case *ast.ObjectPattern:
		p.printObjectPattern(n)
	case *ast.ArrayPattern:
		p.printArrayPattern(n)
	case ast.Expr:
		p.printExpr(n, precCall)
	}
}

// containsInExpr reports whether the expression contains a bare `in`
// operator, which a for-statement head would mistake for the for-in form.
// Function bodies get a fresh context and do not count.
func containsInExpr(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.FunctionLit:
			return false
		case *ast.BinaryExpr:
			if n.Op == "in" {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func (p *Printer) printFunction(fn *ast.FunctionLit) {
	if fn.Role == ast.RoleArrow {
		p.printArrow(fn)
		return
	}
	if fn.Async {
		p.write("async ")
	}
	p.write("function")
	if fn.Generator {
		p.write("*")
	}
	if fn.Name != interner.SymNone {
		p.write(" ")
		p.write(p.name(fn.Name))
	}
	p.printParams(fn.Params)
	p.write(" ")
	p.printBlock(fn.Body)
}

func (p *Printer) printArrow(fn *ast.FunctionLit) {
	if fn.Async {
		p.write("async ")
	}
	p.printParams(fn.Params)
	p.write(" => ")
	if fn.Body != nil {
		p.printBlock(fn.Body)
		return
	}
	if _, ok := leadingConstruct(fn.ExprBody).(*ast.ObjectLit); ok {
		p.write("(")
		p.printExprInner(fn.ExprBody)
		p.write(")")
		return
	}
	p.printExpr(fn.ExprBody, precAssign)
}

func (p *Printer) printParams(params *ast.ParamList) {
	if params == nil {
		p.write("()")
		return
	}
	p.write("(")
	for i, param := range params.List {
		if i > 0 {
			p.write(", ")
		}
		p.printParam(param)
	}
	p.write(")")
}

func (p *Printer) printParam(param *ast.Param) {
	if param.Rest {
		p.write("...")
	}
	p.printPattern(param.Target)
	if param.Default != nil {
		p.write(" = ")
		p.printExpr(param.Default, precAssign)
	}
}

func (p *Printer) printPattern(pat ast.Pattern) {
	switch n := pat.(type) {
	case *ast.Ident:
		p.write(p.name(n.Name))
	case *ast.ObjectPattern:
		p.printObjectPattern(n)
	case *ast.ArrayPattern:
		p.printArrayPattern(n)
	case *ast.MemberExpr:
		p.printMember(n)
	}
}

func (p *Printer) printObjectPattern(n *ast.ObjectPattern) {
	if len(n.Props) == 0 && n.Rest == nil {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, prop := range n.Props {
		if i > 0 {
			p.write(", ")
		}
		p.printPropertyPattern(prop)
	}
	if n.Rest != nil {
		if len(n.Props) > 0 {
			p.write(", ")
		}
		p.write("...")
		p.printPattern(n.Rest)
	}
	p.write(" }")
}

func (p *Printer) printPropertyPattern(prop *ast.PropertyPattern) {
	shorthand := false
	if !prop.Computed {
		if key, ok := prop.Key.(*ast.Ident); ok {
			if val, ok := prop.Value.(*ast.Ident); ok && key.Name == val.Name {
				shorthand = true
			}
		}
	}
	if shorthand {
		p.printPattern(prop.Value)
	} else {
		p.printKey(prop.Key, prop.Computed)
		p.write(": ")
		p.printPattern(prop.Value)
	}
	if prop.Default != nil {
		p.write(" = ")
		p.printExpr(prop.Default, precAssign)
	}
}

func (p *Printer) printArrayPattern(n *ast.ArrayPattern) {
	p.write("[")
	for i, el := range n.Elems {
		if i > 0 {
			p.write(", ")
		}
		if el != nil {
			p.printParam(el)
		}
	}
	if len(n.Elems) > 0 && n.Elems[len(n.Elems)-1] == nil {
		p.write(",")
	}
	p.write("]")
}

func (p *Printer) printImport(n *ast.ImportDecl) {
	p.write("import ")
	hasClause := false
	if n.Default != interner.SymNone {
		p.write(p.name(n.Default))
		hasClause = true
	}
	if n.Namespace != interner.SymNone {
		if hasClause {
			p.write(", ")
		}
		p.write("* as ")
		p.write(p.name(n.Namespace))
		hasClause = true
	}
	if len(n.Named) > 0 {
		if hasClause {
			p.write(", ")
		}
		p.write("{ ")
		for i, spec := range n.Named {
			if i > 0 {
				p.write(", ")
			}
			p.write(p.name(spec.Imported))
			if spec.Local != spec.Imported {
				p.write(" as ")
				p.write(p.name(spec.Local))
			}
		}
		p.write(" }")
		hasClause = true
	}
	if hasClause {
		p.write(" from ")
	}
	p.write(quoteString(p.name(n.From)))
	p.write(";")
	p.newline()
}

func (p *Printer) printExportNamed(n *ast.ExportNamedDecl) {
	p.write("export ")
	if n.Decl != nil {
		p.printStmt(n.Decl)
		return
	}
	if len(n.Specs) == 0 {
		p.write("{}")
	} else {
		p.write("{ ")
		for i, spec := range n.Specs {
			if i > 0 {
				p.write(", ")
			}
			p.write(p.name(spec.Local))
			if spec.Exported != spec.Local {
				p.write(" as ")
				p.write(p.name(spec.Exported))
			}
		}
		p.write(" }")
	}
	if n.HasFrom {
		p.write(" from ")
		p.write(quoteString(p.name(n.From)))
	}
	p.write(";")
	p.newline()
}

func (p *Printer) printExportDefault(n *ast.ExportDefaultDecl) {
	p.write("export default ")
	if fd, ok := n.Decl.(*ast.FunctionDecl); ok {
		p.printFunction(fd.Fn)
		p.newline()
		return
	}
	es, ok := n.Decl.(*ast.ExprStmt)
	if !ok {
		return
	}
	if fn, ok := leadingConstruct(es.Expr).(*ast.FunctionLit); ok && fn.Role != ast.RoleArrow {
		p.write("(")
		p.printExprInner(es.Expr)
		p.write(")")
	} else {
		p.printExpr(es.Expr, precAssign)
	}
	p.write(";")
	p.newline()
}
