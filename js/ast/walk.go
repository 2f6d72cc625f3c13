package ast

// Inspect traverses the tree rooted at n in depth-first order, calling fn
// for each non-nil node. If fn returns false the children of that node are
// skipped. Traversal enters nested functions; callers that need to stop at
// function boundaries return false for *FunctionLit.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Script:
		inspectStmts(n.Body, fn)
	case *Module:
		inspectStmts(n.Body, fn)

	case *Ident, *NullLit, *BoolLit, *NumberLit, *StringLit, *RegExpLit,
		*ThisExpr, *SuperExpr, *EmptyStmt, *DebuggerStmt, *TemplateElement:
		// leaves

	case *TemplateLit:
		for _, q := range n.Quasis {
			Inspect(q, fn)
		}
		inspectExprs(n.Exprs, fn)
	case *TaggedTemplate:
		Inspect(n.Tag, fn)
		Inspect(n.Quasi, fn)
	case *ArrayLit:
		inspectExprs(n.Elems, fn)
	case *SpreadElement:
		Inspect(n.Arg, fn)
	case *ObjectLit:
		for _, m := range n.Members {
			Inspect(m, fn)
		}
	case *PropertyDef:
		Inspect(n.Key, fn)
		Inspect(n.Value, fn)
		Inspect(n.CoverInit, fn)
	case *MethodDef:
		Inspect(n.Key, fn)
		Inspect(n.Fn, fn)
	case *MemberExpr:
		Inspect(n.Object, fn)
		Inspect(n.Prop, fn)
	case *CallExpr:
		Inspect(n.Callee, fn)
		inspectExprs(n.Args, fn)
	case *NewExpr:
		Inspect(n.Callee, fn)
		inspectExprs(n.Args, fn)
	case *UnaryExpr:
		Inspect(n.Operand, fn)
	case *UpdateExpr:
		Inspect(n.Operand, fn)
	case *BinaryExpr:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *AssignExpr:
		Inspect(n.Target, fn)
		Inspect(n.Value, fn)
	case *CondExpr:
		Inspect(n.Test, fn)
		Inspect(n.Cons, fn)
		Inspect(n.Alt, fn)
	case *YieldExpr:
		Inspect(n.Arg, fn)
	case *AwaitExpr:
		Inspect(n.Arg, fn)
	case *SequenceExpr:
		inspectExprs(n.Exprs, fn)
	case *FunctionLit:
		Inspect(n.Params, fn)
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
		Inspect(n.ExprBody, fn)

	case *ParamList:
		for _, p := range n.List {
			Inspect(p, fn)
		}
	case *Param:
		Inspect(n.Target, fn)
		Inspect(n.Default, fn)
	case *ObjectPattern:
		for _, p := range n.Props {
			Inspect(p, fn)
		}
		Inspect(n.Rest, fn)
	case *PropertyPattern:
		Inspect(n.Key, fn)
		Inspect(n.Value, fn)
		Inspect(n.Default, fn)
	case *ArrayPattern:
		for _, e := range n.Elems {
			if e != nil {
				Inspect(e, fn)
			}
		}

	case *BlockStmt:
		inspectStmts(n.List, fn)
	case *VarDecl:
		for _, d := range n.Decls {
			Inspect(d, fn)
		}
	case *Declarator:
		Inspect(n.Target, fn)
		Inspect(n.Init, fn)
	case *ExprStmt:
		Inspect(n.Expr, fn)
	case *IfStmt:
		Inspect(n.Test, fn)
		Inspect(n.Cons, fn)
		Inspect(n.Alt, fn)
	case *DoWhileStmt:
		Inspect(n.Body, fn)
		Inspect(n.Test, fn)
	case *WhileStmt:
		Inspect(n.Test, fn)
		Inspect(n.Body, fn)
	case *ForStmt:
		Inspect(n.Init, fn)
		Inspect(n.Test, fn)
		Inspect(n.Update, fn)
		Inspect(n.Body, fn)
	case *ForInStmt:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
		Inspect(n.Body, fn)
	case *ForOfStmt:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
		Inspect(n.Body, fn)
	case *ContinueStmt, *BreakStmt:
		// leaves
	case *ReturnStmt:
		Inspect(n.Arg, fn)
	case *WithStmt:
		Inspect(n.Object, fn)
		Inspect(n.Body, fn)
	case *LabeledStmt:
		Inspect(n.Body, fn)
	case *SwitchStmt:
		Inspect(n.Disc, fn)
		for _, c := range n.Cases {
			Inspect(c, fn)
		}
	case *CaseClause:
		Inspect(n.Test, fn)
		inspectStmts(n.Body, fn)
	case *ThrowStmt:
		Inspect(n.Arg, fn)
	case *TryStmt:
		Inspect(n.Block, fn)
		Inspect(n.CatchParam, fn)
		if n.CatchBody != nil {
			Inspect(n.CatchBody, fn)
		}
		if n.Finally != nil {
			Inspect(n.Finally, fn)
		}
	case *FunctionDecl:
		Inspect(n.Fn, fn)

	case *ImportDecl:
		for _, s := range n.Named {
			Inspect(s, fn)
		}
	case *ImportSpec, *ExportSpec:
		// leaves
	case *ExportNamedDecl:
		for _, s := range n.Specs {
			Inspect(s, fn)
		}
		Inspect(n.Decl, fn)
	case *ExportAllDecl:
		// leaf
	case *ExportDefaultDecl:
		Inspect(n.Decl, fn)
	}
}

func inspectExprs(list []Expr, fn func(Node) bool) {
	for _, e := range list {
		if e != nil {
			Inspect(e, fn)
		}
	}
}

func inspectStmts(list []Stmt, fn func(Node) bool) {
	for _, s := range list {
		Inspect(s, fn)
	}
}
