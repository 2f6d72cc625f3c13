package ast

import (
	"testing"

	"github.com/dhamidi/kei/js/interner"
)

func span(offset int) Span {
	return Span{Start: Position{Offset: offset}, End: Position{Offset: offset + 1}}
}

func ident(sym Symbol, offset int) *Ident {
	return &Ident{Span: span(offset), Name: sym}
}

func names(t *testing.T, in *interner.Interner, refs []NameRef) []string {
	t.Helper()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = in.Resolve(r.Sym)
	}
	return out
}

func sameNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBoundNames(t *testing.T) {
	in := interner.New()
	a, b, c, d, r := in.Intern("a"), in.Intern("b"), in.Intern("c"), in.Intern("d"), in.Intern("r")

	t.Run("declaration with patterns", func(t *testing.T) {
		decl := &VarDecl{Kind: "var", Decls: []*Declarator{
			{Target: ident(a, 0)},
			{Target: &ObjectPattern{
				Props: []*PropertyPattern{
					{Key: ident(b, 4), Value: ident(b, 4)},
					{Key: ident(c, 7), Value: &ArrayPattern{Elems: []*Param{
						nil,
						{Target: ident(d, 11)},
					}}},
				},
				Rest: ident(r, 15),
			}},
		}}
		got := names(t, in, BoundNameRefs(decl))
		if !sameNames(got, []string{"a", "b", "d", "r"}) {
			t.Errorf("BoundNames = %v, want [a b d r]", got)
		}
	})

	t.Run("parameter list", func(t *testing.T) {
		params := &ParamList{List: []*Param{
			{Target: ident(a, 0)},
			{Target: &ArrayPattern{Elems: []*Param{{Target: ident(b, 3)}}}},
			{Target: ident(r, 8), Rest: true},
		}}
		got := names(t, in, BoundNameRefs(params))
		if !sameNames(got, []string{"a", "b", "r"}) {
			t.Errorf("BoundNames = %v, want [a b r]", got)
		}
	})

	t.Run("function declaration", func(t *testing.T) {
		fd := &FunctionDecl{Fn: &FunctionLit{Name: a, NameSpan: span(9)}}
		if got := BoundNames(fd); len(got) != 1 || got[0] != a {
			t.Errorf("BoundNames = %v, want [a]", got)
		}
		anon := &FunctionDecl{Fn: &FunctionLit{Name: interner.SymNone}}
		if got := BoundNames(anon); len(got) != 0 {
			t.Errorf("BoundNames = %v, want empty", got)
		}
	})

	t.Run("import declaration", func(t *testing.T) {
		imp := &ImportDecl{
			Default:   a,
			Namespace: b,
			Named: []*ImportSpec{
				{Imported: c, Local: d, Span: span(20)},
			},
		}
		got := names(t, in, BoundNameRefs(imp))
		if !sameNames(got, []string{"a", "b", "d"}) {
			t.Errorf("BoundNames = %v, want [a b d]", got)
		}
	})

	t.Run("member target binds nothing", func(t *testing.T) {
		pat := &ArrayPattern{Elems: []*Param{
			{Target: &MemberExpr{Object: ident(a, 0), Prop: ident(b, 2)}},
			{Target: ident(c, 5)},
		}}
		got := names(t, in, BoundNameRefs(pat))
		if !sameNames(got, []string{"c"}) {
			t.Errorf("BoundNames = %v, want [c]", got)
		}
	})
}

func TestFirstDuplicate(t *testing.T) {
	in := interner.New()
	a, b := in.Intern("a"), in.Intern("b")

	refs := []NameRef{{a, span(0)}, {b, span(2)}, {a, span(4)}}
	ref, ok := FirstDuplicate(refs)
	if !ok {
		t.Fatal("no duplicate found")
	}
	if ref.Sym != a {
		t.Errorf("Sym = %v, want a", ref.Sym)
	}
	// The report anchors at the second occurrence.
	if ref.Span.Start.Offset != 4 {
		t.Errorf("Offset = %d, want 4", ref.Span.Start.Offset)
	}

	if _, ok := FirstDuplicate([]NameRef{{a, span(0)}, {b, span(2)}}); ok {
		t.Error("found a duplicate in distinct names")
	}
}

func TestFirstCollision(t *testing.T) {
	in := interner.New()
	x, y, z := in.Intern("x"), in.Intern("y"), in.Intern("z")

	a := []NameRef{{x, span(0)}, {y, span(2)}}
	b := []NameRef{{z, span(4)}, {y, span(6)}, {x, span(8)}}
	ref, ok := FirstCollision(a, b)
	if !ok {
		t.Fatal("no collision found")
	}
	if ref.Sym != y || ref.Span.Start.Offset != 6 {
		t.Errorf("collision = %v@%d, want y@6", ref.Sym, ref.Span.Start.Offset)
	}

	if _, ok := FirstCollision(a, []NameRef{{z, span(4)}}); ok {
		t.Error("found a collision in disjoint sets")
	}
	if !ContainsName(a, x) || ContainsName(a, z) {
		t.Error("ContainsName misreports")
	}
}

func TestDeclaredNameCollection(t *testing.T) {
	in := interner.New()
	a, b, f := in.Intern("a"), in.Intern("b"), in.Intern("f")

	t.Run("function declarations hoist at the top level", func(t *testing.T) {
		list := []Stmt{
			&VarDecl{Kind: "let", Decls: []*Declarator{{Target: ident(a, 0)}}},
			&VarDecl{Kind: "var", Decls: []*Declarator{{Target: ident(b, 7)}}},
			&FunctionDecl{Fn: &FunctionLit{Name: f, NameSpan: span(23)}},
		}
		if got := names(t, in, TopLevelLexicallyDeclaredNameRefs(list)); !sameNames(got, []string{"a"}) {
			t.Errorf("top-level lexical = %v, want [a]", got)
		}
		if got := names(t, in, LexicallyDeclaredNameRefs(list)); !sameNames(got, []string{"a", "f"}) {
			t.Errorf("block lexical = %v, want [a f]", got)
		}
		if got := names(t, in, TopLevelVarDeclaredNameRefs(list)); !sameNames(got, []string{"b", "f"}) {
			t.Errorf("top-level var = %v, want [b f]", got)
		}
		if got := names(t, in, VarDeclaredNameRefs(list)); !sameNames(got, []string{"b"}) {
			t.Errorf("block var = %v, want [b]", got)
		}
	})

	t.Run("vars surface through nested statements", func(t *testing.T) {
		sym := func(s string) Symbol { return in.Intern(s) }
		v := func(name string, off int) *VarDecl {
			return &VarDecl{Kind: "var", Decls: []*Declarator{{Target: ident(sym(name), off)}}}
		}
		list := []Stmt{
			&BlockStmt{List: []Stmt{v("c", 0)}},
			&IfStmt{Cons: v("d", 10), Alt: v("e", 20)},
			&ForStmt{Init: v("g", 30), Body: &EmptyStmt{}},
			&LabeledStmt{Label: sym("l"), Body: v("h", 40)},
			&SwitchStmt{Cases: []*CaseClause{{Body: []Stmt{v("i", 50)}}}},
			&TryStmt{
				Block:     &BlockStmt{List: []Stmt{v("j", 60)}},
				CatchBody: &BlockStmt{List: []Stmt{v("k", 70)}},
				Finally:   &BlockStmt{List: []Stmt{v("m", 80)}},
			},
			&WhileStmt{Body: v("n", 90)},
		}
		got := names(t, in, VarDeclaredNameRefs(list))
		want := []string{"c", "d", "e", "g", "h", "i", "j", "k", "m", "n"}
		if !sameNames(got, want) {
			t.Errorf("vars = %v, want %v", got, want)
		}
		// Lexical declarations inside blocks stay local.
		if got := LexicallyDeclaredNameRefs(list); len(got) != 0 {
			t.Errorf("lexical = %v, want empty", got)
		}
	})

	t.Run("labeled function declaration", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: in.Intern("l"), Body: &FunctionDecl{Fn: &FunctionLit{Name: f, NameSpan: span(3)}}},
		}
		// At the top level it hoists with the vars; in a block it is
		// lexical. It must never appear in both collections at once.
		if got := names(t, in, TopLevelVarDeclaredNameRefs(list)); !sameNames(got, []string{"f"}) {
			t.Errorf("top-level var = %v, want [f]", got)
		}
		if got := TopLevelLexicallyDeclaredNameRefs(list); len(got) != 0 {
			t.Errorf("top-level lexical = %v, want empty", got)
		}
		if got := names(t, in, LexicallyDeclaredNameRefs(list)); !sameNames(got, []string{"f"}) {
			t.Errorf("block lexical = %v, want [f]", got)
		}
		if got := VarDeclaredNameRefs(list); len(got) != 0 {
			t.Errorf("block var = %v, want empty", got)
		}
	})

	t.Run("exported declarations count", func(t *testing.T) {
		list := []Stmt{
			&ExportNamedDecl{Decl: &VarDecl{Kind: "const", Decls: []*Declarator{{Target: ident(a, 0)}}}},
			&ExportNamedDecl{Decl: &VarDecl{Kind: "var", Decls: []*Declarator{{Target: ident(b, 9)}}}},
		}
		if got := names(t, in, LexicallyDeclaredNameRefs(list)); !sameNames(got, []string{"a"}) {
			t.Errorf("lexical = %v, want [a]", got)
		}
		if got := names(t, in, VarDeclaredNameRefs(list)); !sameNames(got, []string{"b"}) {
			t.Errorf("var = %v, want [b]", got)
		}
	})
}

func TestFindYieldAndAwait(t *testing.T) {
	yield := &YieldExpr{Span: span(10)}

	t.Run("direct hit", func(t *testing.T) {
		params := &ParamList{List: []*Param{{Target: ident(1, 0), Default: yield}}}
		got, ok := FindYieldExpr(params)
		if !ok || got.Start.Offset != 10 {
			t.Errorf("FindYieldExpr = %v, %v; want span 10", got, ok)
		}
	})

	t.Run("nested function shields", func(t *testing.T) {
		fn := &FunctionLit{Role: RoleFunction, Params: &ParamList{}, ExprBody: yield}
		params := &ParamList{List: []*Param{{Target: ident(1, 0), Default: fn}}}
		if _, ok := FindYieldExpr(params); ok {
			t.Error("found yield inside a nested function")
		}
	})

	t.Run("arrow shields yield too", func(t *testing.T) {
		arrow := &FunctionLit{Role: RoleArrow, Params: &ParamList{}, ExprBody: yield}
		params := &ParamList{List: []*Param{{Target: ident(1, 0), Default: arrow}}}
		if _, ok := FindYieldExpr(params); ok {
			t.Error("found yield inside a nested arrow")
		}
	})

	t.Run("await", func(t *testing.T) {
		await := &AwaitExpr{Span: span(7)}
		params := &ParamList{List: []*Param{{Target: ident(1, 0), Default: await}}}
		got, ok := FindAwaitExpr(params)
		if !ok || got.Start.Offset != 7 {
			t.Errorf("FindAwaitExpr = %v, %v; want span 7", got, ok)
		}
		shielded := &ParamList{List: []*Param{{
			Target:  ident(1, 0),
			Default: &FunctionLit{Role: RoleFunction, Params: &ParamList{}, ExprBody: await},
		}}}
		if _, ok := FindAwaitExpr(shielded); ok {
			t.Error("found await inside a nested function")
		}
	})
}

func TestFindSuper(t *testing.T) {
	superProp := &MemberExpr{Span: span(4), Object: &SuperExpr{Span: span(4)}, Prop: ident(1, 6)}
	superCall := &CallExpr{Span: span(12), Callee: &SuperExpr{Span: span(12)}}

	body := func(e Expr) *BlockStmt {
		return &BlockStmt{List: []Stmt{&ExprStmt{Expr: e}}}
	}

	t.Run("property", func(t *testing.T) {
		got, ok := FindSuperProperty(body(superProp))
		if !ok || got.Start.Offset != 4 {
			t.Errorf("FindSuperProperty = %v, %v; want span 4", got, ok)
		}
		if _, ok := FindSuperCall(body(superProp)); ok {
			t.Error("property matched the call finder")
		}
	})

	t.Run("call", func(t *testing.T) {
		got, ok := FindSuperCall(body(superCall))
		if !ok || got.Start.Offset != 12 {
			t.Errorf("FindSuperCall = %v, %v; want span 12", got, ok)
		}
		if _, ok := FindSuperProperty(body(superCall)); ok {
			t.Error("call matched the property finder")
		}
	})

	t.Run("arrows are transparent", func(t *testing.T) {
		arrow := &FunctionLit{Role: RoleArrow, Params: &ParamList{}, ExprBody: superProp}
		if _, ok := FindSuperProperty(body(arrow)); !ok {
			t.Error("super not found through an arrow")
		}
	})

	t.Run("functions are opaque", func(t *testing.T) {
		fn := &FunctionLit{Role: RoleFunction, Params: &ParamList{}, ExprBody: superProp}
		if _, ok := FindSuperProperty(body(fn)); ok {
			t.Error("super found through a function boundary")
		}
	})
}

func TestFindCoverInitializedName(t *testing.T) {
	in := interner.New()
	a := in.Intern("a")

	covered := &ObjectLit{Members: []ObjectMember{
		&PropertyDef{Span: span(2), Key: ident(a, 2), Shorthand: true, Value: ident(a, 2), CoverInit: ident(a, 6)},
	}}
	got, ok := FindCoverInitializedName(&ExprStmt{Expr: covered})
	if !ok || got.Start.Offset != 2 {
		t.Errorf("FindCoverInitializedName = %v, %v; want span 2", got, ok)
	}

	plain := &ObjectLit{Members: []ObjectMember{
		&PropertyDef{Span: span(2), Key: ident(a, 2), Value: ident(a, 5)},
	}}
	if _, ok := FindCoverInitializedName(&ExprStmt{Expr: plain}); ok {
		t.Error("plain property reported as cover-initialized")
	}

	shielded := &FunctionLit{Role: RoleFunction, Params: &ParamList{}, ExprBody: covered}
	if _, ok := FindCoverInitializedName(&ExprStmt{Expr: shielded}); ok {
		t.Error("cover form found inside a nested function")
	}
}

func TestCheckLabels(t *testing.T) {
	in := interner.New()
	l, m := in.Intern("l"), in.Intern("m")

	t.Run("valid labeled loop", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: l, Body: &WhileStmt{Body: &BlockStmt{List: []Stmt{
				&ContinueStmt{Label: l},
				&BreakStmt{Label: l},
			}}}},
		}
		if err := CheckLabels(list); err != nil {
			t.Errorf("CheckLabels = %+v, want nil", err)
		}
	})

	t.Run("label peels to the loop", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: l, Body: &LabeledStmt{Label: m, Body: &WhileStmt{
				Body: &ContinueStmt{Label: l},
			}}},
		}
		if err := CheckLabels(list); err != nil {
			t.Errorf("CheckLabels = %+v, want nil", err)
		}
	})

	t.Run("sequential reuse", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: l, Body: &EmptyStmt{}},
			&LabeledStmt{Label: l, Body: &EmptyStmt{}},
		}
		if err := CheckLabels(list); err != nil {
			t.Errorf("CheckLabels = %+v, want nil", err)
		}
	})

	t.Run("duplicate nesting", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: l, Span: span(0), Body: &BlockStmt{List: []Stmt{
				&LabeledStmt{Label: l, Span: span(5), Body: &EmptyStmt{}},
			}}},
		}
		err := CheckLabels(list)
		if err == nil || err.Kind != LabelDuplicate || err.Label != l {
			t.Errorf("CheckLabels = %+v, want duplicate of l", err)
		}
	})

	t.Run("undefined target", func(t *testing.T) {
		list := []Stmt{
			&WhileStmt{Body: &BreakStmt{Label: m, Span: span(9)}},
		}
		err := CheckLabels(list)
		if err == nil || err.Kind != LabelUndefined || err.Label != m {
			t.Errorf("CheckLabels = %+v, want undefined m", err)
		}
	})

	t.Run("continue needs an iteration label", func(t *testing.T) {
		list := []Stmt{
			&LabeledStmt{Label: l, Body: &BlockStmt{List: []Stmt{
				&ContinueStmt{Label: l},
			}}},
		}
		err := CheckLabels(list)
		if err == nil || err.Kind != LabelNotIteration {
			t.Errorf("CheckLabels = %+v, want not-iteration", err)
		}
	})

	t.Run("break outside", func(t *testing.T) {
		err := CheckLabels([]Stmt{&BreakStmt{}})
		if err == nil || err.Kind != BreakOutside {
			t.Errorf("CheckLabels = %+v, want break-outside", err)
		}
	})

	t.Run("continue outside", func(t *testing.T) {
		err := CheckLabels([]Stmt{&ContinueStmt{}})
		if err == nil || err.Kind != ContinueOutside {
			t.Errorf("CheckLabels = %+v, want continue-outside", err)
		}
	})

	t.Run("switch admits break but not continue", func(t *testing.T) {
		brk := []Stmt{&SwitchStmt{Cases: []*CaseClause{{Body: []Stmt{&BreakStmt{}}}}}}
		if err := CheckLabels(brk); err != nil {
			t.Errorf("CheckLabels = %+v, want nil", err)
		}
		cont := []Stmt{&SwitchStmt{Cases: []*CaseClause{{Body: []Stmt{&ContinueStmt{}}}}}}
		err := CheckLabels(cont)
		if err == nil || err.Kind != ContinueOutside {
			t.Errorf("CheckLabels = %+v, want continue-outside", err)
		}
	})

	t.Run("labels do not cross function bodies", func(t *testing.T) {
		// The checker sees only the outer list; the function body has its
		// own traversal, so a stray break inside it is invisible here.
		list := []Stmt{
			&LabeledStmt{Label: l, Body: &ExprStmt{Expr: &FunctionLit{
				Role:   RoleFunction,
				Params: &ParamList{},
				Body:   &BlockStmt{List: []Stmt{&BreakStmt{Label: l}}},
			}}},
		}
		if err := CheckLabels(list); err != nil {
			t.Errorf("CheckLabels = %+v, want nil", err)
		}
	})
}

func TestInspectPruning(t *testing.T) {
	yield := &YieldExpr{Span: span(3)}
	tree := &BlockStmt{List: []Stmt{
		&ExprStmt{Expr: &FunctionLit{Role: RoleFunction, Params: &ParamList{}, ExprBody: yield}},
	}}

	count := func(prune bool) int {
		n := 0
		Inspect(tree, func(node Node) bool {
			if _, ok := node.(*YieldExpr); ok {
				n++
			}
			if _, ok := node.(*FunctionLit); ok && prune {
				return false
			}
			return true
		})
		return n
	}

	if got := count(false); got != 1 {
		t.Errorf("unpruned walk found %d yields, want 1", got)
	}
	if got := count(true); got != 0 {
		t.Errorf("pruned walk found %d yields, want 0", got)
	}
}
