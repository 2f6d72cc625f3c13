package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/kei/js/ast"
)

func TestStatementForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{}", "*ast.BlockStmt"},
		{";", "*ast.EmptyStmt"},
		{"var x;", "*ast.VarDecl"},
		{"let x;", "*ast.VarDecl"},
		{"const x = 1;", "*ast.VarDecl"},
		{"f();", "*ast.ExprStmt"},
		{"if (a) b();", "*ast.IfStmt"},
		{"do b(); while (a);", "*ast.DoWhileStmt"},
		{"while (a) b();", "*ast.WhileStmt"},
		{"for (;;) break;", "*ast.ForStmt"},
		{"for (k in o) f();", "*ast.ForInStmt"},
		{"for (v of l) f();", "*ast.ForOfStmt"},
		{"with (o) f();", "*ast.WithStmt"},
		{"switch (x) {}", "*ast.SwitchStmt"},
		{"throw e;", "*ast.ThrowStmt"},
		{"try { f(); } finally {}", "*ast.TryStmt"},
		{"debugger;", "*ast.DebuggerStmt"},
		{"lbl: f();", "*ast.LabeledStmt"},
		{"function f() {}", "*ast.FunctionDecl"},
		{"async function f() {}", "*ast.FunctionDecl"},
		{"function* g() {}", "*ast.FunctionDecl"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parseScript(t, tt.input)
			if len(prog.Body) != 1 {
				t.Fatalf("got %d statements, want 1", len(prog.Body))
			}
			if got := fmt.Sprintf("%T", prog.Body[0]); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVarDeclarations(t *testing.T) {
	t.Run("kinds", func(t *testing.T) {
		for _, tt := range []struct {
			src     string
			kind    string
			lexical bool
		}{
			{"var a;", "var", false},
			{"let a;", "let", true},
			{"const a = 1;", "const", true},
		} {
			prog := parseScript(t, tt.src)
			decl := prog.Body[0].(*ast.VarDecl)
			if decl.Kind != tt.kind {
				t.Errorf("%q: Kind = %q, want %q", tt.src, decl.Kind, tt.kind)
			}
			if decl.IsLexical() != tt.lexical {
				t.Errorf("%q: IsLexical() = %v, want %v", tt.src, decl.IsLexical(), tt.lexical)
			}
		}
	})

	t.Run("multiple declarators", func(t *testing.T) {
		prog := parseScript(t, "var a, b = 1, c;")
		decl := prog.Body[0].(*ast.VarDecl)
		if len(decl.Decls) != 3 {
			t.Fatalf("got %d declarators, want 3", len(decl.Decls))
		}
		if decl.Decls[0].Init != nil || decl.Decls[1].Init == nil {
			t.Error("initializers landed on the wrong declarators")
		}
	})

	errors := []struct {
		src string
		msg string
	}{
		{"const c;", "missing initializer in const declaration"},
		{"let {a};", "missing initializer in destructuring declaration"},
		{"var [a];", "missing initializer in destructuring declaration"},
		{"let let = 1;", "let is disallowed as a lexically bound name"},
		{"const let = 1;", "let is disallowed as a lexically bound name"},
		{"let a, a;", "has already been declared"},
		{"const a = 1, a = 2;", "has already been declared"},
	}
	for _, tt := range errors {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if !strings.Contains(se.Message, tt.msg) {
				t.Errorf("Message = %q, want it to contain %q", se.Message, tt.msg)
			}
		})
	}

	t.Run("var may repeat names", func(t *testing.T) {
		parseScript(t, "var a, a;")
	})
}

func TestLetDisambiguation(t *testing.T) {
	t.Run("declaration forms", func(t *testing.T) {
		for _, src := range []string{"let x = 1;", "let [a] = l;", "let {b} = o;", "let yield;"} {
			prog := parseScript(t, src)
			if _, ok := prog.Body[0].(*ast.VarDecl); !ok {
				t.Errorf("%q: got %T, want *ast.VarDecl", src, prog.Body[0])
			}
		}
	})

	t.Run("expression forms", func(t *testing.T) {
		for _, src := range []string{"let = 1;", "let.prop;", "let(1);"} {
			prog := parseScript(t, src)
			if _, ok := prog.Body[0].(*ast.ExprStmt); !ok {
				t.Errorf("%q: got %T, want *ast.ExprStmt", src, prog.Body[0])
			}
		}
	})
}

func TestBlockScope(t *testing.T) {
	valid := []string{
		"{ let a; { let a; } }",
		"{ var a; } { var a; }",
		"{ let a; } { let a; }",
		"function f() { { let x; } { let x; } }",
	}
	for _, src := range valid {
		t.Run(src, func(t *testing.T) {
			parseScript(t, src)
		})
	}

	invalid := []string{
		"{ let a; let a; }",
		"{ let a; var a; }",
		"{ var a; let a; }",
		"{ function f() {} function f() {} }",
		"{ let f; function f() {} }",
	}
	for _, src := range invalid {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Context != "block" {
				t.Errorf("Context = %q, want %q", se.Context, "block")
			}
			if !strings.Contains(se.Message, "has already been declared") {
				t.Errorf("Message = %q, want redeclaration message", se.Message)
			}
		})
	}
}

func TestIfElse(t *testing.T) {
	prog := parseScript(t, "if (a) b(); else if (c) d(); else e();")
	stmt := prog.Body[0].(*ast.IfStmt)
	alt, ok := stmt.Alt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("Alt = %T, want *ast.IfStmt", stmt.Alt)
	}
	if alt.Alt == nil {
		t.Error("nested Alt = nil, want else branch")
	}

	t.Run("dangling else binds inner", func(t *testing.T) {
		prog := parseScript(t, "if (a) if (b) c(); else d();")
		outer := prog.Body[0].(*ast.IfStmt)
		if outer.Alt != nil {
			t.Error("outer Alt = non-nil, want dangling else on inner if")
		}
		inner := outer.Cons.(*ast.IfStmt)
		if inner.Alt == nil {
			t.Error("inner Alt = nil, want else branch")
		}
	})
}

func TestForVariants(t *testing.T) {
	t.Run("classic clauses", func(t *testing.T) {
		prog := parseScript(t, "for (var i = 0; i < n; i++) f(i);")
		loop := prog.Body[0].(*ast.ForStmt)
		if loop.Init == nil || loop.Test == nil || loop.Update == nil {
			t.Error("want all three clauses present")
		}
	})

	t.Run("empty clauses", func(t *testing.T) {
		prog := parseScript(t, "for (;;) break;")
		loop := prog.Body[0].(*ast.ForStmt)
		if loop.Init != nil || loop.Test != nil || loop.Update != nil {
			t.Error("want all three clauses absent")
		}
	})

	t.Run("lexical clause", func(t *testing.T) {
		parseScript(t, "for (let i = 0; i < n; i++) f(i);")
	})

	t.Run("for-in declaration", func(t *testing.T) {
		prog := parseScript(t, "for (var k in o) f(k);")
		loop := prog.Body[0].(*ast.ForInStmt)
		if _, ok := loop.Left.(*ast.VarDecl); !ok {
			t.Errorf("Left = %T, want *ast.VarDecl", loop.Left)
		}
	})

	t.Run("for-in expression target", func(t *testing.T) {
		prog := parseScript(t, "for (k in o) f(k);")
		loop := prog.Body[0].(*ast.ForInStmt)
		if _, ok := loop.Left.(*ast.Ident); !ok {
			t.Errorf("Left = %T, want *ast.Ident", loop.Left)
		}
	})

	t.Run("for-of pattern declaration", func(t *testing.T) {
		prog := parseScript(t, "for (let [k, v] of pairs) f(k, v);")
		loop := prog.Body[0].(*ast.ForOfStmt)
		decl, ok := loop.Left.(*ast.VarDecl)
		if !ok {
			t.Fatalf("Left = %T, want *ast.VarDecl", loop.Left)
		}
		if _, ok := decl.Decls[0].Target.(*ast.ArrayPattern); !ok {
			t.Errorf("Target = %T, want *ast.ArrayPattern", decl.Decls[0].Target)
		}
	})

	t.Run("for-of destructuring expression", func(t *testing.T) {
		parseScript(t, "for ({a, b} of l) f(a, b);")
		parseScript(t, "for ([a, b] of l) f(a, b);")
	})

	t.Run("of right side is assignment level", func(t *testing.T) {
		// A top-level comma would be ambiguous with the head itself.
		se := scriptError(t, "for (v of a, b) f();")
		if se.Category != ErrUnexpectedToken {
			t.Errorf("Category = %v, want %v", se.Category, ErrUnexpectedToken)
		}
	})

	errors := []struct {
		src string
		msg string
	}{
		{"for (var i, j in o) f();", "may not declare more than one variable"},
		{"for (let a, b of l) f();", "may not declare more than one variable"},
		{"for (var i = 0 in o) f();", "may not have an initializer"},
		{"for (let x = 1 of l) f();", "may not have an initializer"},
		{"for (const c;;) f();", "missing initializer in const declaration"},
		{"for (a + b of l) f();", "invalid left-hand side in assignment"},
		{"for (let a of l) { var a; }", "has already been declared"},
		{"for (let i;;) { var i; }", "has already been declared"},
	}
	for _, tt := range errors {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if !strings.Contains(se.Message, tt.msg) {
				t.Errorf("Message = %q, want it to contain %q", se.Message, tt.msg)
			}
		})
	}

	t.Run("in operator needs parens in init", func(t *testing.T) {
		parseScript(t, "for (var x = (\"k\" in o);;) break;")
	})
}

func TestSwitchStatement(t *testing.T) {
	prog := parseScript(t, "switch (x) { case 1: f(); break; default: g(); }")
	sw := prog.Body[0].(*ast.SwitchStmt)
	if len(sw.Cases) != 2 {
		t.Fatalf("got %d clauses, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Test == nil {
		t.Error("case clause Test = nil, want expression")
	}
	if sw.Cases[1].Test != nil {
		t.Error("default clause Test = non-nil, want nil")
	}

	t.Run("two defaults", func(t *testing.T) {
		se := scriptError(t, "switch (x) { default: f(); default: g(); }")
		if !strings.Contains(se.Message, "more than one default clause in a switch statement") {
			t.Errorf("Message = %q, want multiple default message", se.Message)
		}
	})

	t.Run("clauses share one scope", func(t *testing.T) {
		se := scriptError(t, "switch (x) { case 1: let a; break; case 2: let a; break; }")
		if !strings.Contains(se.Message, "has already been declared") {
			t.Errorf("Message = %q, want redeclaration message", se.Message)
		}
	})

	t.Run("distinct switches do not share", func(t *testing.T) {
		parseScript(t, "switch (x) { case 1: let a; } switch (y) { case 1: let a; }")
	})
}

func TestThrowStatement(t *testing.T) {
	parseScript(t, "throw new Error(\"boom\");")

	se := scriptError(t, "throw\nx;")
	if se.Category != ErrEarly {
		t.Errorf("Category = %v, want %v", se.Category, ErrEarly)
	}
	if !strings.Contains(se.Message, "no line break is allowed between 'throw' and its expression") {
		t.Errorf("Message = %q, want throw line break message", se.Message)
	}
}

func TestTryStatement(t *testing.T) {
	t.Run("catch binding", func(t *testing.T) {
		prog := parseScript(t, "try { f(); } catch (e) { g(e); }")
		try := prog.Body[0].(*ast.TryStmt)
		if _, ok := try.CatchParam.(*ast.Ident); !ok {
			t.Errorf("CatchParam = %T, want *ast.Ident", try.CatchParam)
		}
		if try.Finally != nil {
			t.Error("Finally = non-nil, want nil")
		}
	})

	t.Run("parameterless catch", func(t *testing.T) {
		prog := parseScript(t, "try { f(); } catch { g(); }")
		try := prog.Body[0].(*ast.TryStmt)
		if try.CatchParam != nil {
			t.Errorf("CatchParam = %T, want nil", try.CatchParam)
		}
		if try.CatchBody == nil {
			t.Error("CatchBody = nil, want block")
		}
	})

	t.Run("catch pattern", func(t *testing.T) {
		prog := parseScript(t, "try { f(); } catch ({message}) { g(message); }")
		try := prog.Body[0].(*ast.TryStmt)
		if _, ok := try.CatchParam.(*ast.ObjectPattern); !ok {
			t.Errorf("CatchParam = %T, want *ast.ObjectPattern", try.CatchParam)
		}
	})

	t.Run("finally only", func(t *testing.T) {
		prog := parseScript(t, "try { f(); } finally { g(); }")
		try := prog.Body[0].(*ast.TryStmt)
		if try.CatchBody != nil || try.Finally == nil {
			t.Error("want no catch and a finally block")
		}
	})

	t.Run("handler required", func(t *testing.T) {
		se := scriptError(t, "try { f(); }")
		if !strings.Contains(se.Message, "'catch' or 'finally'") {
			t.Errorf("Message = %q, want handler expectation", se.Message)
		}
	})

	catchErrors := []string{
		"try {} catch ([a, a]) {}",
		"try {} catch (e) { let e; }",
		"try {} catch (e) { var e; }",
	}
	for _, src := range catchErrors {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Context != "catch clause" {
				t.Errorf("Context = %q, want %q", se.Context, "catch clause")
			}
		})
	}

	t.Run("catch name reusable elsewhere", func(t *testing.T) {
		parseScript(t, "try {} catch (e) {} var e;")
	})
}

func TestWithStatement(t *testing.T) {
	prog := parseScript(t, "with (o) { f(); }")
	if _, ok := prog.Body[0].(*ast.WithStmt); !ok {
		t.Fatalf("got %T, want *ast.WithStmt", prog.Body[0])
	}

	se := scriptError(t, "\"use strict\"; with (o) {}")
	if !strings.Contains(se.Message, "strict mode code may not include a with statement") {
		t.Errorf("Message = %q, want strict with message", se.Message)
	}
}

func TestReturnPlacement(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		se := scriptError(t, "return;")
		if !strings.Contains(se.Message, "illegal return statement") {
			t.Errorf("Message = %q, want illegal return message", se.Message)
		}
	})

	t.Run("nested statement still counts as top level", func(t *testing.T) {
		se := scriptError(t, "if (a) return;")
		if !strings.Contains(se.Message, "illegal return statement") {
			t.Errorf("Message = %q, want illegal return message", se.Message)
		}
	})

	t.Run("inside functions", func(t *testing.T) {
		parseScript(t, "function f() { if (a) return 1; return; }")
	})

	t.Run("concise arrow body", func(t *testing.T) {
		parseScript(t, "var f = x => { return x; };")
	})
}

func TestDeclarationPlacement(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"if (a) function f() {}", "functions can only be declared at the top level or inside a block"},
		{"while (a) function f() {}", "functions can only be declared at the top level or inside a block"},
		{"if (a) async function f() {}", "functions can only be declared at the top level or inside a block"},
		{"import \"m\";", "import declarations may only appear at the top level of a module"},
		{"export var a;", "export declarations may only appear at the top level of a module"},
		{"if (a) import \"m\";", "import declarations may only appear at the top level of a module"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if !strings.Contains(se.Message, tt.msg) {
				t.Errorf("Message = %q, want it to contain %q", se.Message, tt.msg)
			}
		})
	}

	t.Run("block position is fine", func(t *testing.T) {
		parseScript(t, "if (a) { function f() {} }")
	})

	t.Run("no lexical declaration as loop body", func(t *testing.T) {
		se := scriptError(t, "for (;;) let x = 1;")
		if se.Category != ErrUnexpectedToken {
			t.Errorf("Category = %v, want %v", se.Category, ErrUnexpectedToken)
		}
	})
}

func TestLabeledFunctions(t *testing.T) {
	t.Run("legacy sloppy form", func(t *testing.T) {
		prog := parseScript(t, "l: function f() {}")
		labeled := prog.Body[0].(*ast.LabeledStmt)
		if _, ok := labeled.Body.(*ast.FunctionDecl); !ok {
			t.Errorf("Body = %T, want *ast.FunctionDecl", labeled.Body)
		}
	})

	t.Run("rejected in strict mode", func(t *testing.T) {
		se := scriptError(t, "\"use strict\"; l: function f() {}")
		if !strings.Contains(se.Message, "functions can only be declared at the top level or inside a block") {
			t.Errorf("Message = %q, want function placement message", se.Message)
		}
	})

	t.Run("generators never", func(t *testing.T) {
		se := scriptError(t, "l: function* g() {}")
		if !strings.Contains(se.Message, "generators can only be declared at the top level or inside a block") {
			t.Errorf("Message = %q, want generator placement message", se.Message)
		}
	})
}

func TestExpressionStatementRestrictions(t *testing.T) {
	t.Run("brace opens a block", func(t *testing.T) {
		prog := parseScript(t, "{ a: 1 }")
		// Without parens this is a block holding a labeled statement.
		block := prog.Body[0].(*ast.BlockStmt)
		if _, ok := block.List[0].(*ast.LabeledStmt); !ok {
			t.Errorf("got %T, want *ast.LabeledStmt", block.List[0])
		}
	})

	t.Run("function expression needs parens", func(t *testing.T) {
		prog := parseScript(t, "(function f() {});")
		if _, ok := prog.Body[0].(*ast.ExprStmt); !ok {
			t.Errorf("got %T, want *ast.ExprStmt", prog.Body[0])
		}
	})
}
