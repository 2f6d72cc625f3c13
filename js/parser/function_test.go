package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

func parseFnDecl(t *testing.T, src string) (*ast.FunctionDecl, *Parser) {
	t.Helper()
	p := New([]byte(src))
	prog, err := p.ParseScript()
	if err != nil {
		t.Fatalf("ParseScript(%q): %v", src, err)
	}
	decl, ok := prog.Body[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("statement = %T, want *ast.FunctionDecl", prog.Body[0])
	}
	return decl, p
}

func TestFunctionDeclShapes(t *testing.T) {
	tests := []struct {
		src       string
		name      string
		generator bool
		async     bool
	}{
		{"function f() {}", "f", false, false},
		{"function* gen() { yield 1; }", "gen", true, false},
		{"async function load() { await 1; }", "load", false, true},
		{"async function* pump() { yield await 1; }", "pump", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			decl, p := parseFnDecl(t, tt.src)
			fn := decl.Fn
			if fn.Role != ast.RoleFunction {
				t.Errorf("Role = %v, want RoleFunction", fn.Role)
			}
			if got := p.Interner().Resolve(fn.Name); got != tt.name {
				t.Errorf("Name = %q, want %q", got, tt.name)
			}
			if fn.Generator != tt.generator {
				t.Errorf("Generator = %v, want %v", fn.Generator, tt.generator)
			}
			if fn.Async != tt.async {
				t.Errorf("Async = %v, want %v", fn.Async, tt.async)
			}
			if fn.Body == nil {
				t.Error("Body is nil")
			}
		})
	}

	t.Run("anonymous expression", func(t *testing.T) {
		expr, _ := parseExpr(t, "(function () {});")
		fn, ok := expr.(*ast.FunctionLit)
		if !ok {
			t.Fatalf("expr = %T, want *ast.FunctionLit", expr)
		}
		if fn.Name != interner.SymNone {
			t.Errorf("Name = %v, want SymNone", fn.Name)
		}
	})

	t.Run("declaration requires name", func(t *testing.T) {
		se := scriptError(t, "function () {}")
		if se.Category != ErrUnexpectedToken {
			t.Errorf("Category = %v, want ErrUnexpectedToken", se.Category)
		}
		if se.Context != "function declaration" {
			t.Errorf("Context = %q, want \"function declaration\"", se.Context)
		}
	})
}

func TestParamListShapes(t *testing.T) {
	tests := []struct {
		src    string
		count  int
		simple bool
		dups   bool
	}{
		{"(function () {});", 0, true, false},
		{"(function (a) {});", 1, true, false},
		{"(function (a, b, c) {});", 3, true, false},
		{"(function (a, b,) {});", 2, true, false},
		{"(function (a, a) {});", 2, true, true},
		{"(function (a, b = 1) {});", 2, false, false},
		{"(function ({x}, [y]) {});", 2, false, false},
		{"(function (a, ...rest) {});", 2, false, false},
		{"(function (...[a, b]) {});", 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, _ := parseExpr(t, tt.src)
			fn := expr.(*ast.FunctionLit)
			if got := len(fn.Params.List); got != tt.count {
				t.Fatalf("got %d params, want %d", got, tt.count)
			}
			if fn.Params.IsSimple != tt.simple {
				t.Errorf("IsSimple = %v, want %v", fn.Params.IsSimple, tt.simple)
			}
			if fn.Params.HasDuplicates != tt.dups {
				t.Errorf("HasDuplicates = %v, want %v", fn.Params.HasDuplicates, tt.dups)
			}
		})
	}

	t.Run("rest flag", func(t *testing.T) {
		expr, _ := parseExpr(t, "(function (a, ...rest) {});")
		fn := expr.(*ast.FunctionLit)
		if fn.Params.List[0].Rest {
			t.Error("first param has Rest set")
		}
		if !fn.Params.List[1].Rest {
			t.Error("rest param lacks Rest flag")
		}
	})
}

func TestDuplicateParams(t *testing.T) {
	// A simple list in sloppy code tolerates duplicates; everything else
	// rejects them.
	ok := []string{
		"(function (a, a) {});",
		"var f = function* (a, a) {};",
		"function f(a, a) {}",
	}
	for _, src := range ok {
		t.Run(src, func(t *testing.T) {
			prog := parseScript(t, src)
			fn := firstFn(t, prog)
			if !fn.Params.HasDuplicates {
				t.Error("HasDuplicates = false, want true")
			}
			if !fn.Params.IsSimple {
				t.Error("IsSimple = false, want true")
			}
		})
	}

	bad := []string{
		`"use strict"; (function (a, a) {});`,
		`(function (a, a) { "use strict"; });`,
		`(function* (a, a) { "use strict"; });`,
		"(function ({a}, {a}) {});",
		"(function* ({a}, {a}) {});",
		"(function (a, a = 1) {});",
		"(function (a, ...a) {});",
		"((a, a) => 0);",
		"({ m(a, a) {} });",
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Category != ErrEarly {
				t.Errorf("Category = %v, want ErrEarly", se.Category)
			}
			if se.Message != "Duplicate parameter name not allowed in this context" {
				t.Errorf("Message = %q", se.Message)
			}
			if se.Context != "parameter list" {
				t.Errorf("Context = %q, want \"parameter list\"", se.Context)
			}
		})
	}

	t.Run("duplicate inside one pattern", func(t *testing.T) {
		se := scriptError(t, "(function ({a, b: a}) {});")
		if !strings.Contains(se.Message, "Duplicate parameter name") {
			t.Errorf("Message = %q", se.Message)
		}
	})
}

func TestRestParams(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"(function (...r, a) {});", "rest parameter must be the last formal parameter"},
		{"(function (...r,) {});", "rest parameter must be the last formal parameter"},
		{"((...r, a) => 0);", "rest parameter must be the last formal parameter"},
		{"(function (...r = 1) {});", "rest parameter may not have a default initializer"},
		{"((...r = 1) => 0);", "rest parameter may not have a default initializer"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if se.Category != ErrEarly {
				t.Errorf("Category = %v, want ErrEarly", se.Category)
			}
			if se.Message != tt.msg {
				t.Errorf("Message = %q, want %q", se.Message, tt.msg)
			}
		})
	}

	t.Run("rest in last position", func(t *testing.T) {
		parseScript(t, "(function (a, b, ...rest) {});")
		parseScript(t, "var f = (...args) => args;")
	})
}

func TestAccessorParams(t *testing.T) {
	ok := []string{
		"({ get x() {} });",
		"({ set x(v) {} });",
		"({ set x([a, b]) {} });",
		"({ set x(v = 1) {} });",
	}
	for _, src := range ok {
		t.Run(src, func(t *testing.T) {
			parseScript(t, src)
		})
	}

	tests := []struct {
		src     string
		msg     string
		context string
	}{
		{"({ get x(a) {} });", "getter must not have any formal parameters", "getter"},
		{"({ set x() {} });", "setter must have exactly one formal parameter", "setter"},
		{"({ set x(a, b) {} });", "setter must have exactly one formal parameter", "setter"},
		{"({ set x(...v) {} });", "setter function argument must not be a rest parameter", "setter"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if se.Message != tt.msg {
				t.Errorf("Message = %q, want %q", se.Message, tt.msg)
			}
			if se.Context != tt.context {
				t.Errorf("Context = %q, want %q", se.Context, tt.context)
			}
		})
	}
}

func TestUseStrictWithNonSimpleParams(t *testing.T) {
	bad := []string{
		`(function (a = 1) { "use strict"; });`,
		`(function ({a}) { "use strict"; });`,
		`(function (...r) { "use strict"; });`,
		`((a = 1) => { "use strict"; });`,
		`({ m(a = 1) { "use strict"; } });`,
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Category != ErrEarly {
				t.Errorf("Category = %v, want ErrEarly", se.Category)
			}
			if se.Message != "Illegal 'use strict' directive in function with non-simple parameter list" {
				t.Errorf("Message = %q", se.Message)
			}
			if se.Context != "function body" {
				t.Errorf("Context = %q, want \"function body\"", se.Context)
			}
		})
	}

	t.Run("simple list accepts the directive", func(t *testing.T) {
		prog := parseScript(t, `(function (a) { "use strict"; return a; });`)
		fn := firstFn(t, prog)
		if !fn.Strict {
			t.Error("Strict = false, want true")
		}
	})

	t.Run("inherited strictness is fine", func(t *testing.T) {
		prog := parseScript(t, `"use strict"; (function (a = 1) {});`)
		fn := firstFn(t, prog)
		if !fn.Strict {
			t.Error("Strict = false, want true")
		}
		if fn.Params.IsSimple {
			t.Error("IsSimple = true, want false")
		}
	})
}

func TestFunctionNamesUnderStrict(t *testing.T) {
	// Sloppy code accepts all of these names.
	ok := []string{
		"(function* eval() {});",
		"(function* arguments() {});",
		"(function yield() {});",
		"function interface() {}",
	}
	for _, src := range ok {
		t.Run(src, func(t *testing.T) {
			parseScript(t, src)
		})
	}

	tests := []struct {
		src     string
		msg     string
		context string
	}{
		// Inherited strict mode rejects the name while reading it.
		{`"use strict"; (function* eval() {});`, "unexpected eval or arguments in strict mode", "function expression"},
		{`"use strict"; function* eval() {}`, "unexpected eval or arguments in strict mode", "function declaration"},
		{`"use strict"; (function arguments() {});`, "unexpected eval or arguments in strict mode", "function expression"},
		// A directive in the body rejects it retroactively.
		{`(function* eval() { "use strict"; });`, "unexpected eval or arguments in strict mode", "function name"},
		{`(function arguments() { "use strict"; });`, "unexpected eval or arguments in strict mode", "function name"},
		{`(function yield() { "use strict"; });`, `"yield" is a reserved word in strict mode`, "function name"},
		{`(function interface() { "use strict"; });`, `"interface" is a reserved word in strict mode`, "function name"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := scriptError(t, tt.src)
			if se.Category != ErrEarly {
				t.Errorf("Category = %v, want ErrEarly", se.Category)
			}
			if se.Message != tt.msg {
				t.Errorf("Message = %q, want %q", se.Message, tt.msg)
			}
			if se.Context != tt.context {
				t.Errorf("Context = %q, want %q", se.Context, tt.context)
			}
		})
	}
}

func TestYieldAwaitInParams(t *testing.T) {
	yieldErrs := []string{
		"function* gen(a = yield 1) {}",
		"function* gen(a = yield) {}",
		"var f = function* (a = 1 + (yield 2)) {};",
		"function* g() { ((a = yield 1) => a); }",
	}
	for _, src := range yieldErrs {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Message != "yield expression not allowed in formal parameters" {
				t.Errorf("Message = %q", se.Message)
			}
			if se.Context != "parameter list" {
				t.Errorf("Context = %q, want \"parameter list\"", se.Context)
			}
		})
	}

	awaitErrs := []string{
		"async function f(a = await 1) {}",
		"async function* f(a = await 1) {}",
	}
	for _, src := range awaitErrs {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Message != "await expression not allowed in formal parameters" {
				t.Errorf("Message = %q", se.Message)
			}
		})
	}

	// In generator and async parameter lists the words are not even names.
	t.Run("yield as generator param name", func(t *testing.T) {
		se := scriptError(t, "function* g(yield) {}")
		if se.Message != "'yield' cannot be used as an identifier in this context" {
			t.Errorf("Message = %q", se.Message)
		}
	})
	t.Run("await as async param name", func(t *testing.T) {
		se := scriptError(t, "async function f(await) {}")
		if se.Message != "'await' cannot be used as an identifier in this context" {
			t.Errorf("Message = %q", se.Message)
		}
	})

	// Outside a generator, yield in a default is an ordinary reference.
	t.Run("sloppy function default", func(t *testing.T) {
		parseScript(t, "var yield = 1; (function (a = yield) {});")
	})
	t.Run("sloppy arrow default", func(t *testing.T) {
		parseScript(t, "var yield = 1; var f = (a = yield) => a;")
	})
	// A nested function body shields its contents from the outer check.
	t.Run("nested function is opaque", func(t *testing.T) {
		parseScript(t, "function* g(cb = function (yield) { return yield; }) {}")
	})
}

func TestSuperPlacement(t *testing.T) {
	ok := []string{
		"({ m() { return super.x; } });",
		"({ m() { return super[0]; } });",
		"({ get g() { return super.x; } });",
		"({ set s(v) { super.x = v; } });",
		"({ *m() { yield super.x; } });",
		"({ async m() { return super.x; } });",
		"({ m() { var f = () => super.x; } });",
		"({ m() { var f = () => () => super.x; } });",
		"(function f() { ({ m() { return super.x; } }); });",
	}
	for _, src := range ok {
		t.Run(src, func(t *testing.T) {
			parseScript(t, src)
		})
	}

	bad := []string{
		"(function f() { super.x; });",
		"(function f() { super(); });",
		"function* gen() { super.x; }",
		"async function f() { super.x; }",
		"({ m() { super(); } });",
		"({ get g() { super(); } });",
		"(function f() { var g = () => super.x; });",
		"(function (a = super.x) {});",
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			se := scriptError(t, src)
			if se.Category != ErrEarly {
				t.Errorf("Category = %v, want ErrEarly", se.Category)
			}
			if !strings.Contains(se.Message, "invalid super usage") {
				t.Errorf("Message = %q, want invalid super usage", se.Message)
			}
		})
	}
}

func TestParamBodyCollisions(t *testing.T) {
	tests := []struct {
		src     string
		wantErr bool
	}{
		{"(function (a) { let a; });", true},
		{"(function (a) { const a = 1; });", true},
		{"(function ({a}) { let a; });", true},
		{"(function (a) { var a; });", false},
		{"(function (a) { function a() {} });", false},
		{"(function (a) { { let a; } });", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if !tt.wantErr {
				parseScript(t, tt.src)
				return
			}
			se := scriptError(t, tt.src)
			if !strings.Contains(se.Message, "has already been declared") {
				t.Errorf("Message = %q", se.Message)
			}
			if se.Context != "function body" {
				t.Errorf("Context = %q, want \"function body\"", se.Context)
			}
		})
	}
}

func TestStrictModeScoping(t *testing.T) {
	t.Run("directive does not leak", func(t *testing.T) {
		// A with statement after the function proves the parser is back in
		// sloppy mode.
		prog := parseScript(t, `(function s() { "use strict"; }); with (x) {}`)
		if prog.Strict {
			t.Error("script became strict")
		}
	})

	t.Run("sibling functions are independent", func(t *testing.T) {
		parseScript(t, `(function a() { "use strict"; }); (function b(c, c) {});`)
	})

	t.Run("nested functions inherit", func(t *testing.T) {
		se := scriptError(t, `(function outer() { "use strict"; (function inner(a, a) {}); });`)
		if se.Message != "Duplicate parameter name not allowed in this context" {
			t.Errorf("Message = %q", se.Message)
		}
	})

	t.Run("file strictness reaches functions", func(t *testing.T) {
		prog := parseScript(t, `"use strict"; (function f() {});`)
		if !firstFn(t, prog).Strict {
			t.Error("Strict = false, want true")
		}
	})

	t.Run("sloppy function stays sloppy", func(t *testing.T) {
		prog := parseScript(t, "(function f() {});")
		if firstFn(t, prog).Strict {
			t.Error("Strict = true, want false")
		}
	})
}

func TestEarlyErrorOrder(t *testing.T) {
	// Duplicates outrank the illegal-directive check when both apply.
	se := scriptError(t, `(function (a, a = 1) { "use strict"; });`)
	if se.Message != "Duplicate parameter name not allowed in this context" {
		t.Errorf("Message = %q", se.Message)
	}

	// Duplicates also outrank the param/body collision check.
	se = scriptError(t, `"use strict"; (function (a, a) { let a; });`)
	if se.Message != "Duplicate parameter name not allowed in this context" {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestArrowForms(t *testing.T) {
	t.Run("identifier param concise body", func(t *testing.T) {
		expr, _ := parseExpr(t, "var0 => var0 * 2;")
		fn := expr.(*ast.FunctionLit)
		if fn.Role != ast.RoleArrow {
			t.Errorf("Role = %v, want RoleArrow", fn.Role)
		}
		if fn.ExprBody == nil || fn.Body != nil {
			t.Error("want concise body only")
		}
		if len(fn.Params.List) != 1 || !fn.Params.IsSimple {
			t.Errorf("params = %d simple=%v, want 1 simple", len(fn.Params.List), fn.Params.IsSimple)
		}
	})

	t.Run("empty params", func(t *testing.T) {
		expr, _ := parseExpr(t, "(() => 1);")
		fn := expr.(*ast.FunctionLit)
		if len(fn.Params.List) != 0 {
			t.Errorf("got %d params, want 0", len(fn.Params.List))
		}
	})

	t.Run("full param list", func(t *testing.T) {
		expr, _ := parseExpr(t, "((a, b = 2, ...c) => a);")
		fn := expr.(*ast.FunctionLit)
		if len(fn.Params.List) != 3 {
			t.Fatalf("got %d params, want 3", len(fn.Params.List))
		}
		if fn.Params.IsSimple {
			t.Error("IsSimple = true, want false")
		}
		if !fn.Params.List[2].Rest {
			t.Error("last param lacks Rest flag")
		}
	})

	t.Run("trailing comma", func(t *testing.T) {
		expr, _ := parseExpr(t, "((a, b,) => a);")
		fn := expr.(*ast.FunctionLit)
		if len(fn.Params.List) != 2 {
			t.Errorf("got %d params, want 2", len(fn.Params.List))
		}
	})

	t.Run("block body", func(t *testing.T) {
		expr, _ := parseExpr(t, "((a) => { return a; });")
		fn := expr.(*ast.FunctionLit)
		if fn.Body == nil || fn.ExprBody != nil {
			t.Error("want block body only")
		}
	})

	t.Run("curried", func(t *testing.T) {
		expr, _ := parseExpr(t, "a => b => a + b;")
		outer := expr.(*ast.FunctionLit)
		if _, ok := outer.ExprBody.(*ast.FunctionLit); !ok {
			t.Errorf("inner body = %T, want *ast.FunctionLit", outer.ExprBody)
		}
	})

	t.Run("concise body stops at comma", func(t *testing.T) {
		prog := parseScript(t, "var f = x => x, g;")
		decl := prog.Body[0].(*ast.VarDecl)
		if len(decl.Decls) != 2 {
			t.Fatalf("got %d declarators, want 2", len(decl.Decls))
		}
		if _, ok := decl.Decls[0].Init.(*ast.FunctionLit); !ok {
			t.Errorf("first init = %T, want *ast.FunctionLit", decl.Decls[0].Init)
		}
	})

	t.Run("newline before arrow", func(t *testing.T) {
		se := scriptError(t, "(a)\n=> a;")
		if se.Category != ErrUnexpectedToken {
			t.Errorf("Category = %v, want ErrUnexpectedToken", se.Category)
		}
	})

	t.Run("strict eval param", func(t *testing.T) {
		se := scriptError(t, `"use strict"; var f = eval => 1;`)
		if se.Message != "unexpected eval or arguments in strict mode" {
			t.Errorf("Message = %q", se.Message)
		}
	})
}

func TestAsyncFunctionForms(t *testing.T) {
	t.Run("async is still an identifier", func(t *testing.T) {
		prog := parseScript(t, "var async = 1; async;")
		if len(prog.Body) != 2 {
			t.Fatalf("got %d statements, want 2", len(prog.Body))
		}
	})

	t.Run("newline splits the declaration", func(t *testing.T) {
		prog := parseScript(t, "async\nfunction f() {}")
		if len(prog.Body) != 2 {
			t.Fatalf("got %d statements, want 2", len(prog.Body))
		}
		if _, ok := prog.Body[0].(*ast.ExprStmt); !ok {
			t.Errorf("first = %T, want *ast.ExprStmt", prog.Body[0])
		}
		decl, ok := prog.Body[1].(*ast.FunctionDecl)
		if !ok {
			t.Fatalf("second = %T, want *ast.FunctionDecl", prog.Body[1])
		}
		if decl.Fn.Async {
			t.Error("Async = true, want false")
		}
	})

	t.Run("async method flags", func(t *testing.T) {
		prog := parseScript(t, "({ async *m(a) { yield await a; } });")
		fn := firstFn(t, prog)
		if !fn.Async || !fn.Generator || fn.Role != ast.RoleMethod {
			t.Errorf("Async=%v Generator=%v Role=%v, want async generator method",
				fn.Async, fn.Generator, fn.Role)
		}
	})
}

func TestFunctionTermination(t *testing.T) {
	t.Run("unterminated body", func(t *testing.T) {
		se := scriptError(t, "(function f() {")
		if se.Category != ErrUnterminated {
			t.Errorf("Category = %v, want ErrUnterminated", se.Category)
		}
		if se.Message != "unterminated function body" {
			t.Errorf("Message = %q", se.Message)
		}
	})

	t.Run("missing parameter list", func(t *testing.T) {
		se := scriptError(t, "function f {}")
		if se.Category != ErrUnexpectedToken {
			t.Errorf("Category = %v, want ErrUnexpectedToken", se.Category)
		}
		if se.Context != "parameter list" {
			t.Errorf("Context = %q, want \"parameter list\"", se.Context)
		}
	})
}
