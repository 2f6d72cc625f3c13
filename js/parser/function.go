package parser

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// parseFunctionDecl parses a hoistable declaration: function, generator,
// async function, async generator. The leading async token, when present,
// has been checked but not consumed by the caller.
func (p *Parser) parseFunctionDecl(c context, async bool) (*ast.FunctionDecl, error) {
	return p.parseHoistable(c, async, false)
}

// parseHoistable is the shared body of function declarations. Only export
// default admits the anonymous form.
func (p *Parser) parseHoistable(c context, async, anonymousOK bool) (*ast.FunctionDecl, error) {
	start := p.cursor.Peek(0).Span.Start
	if async {
		p.next()
	}
	if _, err := p.cursor.Expect(TokenFunction, "function declaration"); err != nil {
		return nil, err
	}
	generator := false
	if p.cursor.Peek(0).Kind == TokenStar {
		p.next()
		generator = true
	}
	fn := &ast.FunctionLit{Role: ast.RoleFunction, Generator: generator, Async: async}
	if !(anonymousOK && p.cursor.Peek(0).Kind == TokenLParen) {
		// The declared name binds in the enclosing scope, so it is checked
		// against the enclosing yield/await flags, not the function's own.
		name, err := p.parseBindingIdent(c, "function declaration")
		if err != nil {
			return nil, err
		}
		fn.Name = name.Name
		fn.NameSpan = name.Span
	}
	if err := p.parseFunctionRemainder(fn); err != nil {
		return nil, err
	}
	fn.Span = p.spanFrom(start)
	return &ast.FunctionDecl{Span: fn.Span, Fn: fn}, nil
}

// parseFunctionExpr parses a function expression, with optional name. As
// with declarations the name position uses the enclosing flags; only the
// parameter list and body see the generator/async context.
func (p *Parser) parseFunctionExpr(c context, async bool) (ast.Expr, error) {
	start := p.cursor.Peek(0).Span.Start
	if async {
		p.next()
	}
	if _, err := p.cursor.Expect(TokenFunction, "function expression"); err != nil {
		return nil, err
	}
	generator := false
	if p.cursor.Peek(0).Kind == TokenStar {
		p.next()
		generator = true
	}
	fn := &ast.FunctionLit{Role: ast.RoleFunction, Generator: generator, Async: async}
	if p.cursor.Peek(0).Kind != TokenLParen {
		name, err := p.parseBindingIdent(c, "function expression")
		if err != nil {
			return nil, err
		}
		fn.Name = name.Name
		fn.NameSpan = name.Span
	}
	if err := p.parseFunctionRemainder(fn); err != nil {
		return nil, err
	}
	fn.Span = p.spanFrom(start)
	return fn, nil
}

// parseMethodMember parses an object-literal method after any get/set,
// async, or '*' prefix; the property key is still pending.
func (p *Parser) parseMethodMember(c context, start Position, role ast.FunctionRole, generator, async bool) (ast.ObjectMember, error) {
	key, computed, err := p.parsePropertyKey(c)
	if err != nil {
		return nil, err
	}
	return p.parseMethodMemberWithKey(c, start, key, computed, role, generator, async)
}

func (p *Parser) parseMethodMemberWithKey(c context, start Position, key ast.Expr, computed bool, role ast.FunctionRole, generator, async bool) (ast.ObjectMember, error) {
	fn := &ast.FunctionLit{Role: role, Generator: generator, Async: async}
	if err := p.parseFunctionRemainder(fn); err != nil {
		return nil, err
	}
	fn.Span = p.spanFrom(start)
	return &ast.MethodDef{Span: fn.Span, Key: key, Computed: computed, Fn: fn}, nil
}

func fnKindFor(fn *ast.FunctionLit) fnKind {
	switch fn.Role {
	case ast.RoleArrow:
		return fnKindArrow
	case ast.RoleMethod:
		return fnKindMethod
	case ast.RoleGetter:
		return fnKindGetter
	case ast.RoleSetter:
		return fnKindSetter
	}
	if fn.Generator {
		return fnKindGenerator
	}
	return fnKindNormal
}

// parseFunctionRemainder parses the parameter list and body shared by all
// non-arrow forms, then runs the early-error sequence. The cursor's strict
// bit is scoped: a "use strict" in this body does not leak to the caller.
func (p *Parser) parseFunctionRemainder(fn *ast.FunctionLit) error {
	fc := functionContext(fnKindFor(fn), fn.Generator, fn.Async)
	params, err := p.parseParamList(fc)
	if err != nil {
		return err
	}
	fn.Params = params
	if err := p.checkAccessorParams(fn); err != nil {
		return err
	}
	enclosingStrict := p.cursor.Strict()
	ownUseStrict, err := p.parseFunctionBody(fc, fn)
	if err != nil {
		return err
	}
	fn.Strict = p.cursor.Strict()
	p.cursor.SetStrict(enclosingStrict)
	return p.finalizeFunction(fn, ownUseStrict)
}

// parseParamList consumes a parenthesized formal parameter list and
// computes the IsSimple and HasDuplicates flags.
func (p *Parser) parseParamList(c context) (*ast.ParamList, error) {
	lparen, err := p.cursor.Expect(TokenLParen, "parameter list")
	if err != nil {
		return nil, err
	}
	params := &ast.ParamList{}
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRParen || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenEllipsis {
			p.next()
			target, err := p.parseBindingTarget(c, "rest parameter")
			if err != nil {
				return nil, err
			}
			if next := p.cursor.Peek(0); next.Kind == TokenAssign {
				return nil, earlyError(next.Span, "parameter list",
					"rest parameter may not have a default initializer")
			}
			params.List = append(params.List, &ast.Param{
				Span:   Span{Start: tok.Span.Start, End: target.Loc().End},
				Target: target,
				Rest:   true,
			})
			if next := p.cursor.Peek(0); next.Kind != TokenRParen {
				return nil, earlyError(next.Span, "parameter list",
					"rest parameter must be the last formal parameter")
			}
			break
		}
		param, err := p.parseBindingElement(c, "parameter list")
		if err != nil {
			return nil, err
		}
		params.List = append(params.List, param)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	rparen, err := p.expectClose(TokenRParen, lparen, "parameter list")
	if err != nil {
		return nil, err
	}
	params.Span = Span{Start: lparen.Span.Start, End: rparen.Span.End}
	params.IsSimple = true
	for _, param := range params.List {
		if param.Default != nil || param.Rest {
			params.IsSimple = false
			break
		}
		if _, ok := param.Target.(*ast.Ident); !ok {
			params.IsSimple = false
			break
		}
	}
	_, dup := ast.FirstDuplicate(ast.BoundNameRefs(params))
	params.HasDuplicates = dup
	return params, nil
}

func (p *Parser) checkAccessorParams(fn *ast.FunctionLit) error {
	switch fn.Role {
	case ast.RoleGetter:
		if len(fn.Params.List) != 0 {
			return earlyError(fn.Params.Span, "getter",
				"getter must not have any formal parameters")
		}
	case ast.RoleSetter:
		if len(fn.Params.List) != 1 {
			return earlyError(fn.Params.Span, "setter",
				"setter must have exactly one formal parameter")
		}
		if fn.Params.List[0].Rest {
			return earlyError(fn.Params.List[0].Span, "setter",
				"setter function argument must not be a rest parameter")
		}
	}
	return nil
}

// parseFunctionBody parses a brace-delimited body with its directive
// prologue and runs the body-local validations. Reports whether the
// prologue itself declared "use strict".
func (p *Parser) parseFunctionBody(c context, fn *ast.FunctionLit) (bool, error) {
	lbrace, err := p.cursor.Expect(TokenLBrace, "function body")
	if err != nil {
		return false, err
	}
	var body []ast.Stmt
	ownUseStrict, err := p.parseDirectivePrologue(c, &body)
	if err != nil {
		return false, err
	}
	for {
		tok := p.peekExprStart()
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		stmt, err := p.parseStatementListItem(c)
		if err != nil {
			return false, err
		}
		body = append(body, stmt)
	}
	rbrace, err := p.expectClose(TokenRBrace, lbrace, "function body")
	if err != nil {
		return false, err
	}
	fn.Body = &ast.BlockStmt{Span: Span{Start: lbrace.Span.Start, End: rbrace.Span.End}, List: body}
	if err := p.validateFunctionBody(body); err != nil {
		return false, err
	}
	return ownUseStrict, nil
}

// validateFunctionBody applies the statement-list checks a function body
// shares with program bodies. Function bodies use the top-level name
// semantics: inner function declarations are var-scoped, so only let and
// const contribute lexical names. Super usage is checked separately per
// function role.
func (p *Parser) validateFunctionBody(body []ast.Stmt) error {
	lex := ast.TopLevelLexicallyDeclaredNameRefs(body)
	vars := ast.TopLevelVarDeclaredNameRefs(body)
	if ref, ok := ast.FirstDuplicate(lex); ok {
		return earlyError(ref.Span, "function body",
			"identifier %q has already been declared", p.name(ref.Sym))
	}
	if ref, ok := redeclaration(lex, vars); ok {
		return earlyError(ref.Span, "function body",
			"identifier %q has already been declared", p.name(ref.Sym))
	}
	if lbl := ast.CheckLabels(body); lbl != nil {
		return p.labelError(lbl)
	}
	for _, s := range body {
		if err := p.coverInitError(s); err != nil {
			return err
		}
	}
	return nil
}

// finalizeFunction runs the ordered early-error sequence once parameters
// and body are in hand. The first violation aborts the parse, so the order
// here decides which of several defects a pathological input reports.
func (p *Parser) finalizeFunction(fn *ast.FunctionLit, ownUseStrict bool) error {
	params := fn.Params

	// Leftover cover forms in parameter defaults and concise bodies were
	// never reinterpreted as patterns, so they are errors now.
	if err := p.coverInitError(params); err != nil {
		return err
	}
	if fn.ExprBody != nil {
		if err := p.coverInitError(fn.ExprBody); err != nil {
			return err
		}
	}

	// 1. Duplicate parameter names: illegal in strict code, in any
	// non-simple list, and unconditionally in the unique-parameters forms
	// (arrows, methods, accessors).
	if params.HasDuplicates && (fn.Strict || !params.IsSimple || fn.Role != ast.RoleFunction) {
		return earlyError(params.Span, "parameter list",
			"Duplicate parameter name not allowed in this context")
	}

	// 2. A body that declares strict mode requires a simple list. The
	// retroactive strictness of the parameters needs no separate token
	// check: a simple list consists of bare identifiers.
	if ownUseStrict && !params.IsSimple {
		return earlyError(p.useStrictSpan(fn), "function body",
			"Illegal 'use strict' directive in function with non-simple parameter list")
	}

	// 3. The function's own name under strict mode.
	if fn.Name != interner.SymNone && fn.Strict {
		if fn.Name == interner.SymEval || fn.Name == interner.SymArguments {
			return earlyError(fn.NameSpan, "function name",
				"unexpected eval or arguments in strict mode")
		}
		if isStrictReservedSym(fn.Name) || fn.Name == interner.SymYield {
			return earlyError(fn.NameSpan, "function name",
				"%q is a reserved word in strict mode", p.name(fn.Name))
		}
	}

	// 4. Parameter bindings under strict mode. Parse-time checks cover the
	// inherited-strict case; this catches a body-declared directive.
	if fn.Strict {
		for _, ref := range ast.BoundNameRefs(params) {
			if ref.Sym == interner.SymEval || ref.Sym == interner.SymArguments {
				return earlyError(params.Span, "parameter list",
					"unexpected eval or arguments in strict mode")
			}
			if isStrictReservedSym(ref.Sym) || ref.Sym == interner.SymYield {
				return earlyError(ref.Span, "parameter list",
					"%q is a reserved word in strict mode", p.name(ref.Sym))
			}
		}
	}

	// 5. Parameter names may not collide with the body's lexical names.
	if fn.Body != nil {
		lex := ast.TopLevelLexicallyDeclaredNameRefs(fn.Body.List)
		if ref, ok := ast.FirstCollision(ast.BoundNameRefs(params), lex); ok {
			return earlyError(ref.Span, "function body",
				"identifier %q has already been declared", p.name(ref.Sym))
		}
	}

	// 6. Yield and await expressions inside the parameter list. Generator
	// and async parameters parse them to get exact spans; arrows inherit
	// both tokens from the enclosing context and forbid them as parameter
	// content either way.
	if fn.Generator || fn.Role == ast.RoleArrow {
		if span, ok := ast.FindYieldExpr(params); ok {
			return earlyError(span, "parameter list",
				"yield expression not allowed in formal parameters")
		}
	}
	if fn.Async || fn.Role == ast.RoleArrow {
		if span, ok := ast.FindAwaitExpr(params); ok {
			return earlyError(span, "parameter list",
				"await expression not allowed in formal parameters")
		}
	}

	// 7. Super. Methods and accessors legalize property access; nothing
	// here legalizes super calls. Arrows are transparent: their super
	// belongs to whatever encloses them and is checked there.
	switch fn.Role {
	case ast.RoleArrow:
	case ast.RoleMethod, ast.RoleGetter, ast.RoleSetter:
		if err := p.superError(params, true); err != nil {
			return err
		}
		if fn.Body != nil {
			if err := p.superError(fn.Body, true); err != nil {
				return err
			}
		}
	default:
		if err := p.superError(params, false); err != nil {
			return err
		}
		if fn.Body != nil {
			if err := p.superError(fn.Body, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// useStrictSpan locates the body's own "use strict" directive for error
// anchoring.
func (p *Parser) useStrictSpan(fn *ast.FunctionLit) Span {
	for _, s := range fn.BodyStmts() {
		es, ok := s.(*ast.ExprStmt)
		if !ok || es.Directive == "" {
			break
		}
		if es.Directive == "use strict" {
			return es.Span
		}
	}
	return fn.Params.Span
}

// parseIdentArrow parses the single-identifier arrow form. The caller
// verified that '=>' follows on the same line.
func (p *Parser) parseIdentArrow(c context) (ast.Expr, error) {
	tok := p.next()
	ident, err := p.bindingIdentFromToken(c, tok, "arrow function")
	if err != nil {
		return nil, err
	}
	params := &ast.ParamList{
		Span:     tok.Span,
		List:     []*ast.Param{{Span: tok.Span, Target: ident}},
		IsSimple: true,
	}
	return p.parseArrowTail(c, tok.Span.Start, params)
}

// parseArrowTail parses from '=>' onward. Arrow bodies reset yield and
// await to identifier status; the parameters were parsed in the enclosing
// context, which is why leftover yield and await expressions in them are
// rejected by the finalize step rather than at token level.
func (p *Parser) parseArrowTail(c context, start Position, params *ast.ParamList) (ast.Expr, error) {
	if _, err := p.cursor.Expect(TokenArrow, "arrow function"); err != nil {
		return nil, err
	}
	fn := &ast.FunctionLit{Role: ast.RoleArrow, Params: params}
	fc := functionContext(fnKindArrow, false, false)
	enclosingStrict := p.cursor.Strict()
	ownUseStrict := false
	if p.cursor.Peek(0).Kind == TokenLBrace {
		var err error
		ownUseStrict, err = p.parseFunctionBody(fc, fn)
		if err != nil {
			return nil, err
		}
	} else {
		// A concise body is a single assignment expression; the in flag
		// propagates from the enclosing context.
		expr, err := p.parseAssignExpr(fc.withIn(c.allowIn))
		if err != nil {
			return nil, err
		}
		fn.ExprBody = expr
	}
	fn.Strict = p.cursor.Strict()
	p.cursor.SetStrict(enclosingStrict)
	fn.Span = Span{Start: start, End: p.cursor.PrevEnd()}
	if err := p.finalizeFunction(fn, ownUseStrict); err != nil {
		return nil, err
	}
	return fn, nil
}
