package parser

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// parseStatementListItem parses a statement or a declaration. Blocks,
// function bodies, and program bodies go through here; single-statement
// positions use parseStatement, which rejects declarations.
func (p *Parser) parseStatementListItem(c context) (ast.Stmt, error) {
	tok := p.peekExprStart()
	switch tok.Kind {
	case TokenFunction:
		return p.parseFunctionDecl(c, false)
	case TokenConst:
		return p.parseVarDecl(c, false)
	case TokenIdent:
		if tok.Sym == interner.SymLet && p.letDeclFollows() {
			return p.parseVarDecl(c, false)
		}
		if tok.Sym == interner.SymAsync {
			next := p.cursor.Peek(1)
			if next.Kind == TokenFunction && !next.NewlineBefore {
				return p.parseFunctionDecl(c, true)
			}
		}
	}
	return p.parseStatement(c)
}

// letDeclFollows reports whether a peeked `let` begins a lexical
// declaration rather than an identifier expression. The deciding token is
// the one after `let`: a binding name or a destructuring pattern opener.
func (p *Parser) letDeclFollows() bool {
	switch p.cursor.Peek(1).Kind {
	case TokenIdent, TokenYield, TokenAwait, TokenLBracket, TokenLBrace:
		return true
	}
	return false
}

func (p *Parser) parseStatement(c context) (ast.Stmt, error) {
	tok := p.peekExprStart()
	switch tok.Kind {
	case TokenLBrace:
		return p.parseBlock(c)
	case TokenVar:
		return p.parseVarDecl(c, false)
	case TokenSemicolon:
		p.next()
		return &ast.EmptyStmt{Span: tok.Span}, nil
	case TokenIf:
		return p.parseIf(c)
	case TokenDo:
		return p.parseDoWhile(c)
	case TokenWhile:
		return p.parseWhile(c)
	case TokenFor:
		return p.parseFor(c)
	case TokenContinue:
		return p.parseContinue(c)
	case TokenBreak:
		return p.parseBreak(c)
	case TokenReturn:
		return p.parseReturn(c)
	case TokenWith:
		return p.parseWith(c)
	case TokenSwitch:
		return p.parseSwitch(c)
	case TokenThrow:
		return p.parseThrow(c)
	case TokenTry:
		return p.parseTry(c)
	case TokenDebugger:
		p.next()
		if err := p.semicolon("debugger statement"); err != nil {
			return nil, err
		}
		return &ast.DebuggerStmt{Span: p.spanFrom(tok.Span.Start)}, nil
	case TokenImport:
		return nil, earlyError(tok.Span, "statement",
			"import declarations may only appear at the top level of a module")
	case TokenExport:
		return nil, earlyError(tok.Span, "statement",
			"export declarations may only appear at the top level of a module")
	case TokenFunction:
		return nil, earlyError(tok.Span, "statement",
			"functions can only be declared at the top level or inside a block")
	case TokenIdent:
		if tok.Sym == interner.SymAsync {
			next := p.cursor.Peek(1)
			if next.Kind == TokenFunction && !next.NewlineBefore {
				return nil, earlyError(tok.Span, "statement",
					"functions can only be declared at the top level or inside a block")
			}
		}
	}
	if tok.IsIdentLike() && p.cursor.Peek(1).Kind == TokenColon {
		return p.parseLabeled(c)
	}
	return p.parseExprStatement(c)
}

func (p *Parser) parseBlock(c context) (*ast.BlockStmt, error) {
	lbrace, err := p.cursor.Expect(TokenLBrace, "block")
	if err != nil {
		return nil, err
	}
	var list []ast.Stmt
	for {
		tok := p.peekExprStart()
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		item, err := p.parseStatementListItem(c)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "block"); err != nil {
		return nil, err
	}
	if err := p.validateBlockScope(list); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Span: p.spanFrom(lbrace.Span.Start), List: list}, nil
}

// validateBlockScope enforces the block-level declaration rules: lexical
// names are unique and do not collide with var names declared inside the
// block.
func (p *Parser) validateBlockScope(list []ast.Stmt) error {
	lex := ast.LexicallyDeclaredNameRefs(list)
	if ref, ok := ast.FirstDuplicate(lex); ok {
		return earlyError(ref.Span, "block", "identifier %q has already been declared", p.name(ref.Sym))
	}
	if ref, ok := redeclaration(lex, ast.VarDeclaredNameRefs(list)); ok {
		return earlyError(ref.Span, "block", "identifier %q has already been declared", p.name(ref.Sym))
	}
	return nil
}

// expectClose is Expect for closing delimiters: running into end of input
// reports the construct as unterminated, anchored at its opener.
func (p *Parser) expectClose(kind TokenKind, open Token, what string) (Token, error) {
	if tok := p.cursor.Peek(0); tok.Kind == TokenEOF {
		return Token{}, unterminated(open.Span, what)
	}
	return p.cursor.Expect(kind, what)
}

// parseVarDecl parses a var, let, or const declaration including the
// terminating semicolon. Inside a for head the caller owns what follows
// the declarators, so inFor suppresses both the semicolon and the
// missing-initializer checks that the head variants relax.
func (p *Parser) parseVarDecl(c context, inFor bool) (*ast.VarDecl, error) {
	kindTok := p.next()
	kind := kindTok.Literal
	what := kind + " declaration"
	decl := &ast.VarDecl{Kind: kind}
	for {
		d, err := p.parseDeclarator(c, what)
		if err != nil {
			return nil, err
		}
		if !inFor && d.Init == nil {
			if kind == "const" {
				return nil, earlyError(d.Span, what, "missing initializer in const declaration")
			}
			if _, isIdent := d.Target.(*ast.Ident); !isIdent {
				return nil, earlyError(d.Span, what, "missing initializer in destructuring declaration")
			}
		}
		decl.Decls = append(decl.Decls, d)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	decl.Span = p.spanFrom(kindTok.Span.Start)
	if err := p.validateDeclNames(decl, what); err != nil {
		return nil, err
	}
	if !inFor {
		if err := p.semicolon(what); err != nil {
			return nil, err
		}
		decl.Span = p.spanFrom(kindTok.Span.Start)
	}
	return decl, nil
}

// validateDeclNames applies the lexical-declaration name rules: no
// duplicates within one declaration and no binding named let.
func (p *Parser) validateDeclNames(decl *ast.VarDecl, what string) error {
	if !decl.IsLexical() {
		return nil
	}
	refs := ast.BoundNameRefs(decl)
	for _, r := range refs {
		if r.Sym == interner.SymLet {
			return earlyError(r.Span, what, "let is disallowed as a lexically bound name")
		}
	}
	if ref, ok := ast.FirstDuplicate(refs); ok {
		return earlyError(ref.Span, what, "identifier %q has already been declared", p.name(ref.Sym))
	}
	return nil
}

func (p *Parser) parseDeclarator(c context, what string) (*ast.Declarator, error) {
	target, err := p.parseBindingTarget(c, what)
	if err != nil {
		return nil, err
	}
	d := &ast.Declarator{Target: target}
	if p.cursor.Peek(0).Kind == TokenAssign {
		p.next()
		init, err := p.parseAssignExpr(c)
		if err != nil {
			return nil, err
		}
		d.Init = init
	}
	d.Span = Span{Start: target.Loc().Start, End: p.cursor.PrevEnd()}
	return d, nil
}

func (p *Parser) parseIf(c context) (ast.Stmt, error) {
	ifTok := p.next()
	if _, err := p.cursor.Expect(TokenLParen, "if statement"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "if statement"); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Test: test, Cons: cons}
	if tok := p.cursor.Peek(0); tok.Kind == TokenElse {
		p.next()
		alt, err := p.parseStatement(c)
		if err != nil {
			return nil, err
		}
		stmt.Alt = alt
	}
	stmt.Span = p.spanFrom(ifTok.Span.Start)
	return stmt, nil
}

func (p *Parser) parseDoWhile(c context) (ast.Stmt, error) {
	doTok := p.next()
	body, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenWhile, "do-while statement"); err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenLParen, "do-while statement"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "do-while statement"); err != nil {
		return nil, err
	}
	// The closing paren of do-while always accepts an inserted semicolon,
	// newline or not.
	p.cursor.SetGoal(GoalRegExp)
	if p.cursor.Peek(0).Kind == TokenSemicolon {
		p.next()
	}
	return &ast.DoWhileStmt{Span: p.spanFrom(doTok.Span.Start), Body: body, Test: test}, nil
}

func (p *Parser) parseWhile(c context) (ast.Stmt, error) {
	whileTok := p.next()
	if _, err := p.cursor.Expect(TokenLParen, "while statement"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "while statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Span: p.spanFrom(whileTok.Span.Start), Test: test, Body: body}, nil
}

func (p *Parser) parseFor(c context) (ast.Stmt, error) {
	forTok := p.next()
	if _, err := p.cursor.Expect(TokenLParen, "for statement"); err != nil {
		return nil, err
	}

	tok := p.peekExprStart()
	switch {
	case tok.Kind == TokenSemicolon:
		p.next()
		return p.parseForClauses(c, forTok, nil)
	case tok.Kind == TokenVar || tok.Kind == TokenConst ||
		(tok.Kind == TokenIdent && tok.Sym == interner.SymLet && p.letDeclFollows()):
		decl, err := p.parseVarDecl(c.withIn(false), true)
		if err != nil {
			return nil, err
		}
		head := p.cursor.Peek(0)
		if head.Kind == TokenIn || (head.Kind == TokenIdent && head.Sym == interner.SymOf) {
			if err := p.checkForEachDecl(decl, head); err != nil {
				return nil, err
			}
			return p.parseForEach(c, forTok, decl, head.Kind == TokenIn)
		}
		for _, d := range decl.Decls {
			if decl.Kind == "const" && d.Init == nil {
				return nil, earlyError(d.Span, "for statement", "missing initializer in const declaration")
			}
			if d.Init == nil {
				if _, isIdent := d.Target.(*ast.Ident); !isIdent {
					return nil, earlyError(d.Span, "for statement", "missing initializer in destructuring declaration")
				}
			}
		}
		if _, err := p.cursor.Expect(TokenSemicolon, "for statement"); err != nil {
			return nil, err
		}
		return p.parseForClauses(c, forTok, decl)
	default:
		init, err := p.parseExpression(c.withIn(false))
		if err != nil {
			return nil, err
		}
		head := p.cursor.Peek(0)
		if head.Kind == TokenIn || (head.Kind == TokenIdent && head.Sym == interner.SymOf) {
			target, err := p.exprToAssignTarget(init, "for statement")
			if err != nil {
				return nil, err
			}
			return p.parseForEach(c, forTok, target, head.Kind == TokenIn)
		}
		if _, err := p.cursor.Expect(TokenSemicolon, "for statement"); err != nil {
			return nil, err
		}
		return p.parseForClauses(c, forTok, &ast.ExprStmt{Span: init.Loc(), Expr: init})
	}
}

// checkForEachDecl enforces the single-declarator, initializer-free shape
// of declarations in for-in and for-of heads.
func (p *Parser) checkForEachDecl(decl *ast.VarDecl, head Token) error {
	loop := "for-of"
	if head.Kind == TokenIn {
		loop = "for-in"
	}
	if len(decl.Decls) != 1 {
		return earlyError(decl.Span, "for statement",
			"%s loop may not declare more than one variable", loop)
	}
	if decl.Decls[0].Init != nil {
		return earlyError(decl.Decls[0].Span, "for statement",
			"%s loop variable declaration may not have an initializer", loop)
	}
	return nil
}

// parseForEach finishes a for-in or for-of statement after its left side.
// left is a *VarDecl or a converted assignment target.
func (p *Parser) parseForEach(c context, forTok Token, left ast.Node, isIn bool) (ast.Stmt, error) {
	p.next() // in / of
	var (
		right ast.Expr
		err   error
	)
	if isIn {
		right, err = p.parseExpression(c.withIn(true))
	} else {
		right, err = p.parseAssignExpr(c.withIn(true))
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "for statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	if decl, ok := left.(*ast.VarDecl); ok && decl.IsLexical() {
		if ref, ok := ast.FirstCollision(ast.BoundNameRefs(decl), ast.VarDeclaredNameRefs([]ast.Stmt{body})); ok {
			return nil, earlyError(ref.Span, "for statement",
				"identifier %q has already been declared", p.name(ref.Sym))
		}
	}
	span := p.spanFrom(forTok.Span.Start)
	if isIn {
		return &ast.ForInStmt{Span: span, Left: left, Right: right, Body: body}, nil
	}
	return &ast.ForOfStmt{Span: span, Left: left, Right: right, Body: body}, nil
}

// parseForClauses finishes a classic for statement after the first
// semicolon of its head.
func (p *Parser) parseForClauses(c context, forTok Token, init ast.Node) (ast.Stmt, error) {
	stmt := &ast.ForStmt{Init: init}
	if tok := p.peekExprStart(); tok.Kind != TokenSemicolon {
		test, err := p.parseExpression(c.withIn(true))
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if _, err := p.cursor.Expect(TokenSemicolon, "for statement"); err != nil {
		return nil, err
	}
	if tok := p.peekExprStart(); tok.Kind != TokenRParen {
		update, err := p.parseExpression(c.withIn(true))
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.cursor.Expect(TokenRParen, "for statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	if decl, ok := init.(*ast.VarDecl); ok && decl.IsLexical() {
		if ref, ok := ast.FirstCollision(ast.BoundNameRefs(decl), ast.VarDeclaredNameRefs([]ast.Stmt{body})); ok {
			return nil, earlyError(ref.Span, "for statement",
				"identifier %q has already been declared", p.name(ref.Sym))
		}
	}
	stmt.Span = p.spanFrom(forTok.Span.Start)
	return stmt, nil
}

func (p *Parser) parseContinue(c context) (ast.Stmt, error) {
	tok := p.next()
	label := interner.SymNone
	if next := p.cursor.Peek(0); next.IsIdentLike() && !next.NewlineBefore {
		ident, err := p.parseIdentRef(c, "continue statement")
		if err != nil {
			return nil, err
		}
		label = ident.Name
	}
	if err := p.semicolon("continue statement"); err != nil {
		return nil, err
	}
	return &ast.ContinueStmt{Span: p.spanFrom(tok.Span.Start), Label: label}, nil
}

func (p *Parser) parseBreak(c context) (ast.Stmt, error) {
	tok := p.next()
	label := interner.SymNone
	if next := p.cursor.Peek(0); next.IsIdentLike() && !next.NewlineBefore {
		ident, err := p.parseIdentRef(c, "break statement")
		if err != nil {
			return nil, err
		}
		label = ident.Name
	}
	if err := p.semicolon("break statement"); err != nil {
		return nil, err
	}
	return &ast.BreakStmt{Span: p.spanFrom(tok.Span.Start), Label: label}, nil
}

func (p *Parser) parseReturn(c context) (ast.Stmt, error) {
	tok := p.next()
	if !c.allowReturn {
		return nil, earlyError(tok.Span, "statement", "illegal return statement")
	}
	stmt := &ast.ReturnStmt{}
	p.cursor.SetGoal(GoalRegExp)
	next := p.cursor.Peek(0)
	if !next.NewlineBefore && next.Kind != TokenSemicolon &&
		next.Kind != TokenRBrace && next.Kind != TokenEOF {
		arg, err := p.parseExpression(c.withIn(true))
		if err != nil {
			return nil, err
		}
		stmt.Arg = arg
	}
	if err := p.semicolon("return statement"); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(tok.Span.Start)
	return stmt, nil
}

func (p *Parser) parseWith(c context) (ast.Stmt, error) {
	tok := p.next()
	if p.cursor.Strict() {
		return nil, earlyError(tok.Span, "with statement", "strict mode code may not include a with statement")
	}
	if _, err := p.cursor.Expect(TokenLParen, "with statement"); err != nil {
		return nil, err
	}
	object, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "with statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	return &ast.WithStmt{Span: p.spanFrom(tok.Span.Start), Object: object, Body: body}, nil
}

func (p *Parser) parseSwitch(c context) (ast.Stmt, error) {
	switchTok := p.next()
	if _, err := p.cursor.Expect(TokenLParen, "switch statement"); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "switch statement"); err != nil {
		return nil, err
	}
	lbrace, err := p.cursor.Expect(TokenLBrace, "switch statement")
	if err != nil {
		return nil, err
	}
	stmt := &ast.SwitchStmt{Disc: disc}
	sawDefault := false
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		clause := &ast.CaseClause{}
		switch tok.Kind {
		case TokenCase:
			p.next()
			test, err := p.parseExpression(c.withIn(true))
			if err != nil {
				return nil, err
			}
			clause.Test = test
		case TokenDefault:
			if sawDefault {
				return nil, earlyError(tok.Span, "switch statement", "more than one default clause in a switch statement")
			}
			sawDefault = true
			p.next()
		default:
			return nil, unexpectedToken(&tok, "'case' or 'default'", "switch statement")
		}
		if _, err := p.cursor.Expect(TokenColon, "switch statement"); err != nil {
			return nil, err
		}
		for {
			tok := p.peekExprStart()
			if tok.Kind == TokenCase || tok.Kind == TokenDefault ||
				tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
				break
			}
			item, err := p.parseStatementListItem(c)
			if err != nil {
				return nil, err
			}
			clause.Body = append(clause.Body, item)
		}
		clause.Span = Span{Start: tok.Span.Start, End: p.cursor.PrevEnd()}
		stmt.Cases = append(stmt.Cases, clause)
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "switch statement"); err != nil {
		return nil, err
	}
	// The case block is a single declaration scope across all clauses.
	var all []ast.Stmt
	for _, clause := range stmt.Cases {
		all = append(all, clause.Body...)
	}
	if err := p.validateBlockScope(all); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(switchTok.Span.Start)
	return stmt, nil
}

func (p *Parser) parseThrow(c context) (ast.Stmt, error) {
	tok := p.next()
	next := p.peekExprStart()
	if next.NewlineBefore {
		return nil, earlyError(next.Span, "throw statement",
			"no line break is allowed between 'throw' and its expression")
	}
	arg, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if err := p.semicolon("throw statement"); err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Span: p.spanFrom(tok.Span.Start), Arg: arg}, nil
}

func (p *Parser) parseTry(c context) (ast.Stmt, error) {
	tryTok := p.next()
	block, err := p.parseBlock(c)
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStmt{Block: block}
	if tok := p.cursor.Peek(0); tok.Kind == TokenCatch {
		p.next()
		if p.cursor.Peek(0).Kind == TokenLParen {
			p.next()
			param, err := p.parseBindingTarget(c, "catch clause")
			if err != nil {
				return nil, err
			}
			if _, err := p.cursor.Expect(TokenRParen, "catch clause"); err != nil {
				return nil, err
			}
			stmt.CatchParam = param
		}
		body, err := p.parseBlock(c)
		if err != nil {
			return nil, err
		}
		stmt.CatchBody = body
		if err := p.validateCatch(stmt.CatchParam, body); err != nil {
			return nil, err
		}
	}
	if tok := p.cursor.Peek(0); tok.Kind == TokenFinally {
		p.next()
		fin, err := p.parseBlock(c)
		if err != nil {
			return nil, err
		}
		stmt.Finally = fin
	}
	if stmt.CatchBody == nil && stmt.Finally == nil {
		tok := p.cursor.Peek(0)
		return nil, unexpectedToken(&tok, "'catch' or 'finally'", "try statement")
	}
	stmt.Span = p.spanFrom(tryTok.Span.Start)
	return stmt, nil
}

// validateCatch applies the catch-parameter name rules: unique bound
// names, and no collision with declarations in the catch block.
func (p *Parser) validateCatch(param ast.Pattern, body *ast.BlockStmt) error {
	if param == nil {
		return nil
	}
	refs := ast.BoundNameRefs(param)
	if ref, ok := ast.FirstDuplicate(refs); ok {
		return earlyError(ref.Span, "catch clause", "identifier %q has already been declared", p.name(ref.Sym))
	}
	if ref, ok := ast.FirstCollision(refs, ast.LexicallyDeclaredNameRefs(body.List)); ok {
		return earlyError(ref.Span, "catch clause", "identifier %q has already been declared", p.name(ref.Sym))
	}
	if ref, ok := ast.FirstCollision(refs, ast.VarDeclaredNameRefs(body.List)); ok {
		return earlyError(ref.Span, "catch clause", "identifier %q has already been declared", p.name(ref.Sym))
	}
	return nil
}

func (p *Parser) parseLabeled(c context) (ast.Stmt, error) {
	ident, err := p.parseIdentRef(c, "label")
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenColon, "labeled statement"); err != nil {
		return nil, err
	}
	var body ast.Stmt
	if tok := p.peekExprStart(); tok.Kind == TokenFunction {
		// Legacy form: a label directly on a plain function declaration
		// is tolerated in sloppy mode only.
		if p.cursor.Strict() {
			return nil, earlyError(tok.Span, "labeled statement",
				"functions can only be declared at the top level or inside a block")
		}
		decl, err := p.parseFunctionDecl(c, false)
		if err != nil {
			return nil, err
		}
		if decl.Fn.Generator {
			return nil, earlyError(decl.Span, "labeled statement",
				"generators can only be declared at the top level or inside a block")
		}
		body = decl
	} else {
		body, err = p.parseStatement(c)
		if err != nil {
			return nil, err
		}
	}
	return &ast.LabeledStmt{
		Span:  Span{Start: ident.Span.Start, End: p.cursor.PrevEnd()},
		Label: ident.Name,
		Body:  body,
	}, nil
}

func (p *Parser) parseExprStatement(c context) (ast.Stmt, error) {
	start := p.peekExprStart()
	expr, err := p.parseExpression(c.withIn(true))
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExprStmt{Expr: expr}
	if lit, ok := expr.(*ast.StringLit); ok && len(lit.Raw) >= 2 {
		stmt.Directive = lit.Raw[1 : len(lit.Raw)-1]
	}
	if err := p.semicolon("expression statement"); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}
