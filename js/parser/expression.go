package parser

import (
	"strings"

	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// parseExpression parses the comma level.
func (p *Parser) parseExpression(c context) (ast.Expr, error) {
	expr, err := p.parseAssignExpr(c)
	if err != nil {
		return nil, err
	}
	if p.cursor.Peek(0).Kind != TokenComma {
		return expr, nil
	}
	exprs := []ast.Expr{expr}
	for p.cursor.Peek(0).Kind == TokenComma {
		p.next()
		next, err := p.parseAssignExpr(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	return &ast.SequenceExpr{
		Span:  Span{Start: expr.Loc().Start, End: p.cursor.PrevEnd()},
		Exprs: exprs,
	}, nil
}

// parseAssignExpr parses one assignment-level expression: yield forms,
// arrow functions, conditionals, and the assignment operators.
func (p *Parser) parseAssignExpr(c context) (ast.Expr, error) {
	tok := p.peekExprStart()
	if tok.Kind == TokenYield && c.allowYield {
		return p.parseYield(c)
	}
	switch tok.Kind {
	case TokenIdent, TokenYield, TokenAwait:
		if next := p.cursor.Peek(1); next.Kind == TokenArrow && !next.NewlineBefore {
			return p.parseIdentArrow(c)
		}
	case TokenLParen:
		grouped, arrow, err := p.parseParenCover(c)
		if err != nil {
			return nil, err
		}
		if arrow != nil {
			return arrow, nil
		}
		if next := p.cursor.Peek(0); next.Kind == TokenAssign {
			// A parenthesized literal is not a valid destructuring target;
			// only the unparenthesized form reparses as a pattern.
			switch grouped.(type) {
			case *ast.ObjectLit, *ast.ArrayLit:
				return nil, earlyError(grouped.Loc(), "assignment",
					"invalid destructuring assignment target")
			}
		}
		left, err := p.parseExprSuffix(c, grouped)
		if err != nil {
			return nil, err
		}
		return p.parseAssignTail(c, left)
	}
	left, err := p.parseConditional(c)
	if err != nil {
		return nil, err
	}
	return p.parseAssignTail(c, left)
}

func (p *Parser) parseAssignTail(c context, left ast.Expr) (ast.Expr, error) {
	tok := p.cursor.Peek(0)
	switch tok.Kind {
	case TokenAssign:
		target, err := p.exprToAssignTarget(left, "assignment")
		if err != nil {
			return nil, err
		}
		p.next()
		value, err := p.parseAssignExpr(c)
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{
			Span:   Span{Start: left.Loc().Start, End: value.Loc().End},
			Op:     "=",
			Target: target,
			Value:  value,
		}, nil
	case TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenStarStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenAndAssign, TokenOrAssign,
		TokenXorAssign, TokenShlAssign, TokenShrAssign, TokenUShrAssign,
		TokenAndAndAssign, TokenOrOrAssign, TokenNullishAssign:
		target, err := p.exprToSimpleTarget(left, "assignment")
		if err != nil {
			return nil, err
		}
		p.next()
		value, err := p.parseAssignExpr(c)
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{
			Span:   Span{Start: left.Loc().Start, End: value.Loc().End},
			Op:     tok.Literal,
			Target: target,
			Value:  value,
		}, nil
	}
	return left, nil
}

// parseExprSuffix continues every expression level above a seed that was
// already parsed, which is how a parenthesized cover that turned out to be
// a plain group rejoins the ladder without backtracking.
func (p *Parser) parseExprSuffix(c context, seed ast.Expr) (ast.Expr, error) {
	expr, err := p.parseCallMemberTail(c, seed)
	if err != nil {
		return nil, err
	}
	expr, err = p.parsePostfixTail(c, expr)
	if err != nil {
		return nil, err
	}
	expr, err = p.parseBinaryTail(c, expr, 1)
	if err != nil {
		return nil, err
	}
	expr, err = p.parseShortCircuitTail(c, expr)
	if err != nil {
		return nil, err
	}
	return p.parseConditionalTail(c, expr)
}

func (p *Parser) parseYield(c context) (ast.Expr, error) {
	tok := p.next()
	node := &ast.YieldExpr{}
	next := p.peekExprStart()
	if !next.NewlineBefore {
		switch {
		case next.Kind == TokenStar:
			p.next()
			node.Delegate = true
			arg, err := p.parseAssignExpr(c)
			if err != nil {
				return nil, err
			}
			node.Arg = arg
		case canStartExpression(next):
			arg, err := p.parseAssignExpr(c)
			if err != nil {
				return nil, err
			}
			node.Arg = arg
		}
	}
	node.Span = p.spanFrom(tok.Span.Start)
	return node, nil
}

func (p *Parser) parseConditional(c context) (ast.Expr, error) {
	left, err := p.parseShortCircuit(c)
	if err != nil {
		return nil, err
	}
	return p.parseConditionalTail(c, left)
}

func (p *Parser) parseConditionalTail(c context, left ast.Expr) (ast.Expr, error) {
	if p.cursor.Peek(0).Kind != TokenQuestion {
		return left, nil
	}
	p.next()
	cons, err := p.parseAssignExpr(c.withIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenColon, "conditional expression"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssignExpr(c)
	if err != nil {
		return nil, err
	}
	return &ast.CondExpr{
		Span: Span{Start: left.Loc().Start, End: alt.Loc().End},
		Test: left,
		Cons: cons,
		Alt:  alt,
	}, nil
}

func (p *Parser) parseShortCircuit(c context) (ast.Expr, error) {
	left, err := p.parseBinary(c, 1)
	if err != nil {
		return nil, err
	}
	return p.parseShortCircuitTail(c, left)
}

// parseShortCircuitTail handles && || ?? as one left-associative level.
// Mixing ?? with && or || requires parentheses; the flags track what this
// level has seen, so parenthesized operands reset the restriction
// naturally.
func (p *Parser) parseShortCircuitTail(c context, left ast.Expr) (ast.Expr, error) {
	sawLogical, sawCoalesce := false, false
	for {
		tok := p.cursor.Peek(0)
		switch tok.Kind {
		case TokenAnd, TokenOr:
			sawLogical = true
		case TokenNullish:
			sawCoalesce = true
		default:
			return left, nil
		}
		if sawLogical && sawCoalesce {
			return nil, earlyError(tok.Span, "expression",
				"cannot mix '??' with '&&' or '||' without parentheses")
		}
		p.next()
		right, err := p.parseBinary(c, 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Span:  Span{Start: left.Loc().Start, End: right.Loc().End},
			Op:    tok.Literal,
			Left:  left,
			Right: right,
		}
	}
}

// Binary operator precedence, from bitwise-or up to exponentiation. The
// short-circuit operators sit above this table and the in operator drops
// out when the context forbids it.
var binaryPrec = map[TokenKind]int{
	TokenBitOr:      1,
	TokenBitXor:     2,
	TokenBitAnd:     3,
	TokenEQ:         4,
	TokenNE:         4,
	TokenStrictEQ:   4,
	TokenStrictNE:   4,
	TokenLT:         5,
	TokenLE:         5,
	TokenGT:         5,
	TokenGE:         5,
	TokenInstanceof: 5,
	TokenIn:         5,
	TokenShl:        6,
	TokenShr:        6,
	TokenUShr:       6,
	TokenPlus:       7,
	TokenMinus:      7,
	TokenStar:       8,
	TokenSlash:      8,
	TokenPercent:    8,
	TokenStarStar:   9,
}

func (p *Parser) parseBinary(c context, minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary(c)
	if err != nil {
		return nil, err
	}
	return p.parseBinaryTail(c, left, minPrec)
}

func (p *Parser) parseBinaryTail(c context, left ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		tok := p.cursor.Peek(0)
		prec, ok := binaryPrec[tok.Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		if tok.Kind == TokenIn && !c.allowIn {
			return left, nil
		}
		p.next()
		next := prec + 1
		if tok.Kind == TokenStarStar {
			// Exponentiation is right-associative.
			next = prec
		}
		right, err := p.parseBinary(c, next)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Span:  Span{Start: left.Loc().Start, End: right.Loc().End},
			Op:    tok.Literal,
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parseUnary(c context) (ast.Expr, error) {
	tok := p.peekExprStart()
	switch tok.Kind {
	case TokenDelete, TokenVoid, TokenTypeof, TokenPlus, TokenMinus, TokenBitNot, TokenNot:
		p.next()
		operand, err := p.parseUnary(c)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenDelete {
			if err := p.checkDelete(operand); err != nil {
				return nil, err
			}
		}
		expr := &ast.UnaryExpr{
			Span:    Span{Start: tok.Span.Start, End: operand.Loc().End},
			Op:      tok.Literal,
			Operand: operand,
		}
		if next := p.cursor.Peek(0); next.Kind == TokenStarStar {
			return nil, earlyError(next.Span, "expression",
				"unparenthesized unary expression cannot appear on the left of '**'")
		}
		return expr, nil
	case TokenIncrement, TokenDecrement:
		p.next()
		operand, err := p.parseUnary(c)
		if err != nil {
			return nil, err
		}
		if err := p.checkUpdateTarget(operand, "prefix"); err != nil {
			return nil, err
		}
		return &ast.UpdateExpr{
			Span:    Span{Start: tok.Span.Start, End: operand.Loc().End},
			Op:      tok.Literal,
			Prefix:  true,
			Operand: operand,
		}, nil
	case TokenAwait:
		if c.allowAwait {
			p.next()
			operand, err := p.parseUnary(c)
			if err != nil {
				return nil, err
			}
			expr := &ast.AwaitExpr{
				Span: Span{Start: tok.Span.Start, End: operand.Loc().End},
				Arg:  operand,
			}
			if next := p.cursor.Peek(0); next.Kind == TokenStarStar {
				return nil, earlyError(next.Span, "expression",
					"unparenthesized unary expression cannot appear on the left of '**'")
			}
			return expr, nil
		}
	}
	return p.parsePostfix(c)
}

// checkDelete applies the strict-mode and super restrictions on delete.
func (p *Parser) checkDelete(operand ast.Expr) error {
	if ident, ok := operand.(*ast.Ident); ok && p.cursor.Strict() {
		return earlyError(ident.Span, "delete expression",
			"delete of an unqualified identifier in strict mode")
	}
	if member, ok := operand.(*ast.MemberExpr); ok {
		if _, ok := member.Object.(*ast.SuperExpr); ok {
			return earlyError(member.Span, "delete expression", "cannot delete a super property")
		}
	}
	return nil
}

func (p *Parser) parsePostfix(c context) (ast.Expr, error) {
	left, err := p.parseCallMember(c)
	if err != nil {
		return nil, err
	}
	return p.parsePostfixTail(c, left)
}

func (p *Parser) parsePostfixTail(c context, left ast.Expr) (ast.Expr, error) {
	tok := p.cursor.Peek(0)
	if (tok.Kind != TokenIncrement && tok.Kind != TokenDecrement) || tok.NewlineBefore {
		return left, nil
	}
	if err := p.checkUpdateTarget(left, "postfix"); err != nil {
		return nil, err
	}
	p.next()
	return &ast.UpdateExpr{
		Span:    Span{Start: left.Loc().Start, End: tok.Span.End},
		Op:      tok.Literal,
		Operand: left,
	}, nil
}

func (p *Parser) checkUpdateTarget(expr ast.Expr, mode string) error {
	switch t := expr.(type) {
	case *ast.Ident:
		if p.cursor.Strict() && (t.Name == interner.SymEval || t.Name == interner.SymArguments) {
			return earlyError(t.Span, mode+" operation", "unexpected eval or arguments in strict mode")
		}
		return nil
	case *ast.MemberExpr:
		if hasOptionalLink(t) {
			break
		}
		return nil
	}
	return earlyError(expr.Loc(), mode+" operation",
		"invalid left-hand side expression in %s operation", mode)
}

// hasOptionalLink reports whether a member or call chain includes a ?.
// link, which makes the whole chain unassignable.
func hasOptionalLink(expr ast.Expr) bool {
	for {
		switch t := expr.(type) {
		case *ast.MemberExpr:
			if t.Optional {
				return true
			}
			expr = t.Object
		case *ast.CallExpr:
			if t.Optional {
				return true
			}
			expr = t.Callee
		default:
			return false
		}
	}
}

func (p *Parser) parseCallMember(c context) (ast.Expr, error) {
	var (
		prim ast.Expr
		err  error
	)
	if p.cursor.Peek(0).Kind == TokenNew {
		prim, err = p.parseNew(c)
	} else {
		prim, err = p.parsePrimary(c)
	}
	if err != nil {
		return nil, err
	}
	return p.parseCallMemberTail(c, prim)
}

// parseNew parses a new expression: the callee is member accesses only, a
// directly following argument list binds to the new.
func (p *Parser) parseNew(c context) (ast.Expr, error) {
	newTok := p.next()
	var (
		callee ast.Expr
		err    error
	)
	if p.cursor.Peek(0).Kind == TokenNew {
		callee, err = p.parseNew(c)
	} else {
		callee, err = p.parsePrimary(c)
	}
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cursor.Peek(0)
		switch tok.Kind {
		case TokenDot:
			p.next()
			name, err := p.parseIdentName("property access")
			if err != nil {
				return nil, err
			}
			callee = &ast.MemberExpr{
				Span:   Span{Start: callee.Loc().Start, End: name.Span.End},
				Object: callee,
				Prop:   name,
			}
			continue
		case TokenLBracket:
			p.next()
			idx, err := p.parseExpression(c.withIn(true))
			if err != nil {
				return nil, err
			}
			end, err := p.cursor.Expect(TokenRBracket, "property access")
			if err != nil {
				return nil, err
			}
			callee = &ast.MemberExpr{
				Span:     Span{Start: callee.Loc().Start, End: end.Span.End},
				Object:   callee,
				Prop:     idx,
				Computed: true,
			}
			continue
		case TokenQuestionDot:
			return nil, earlyError(tok.Span, "new expression",
				"optional chains are not allowed in new expressions")
		}
		break
	}
	node := &ast.NewExpr{Callee: callee}
	if p.cursor.Peek(0).Kind == TokenLParen {
		args, err := p.parseArguments(c)
		if err != nil {
			return nil, err
		}
		node.Args = args
	}
	node.Span = p.spanFrom(newTok.Span.Start)
	return node, nil
}

func (p *Parser) parseCallMemberTail(c context, left ast.Expr) (ast.Expr, error) {
	chainOptional := false
	for {
		tok := p.cursor.Peek(0)
		switch tok.Kind {
		case TokenDot:
			p.next()
			name, err := p.parseIdentName("property access")
			if err != nil {
				return nil, err
			}
			left = &ast.MemberExpr{
				Span:   Span{Start: left.Loc().Start, End: name.Span.End},
				Object: left,
				Prop:   name,
			}
		case TokenQuestionDot:
			chainOptional = true
			p.next()
			switch inner := p.cursor.Peek(0); inner.Kind {
			case TokenLParen:
				args, err := p.parseArguments(c)
				if err != nil {
					return nil, err
				}
				left = &ast.CallExpr{
					Span:     p.spanWiden(left.Loc()),
					Callee:   left,
					Args:     args,
					Optional: true,
				}
			case TokenLBracket:
				p.next()
				idx, err := p.parseExpression(c.withIn(true))
				if err != nil {
					return nil, err
				}
				end, err := p.cursor.Expect(TokenRBracket, "property access")
				if err != nil {
					return nil, err
				}
				left = &ast.MemberExpr{
					Span:     Span{Start: left.Loc().Start, End: end.Span.End},
					Object:   left,
					Prop:     idx,
					Computed: true,
					Optional: true,
				}
			case TokenTemplateNoSub, TokenTemplateHead:
				return nil, earlyError(inner.Span, "template literal",
					"invalid tagged template on optional chain")
			default:
				name, err := p.parseIdentName("property access")
				if err != nil {
					return nil, err
				}
				left = &ast.MemberExpr{
					Span:     Span{Start: left.Loc().Start, End: name.Span.End},
					Object:   left,
					Prop:     name,
					Optional: true,
				}
			}
		case TokenLBracket:
			p.next()
			idx, err := p.parseExpression(c.withIn(true))
			if err != nil {
				return nil, err
			}
			end, err := p.cursor.Expect(TokenRBracket, "property access")
			if err != nil {
				return nil, err
			}
			left = &ast.MemberExpr{
				Span:     Span{Start: left.Loc().Start, End: end.Span.End},
				Object:   left,
				Prop:     idx,
				Computed: true,
			}
		case TokenLParen:
			args, err := p.parseArguments(c)
			if err != nil {
				return nil, err
			}
			left = &ast.CallExpr{
				Span:   p.spanWiden(left.Loc()),
				Callee: left,
				Args:   args,
			}
		case TokenTemplateNoSub, TokenTemplateHead:
			if chainOptional {
				return nil, earlyError(tok.Span, "template literal",
					"invalid tagged template on optional chain")
			}
			quasi, err := p.parseTemplate(c)
			if err != nil {
				return nil, err
			}
			left = &ast.TaggedTemplate{
				Span:  Span{Start: left.Loc().Start, End: quasi.Span.End},
				Tag:   left,
				Quasi: quasi,
			}
		default:
			return left, nil
		}
	}
}

func (p *Parser) spanWiden(left Span) Span {
	return Span{Start: left.Start, End: p.cursor.PrevEnd()}
}

// parseArguments consumes a parenthesized argument list including both
// parens. Spread arguments and a trailing comma are allowed.
func (p *Parser) parseArguments(c context) ([]ast.Expr, error) {
	lparen := p.next()
	var args []ast.Expr
	for {
		tok := p.peekExprStart()
		if tok.Kind == TokenRParen {
			break
		}
		if tok.Kind == TokenEllipsis {
			p.next()
			arg, err := p.parseAssignExpr(c.withIn(true))
			if err != nil {
				return nil, err
			}
			args = append(args, &ast.SpreadElement{
				Span: Span{Start: tok.Span.Start, End: arg.Loc().End},
				Arg:  arg,
			})
		} else {
			arg, err := p.parseAssignExpr(c.withIn(true))
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expectClose(TokenRParen, lparen, "argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary(c context) (ast.Expr, error) {
	tok := p.peekExprStart()
	switch tok.Kind {
	case TokenIdent:
		if tok.Sym == interner.SymAsync {
			if next := p.cursor.Peek(1); next.Kind == TokenFunction && !next.NewlineBefore {
				return p.parseFunctionExpr(c, true)
			}
		}
		return p.parseIdentRef(c, "expression")
	case TokenYield, TokenAwait:
		return p.parseIdentRef(c, "expression")
	case TokenNumber:
		if p.cursor.Strict() && isLegacyNumber(tok.Literal) {
			return nil, tokenError(tok.Span, "implicit octal literals are not allowed in strict mode")
		}
		p.next()
		return &ast.NumberLit{Span: tok.Span, Value: tok.Num, Raw: tok.Literal}, nil
	case TokenString:
		if p.cursor.Strict() && tok.LegacyOctal {
			return nil, tokenError(tok.Span, "octal escape sequences are not allowed in strict mode")
		}
		p.next()
		return &ast.StringLit{Span: tok.Span, Value: tok.Sym, Raw: tok.Raw, LegacyOctal: tok.LegacyOctal}, nil
	case TokenTrue, TokenFalse:
		p.next()
		return &ast.BoolLit{Span: tok.Span, Value: tok.Kind == TokenTrue}, nil
	case TokenNull:
		p.next()
		return &ast.NullLit{Span: tok.Span}, nil
	case TokenThis:
		p.next()
		return &ast.ThisExpr{Span: tok.Span}, nil
	case TokenRegExp:
		p.next()
		sep := strings.LastIndexByte(tok.Literal, '/')
		return &ast.RegExpLit{
			Span:    tok.Span,
			Pattern: p.in.Intern(tok.Literal[1:sep]),
			Flags:   p.in.Intern(tok.Literal[sep+1:]),
		}, nil
	case TokenTemplateNoSub, TokenTemplateHead:
		return p.parseTemplate(c)
	case TokenLBracket:
		return p.parseArrayLit(c)
	case TokenLBrace:
		return p.parseObjectLit(c)
	case TokenFunction:
		return p.parseFunctionExpr(c, false)
	case TokenSuper:
		p.next()
		switch next := p.cursor.Peek(0); next.Kind {
		case TokenDot, TokenLBracket, TokenLParen:
			return &ast.SuperExpr{Span: tok.Span}, nil
		default:
			return nil, unexpectedToken(&next, "'.', '[', or '('", "super")
		}
	case TokenLParen:
		// Reached only below the assignment level, where a parenthesized
		// group can no longer be an arrow head.
		p.next()
		inner, err := p.parseExpression(c.withIn(true))
		if err != nil {
			return nil, err
		}
		if _, err := p.expectClose(TokenRParen, tok, "parenthesized expression"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, unexpectedToken(&tok, "expression", "expression")
}

// parseTemplate parses a template literal. The head token was peeked by
// the caller; continuation chunks are produced by re-lexing the '}' that
// closes each substitution.
func (p *Parser) parseTemplate(c context) (*ast.TemplateLit, error) {
	head := p.next()
	lit := &ast.TemplateLit{}
	lit.Quasis = append(lit.Quasis, &ast.TemplateElement{
		Span:   head.Span,
		Cooked: head.Sym,
		Raw:    head.Raw,
	})
	if head.Kind == TokenTemplateNoSub {
		lit.Span = head.Span
		return lit, nil
	}
	for {
		expr, err := p.parseExpression(c.withIn(true))
		if err != nil {
			return nil, err
		}
		lit.Exprs = append(lit.Exprs, expr)
		chunk, err := p.cursor.ReLexTemplate("template literal")
		if err != nil {
			return nil, err
		}
		lit.Quasis = append(lit.Quasis, &ast.TemplateElement{
			Span:   chunk.Span,
			Cooked: chunk.Sym,
			Raw:    chunk.Raw,
		})
		if chunk.Kind == TokenTemplateTail {
			break
		}
	}
	lit.Span = Span{Start: head.Span.Start, End: p.cursor.PrevEnd()}
	return lit, nil
}

func (p *Parser) parseArrayLit(c context) (ast.Expr, error) {
	lbracket := p.next()
	node := &ast.ArrayLit{}
	for {
		tok := p.peekExprStart()
		switch {
		case tok.Kind == TokenRBracket || tok.Kind == TokenEOF:
		case tok.Kind == TokenComma:
			p.next()
			node.Elems = append(node.Elems, nil)
			continue
		case tok.Kind == TokenEllipsis:
			p.next()
			arg, err := p.parseAssignExpr(c.withIn(true))
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, &ast.SpreadElement{
				Span: Span{Start: tok.Span.Start, End: arg.Loc().End},
				Arg:  arg,
			})
			if p.cursor.Peek(0).Kind == TokenComma {
				p.next()
				continue
			}
		default:
			elem, err := p.parseAssignExpr(c.withIn(true))
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, elem)
			if p.cursor.Peek(0).Kind == TokenComma {
				p.next()
				continue
			}
		}
		if _, err := p.expectClose(TokenRBracket, lbracket, "array literal"); err != nil {
			return nil, err
		}
		node.Span = p.spanFrom(lbracket.Span.Start)
		return node, nil
	}
}

func (p *Parser) parseObjectLit(c context) (ast.Expr, error) {
	lbrace := p.next()
	node := &ast.ObjectLit{}
	var protoSpan *Span
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		member, err := p.parseObjectMember(c)
		if err != nil {
			return nil, err
		}
		if prop, ok := member.(*ast.PropertyDef); ok && !prop.Computed && !prop.Shorthand && prop.CoverInit == nil {
			if p.isProtoKey(prop.Key) {
				if protoSpan != nil {
					return nil, earlyError(prop.Span, "object literal",
						"duplicate __proto__ fields are not allowed in object literals")
				}
				s := prop.Span
				protoSpan = &s
			}
		}
		node.Members = append(node.Members, member)
		if p.cursor.Peek(0).Kind == TokenComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "object literal"); err != nil {
		return nil, err
	}
	node.Span = p.spanFrom(lbrace.Span.Start)
	return node, nil
}

func (p *Parser) isProtoKey(key ast.Expr) bool {
	switch k := key.(type) {
	case *ast.Ident:
		return k.Name == interner.SymProto
	case *ast.StringLit:
		return k.Value == interner.SymProto
	}
	return false
}

func (p *Parser) parseObjectMember(c context) (ast.ObjectMember, error) {
	tok := p.cursor.Peek(0)
	if tok.Kind == TokenEllipsis {
		p.next()
		arg, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, err
		}
		return &ast.SpreadElement{
			Span: Span{Start: tok.Span.Start, End: arg.Loc().End},
			Arg:  arg,
		}, nil
	}

	// Accessor, async, and generator prefixes apply only when what follows
	// is still a property name.
	if tok.Kind == TokenIdent && (tok.Sym == interner.SymGet || tok.Sym == interner.SymSet) && p.prefixesKey(1) {
		p.next()
		role := ast.RoleGetter
		if tok.Sym == interner.SymSet {
			role = ast.RoleSetter
		}
		return p.parseMethodMember(c, tok.Span.Start, role, false, false)
	}
	if tok.Kind == TokenIdent && tok.Sym == interner.SymAsync && p.prefixesKey(1) && !p.cursor.Peek(1).NewlineBefore {
		p.next()
		generator := false
		if p.cursor.Peek(0).Kind == TokenStar {
			p.next()
			generator = true
		}
		return p.parseMethodMember(c, tok.Span.Start, ast.RoleMethod, generator, true)
	}
	if tok.Kind == TokenStar {
		p.next()
		return p.parseMethodMember(c, tok.Span.Start, ast.RoleMethod, true, false)
	}

	keyTok := p.cursor.Peek(0)
	key, computed, err := p.parsePropertyKey(c)
	if err != nil {
		return nil, err
	}
	switch next := p.cursor.Peek(0); next.Kind {
	case TokenLParen:
		return p.parseMethodMemberWithKey(c, key.Loc().Start, key, computed, ast.RoleMethod, false, false)
	case TokenColon:
		p.next()
		value, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, err
		}
		return &ast.PropertyDef{
			Span:     Span{Start: key.Loc().Start, End: value.Loc().End},
			Key:      key,
			Computed: computed,
			Value:    value,
		}, nil
	case TokenAssign:
		// CoverInitializedName: legal only when the literal is later
		// reinterpreted as an assignment pattern.
		if computed || !p.shorthandKeyOK(keyTok) {
			return nil, unexpectedToken(&next, "':'", "object literal")
		}
		p.next()
		init, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, err
		}
		ident := key.(*ast.Ident)
		return &ast.PropertyDef{
			Span:      Span{Start: key.Loc().Start, End: init.Loc().End},
			Key:       key,
			Shorthand: true,
			Value:     &ast.Ident{Span: ident.Span, Name: ident.Name},
			CoverInit: init,
		}, nil
	default:
		if computed {
			return nil, unexpectedToken(&next, "':'", "object literal")
		}
		if err := p.checkShorthandRef(c, keyTok); err != nil {
			return nil, err
		}
		ident := key.(*ast.Ident)
		return &ast.PropertyDef{
			Span:      ident.Span,
			Key:       key,
			Shorthand: true,
			Value:     &ast.Ident{Span: ident.Span, Name: ident.Name},
		}, nil
	}
}

// prefixesKey reports whether the token at the given lookahead still
// introduces a property name, so get/set/async keep their plain-property
// readings in forms like {get: 1}, {get}, {get() {}}, and {get = 1}.
func (p *Parser) prefixesKey(at int) bool {
	switch p.cursor.Peek(at).Kind {
	case TokenColon, TokenComma, TokenRBrace, TokenLParen, TokenAssign:
		return false
	}
	return true
}

// shorthandKeyOK reports whether the key token can act as a shorthand
// property, which requires an identifier reference rather than a general
// IdentifierName.
func (p *Parser) shorthandKeyOK(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenYield, TokenAwait:
		return true
	}
	return false
}

// checkShorthandRef applies identifier-reference rules to a shorthand
// property key: reserved words are rejected, yield and await depend on the
// context.
func (p *Parser) checkShorthandRef(c context, tok Token) error {
	switch tok.Kind {
	case TokenIdent:
		if p.cursor.Strict() && isStrictReservedSym(tok.Sym) {
			return earlyError(tok.Span, "object literal", "%q is a reserved word in strict mode", tok.Literal)
		}
		return nil
	case TokenYield:
		if c.allowYield || p.cursor.Strict() {
			return earlyError(tok.Span, "object literal", "'yield' cannot be used as an identifier in this context")
		}
		return nil
	case TokenAwait:
		if c.allowAwait {
			return earlyError(tok.Span, "object literal", "'await' cannot be used as an identifier in this context")
		}
		return nil
	}
	return earlyError(tok.Span, "object literal", "unexpected reserved word %q", tok.Literal)
}

// parsePropertyKey parses a property name: an identifier name, string or
// number literal, or a computed key in brackets.
func (p *Parser) parsePropertyKey(c context) (ast.Expr, bool, error) {
	tok := p.cursor.Peek(0)
	switch tok.Kind {
	case TokenLBracket:
		p.next()
		key, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, false, err
		}
		if _, err := p.cursor.Expect(TokenRBracket, "computed property name"); err != nil {
			return nil, false, err
		}
		return key, true, nil
	case TokenString:
		if p.cursor.Strict() && tok.LegacyOctal {
			return nil, false, tokenError(tok.Span, "octal escape sequences are not allowed in strict mode")
		}
		p.next()
		return &ast.StringLit{Span: tok.Span, Value: tok.Sym, Raw: tok.Raw, LegacyOctal: tok.LegacyOctal}, false, nil
	case TokenNumber:
		if p.cursor.Strict() && isLegacyNumber(tok.Literal) {
			return nil, false, tokenError(tok.Span, "implicit octal literals are not allowed in strict mode")
		}
		p.next()
		return &ast.NumberLit{Span: tok.Span, Value: tok.Num, Raw: tok.Literal}, false, nil
	}
	ident, err := p.parseIdentName("property name")
	if err != nil {
		return nil, false, err
	}
	return ident, false, nil
}

func canStartExpression(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenNumber, TokenString, TokenRegExp,
		TokenTemplateNoSub, TokenTemplateHead,
		TokenTrue, TokenFalse, TokenNull, TokenThis, TokenSuper,
		TokenFunction, TokenNew, TokenDelete, TokenVoid, TokenTypeof,
		TokenYield, TokenAwait,
		TokenLParen, TokenLBracket, TokenLBrace,
		TokenPlus, TokenMinus, TokenNot, TokenBitNot,
		TokenIncrement, TokenDecrement:
		return true
	}
	return false
}

// parseParenCover parses '(' ... ')' as the cover grammar shared by
// parenthesized expressions and arrow parameter lists, deciding between
// them by whether '=>' follows. Nothing is re-parsed either way: the
// collected expressions are reinterpreted as parameters when the arrow
// appears.
func (p *Parser) parseParenCover(c context) (ast.Expr, ast.Expr, error) {
	lparen := p.next()
	var (
		items        []ast.Expr
		rest         *ast.Param
		ellipsisTok  Token
		trailingTok  Token
		haveTrailing bool
	)
	for {
		tok := p.peekExprStart()
		if tok.Kind == TokenRParen {
			break
		}
		if tok.Kind == TokenEllipsis {
			ellipsisTok = tok
			p.next()
			target, err := p.parseBindingTarget(c, "rest parameter")
			if err != nil {
				return nil, nil, err
			}
			rest = &ast.Param{
				Span:   Span{Start: tok.Span.Start, End: target.Loc().End},
				Target: target,
				Rest:   true,
			}
			if next := p.cursor.Peek(0); next.Kind == TokenAssign {
				return nil, nil, earlyError(next.Span, "parameter list",
					"rest parameter may not have a default initializer")
			}
			if next := p.cursor.Peek(0); next.Kind != TokenRParen {
				return nil, nil, earlyError(next.Span, "parameter list",
					"rest parameter must be the last formal parameter")
			}
			break
		}
		item, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		trailingTok = p.next()
		if p.cursor.Peek(0).Kind == TokenRParen {
			haveTrailing = true
			break
		}
	}
	if _, err := p.expectClose(TokenRParen, lparen, "parenthesized expression"); err != nil {
		return nil, nil, err
	}

	if arrowTok := p.cursor.Peek(0); arrowTok.Kind == TokenArrow && !arrowTok.NewlineBefore {
		params, err := p.coverToParams(c, lparen, items, rest)
		if err != nil {
			return nil, nil, err
		}
		arrow, err := p.parseArrowTail(c, lparen.Span.Start, params)
		if err != nil {
			return nil, nil, err
		}
		return nil, arrow, nil
	}

	if rest != nil {
		return nil, nil, unexpectedToken(&ellipsisTok, "expression", "parenthesized expression")
	}
	if len(items) == 0 {
		tok := p.cursor.Peek(0)
		return nil, nil, unexpectedToken(&tok, "'=>'", "arrow function")
	}
	if haveTrailing {
		return nil, nil, earlyError(trailingTok.Span, "parenthesized expression",
			"trailing comma is only allowed in a parameter list")
	}
	if len(items) == 1 {
		return items[0], nil, nil
	}
	return &ast.SequenceExpr{
		Span:  Span{Start: lparen.Span.Start, End: p.cursor.PrevEnd()},
		Exprs: items,
	}, nil, nil
}
