package parser

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// parseBindingTarget parses a binding position: a plain identifier or a
// destructuring pattern. Used by declarations, catch clauses, formal
// parameters, and rest targets.
func (p *Parser) parseBindingTarget(c context, what string) (ast.Pattern, error) {
	switch p.cursor.Peek(0).Kind {
	case TokenLBracket:
		return p.parseArrayBindingPattern(c, what)
	case TokenLBrace:
		return p.parseObjectBindingPattern(c, what)
	}
	return p.parseBindingIdent(c, what)
}

func (p *Parser) parseObjectBindingPattern(c context, what string) (ast.Pattern, error) {
	lbrace := p.next()
	node := &ast.ObjectPattern{}
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenEllipsis {
			p.next()
			// Rest in a binding pattern collects into a plain identifier.
			rest, err := p.parseBindingIdent(c, "rest element")
			if err != nil {
				return nil, err
			}
			node.Rest = rest
			if next := p.cursor.Peek(0); next.Kind == TokenComma {
				return nil, earlyError(next.Span, what, "rest element must be the last element")
			}
			break
		}
		prop, err := p.parseBindingProperty(c, what)
		if err != nil {
			return nil, err
		}
		node.Props = append(node.Props, prop)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "object pattern"); err != nil {
		return nil, err
	}
	node.Span = p.spanFrom(lbrace.Span.Start)
	return node, nil
}

func (p *Parser) parseBindingProperty(c context, what string) (*ast.PropertyPattern, error) {
	keyTok := p.cursor.Peek(0)
	key, computed, err := p.parsePropertyKey(c)
	if err != nil {
		return nil, err
	}
	prop := &ast.PropertyPattern{Key: key, Computed: computed}
	if p.cursor.Peek(0).Kind == TokenColon {
		p.next()
		target, err := p.parseBindingTarget(c, what)
		if err != nil {
			return nil, err
		}
		prop.Value = target
	} else {
		// Shorthand: the key doubles as the bound identifier, so it must
		// satisfy the binding-identifier rules, not just be an
		// IdentifierName.
		if computed {
			tok := p.cursor.Peek(0)
			return nil, unexpectedToken(&tok, "':'", "object pattern")
		}
		ident, err := p.bindingIdentFromToken(c, keyTok, "object pattern")
		if err != nil {
			return nil, err
		}
		prop.Value = ident
	}
	if p.cursor.Peek(0).Kind == TokenAssign {
		p.next()
		def, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, err
		}
		prop.Default = def
	}
	prop.Span = Span{Start: key.Loc().Start, End: p.cursor.PrevEnd()}
	return prop, nil
}

// bindingIdentFromToken re-checks an already consumed token as a binding
// identifier, for positions where the token was first read as something
// more general: shorthand pattern properties and single-identifier arrow
// parameters.
func (p *Parser) bindingIdentFromToken(c context, tok Token, what string) (*ast.Ident, error) {
	switch tok.Kind {
	case TokenIdent:
		if p.cursor.Strict() {
			if tok.Sym == interner.SymEval || tok.Sym == interner.SymArguments {
				return nil, earlyError(tok.Span, what,
					"unexpected eval or arguments in strict mode")
			}
			if isStrictReservedSym(tok.Sym) {
				return nil, earlyError(tok.Span, what,
					"%q is a reserved word in strict mode", tok.Literal)
			}
		}
		return &ast.Ident{Span: tok.Span, Name: tok.Sym}, nil
	case TokenYield:
		if c.allowYield || p.cursor.Strict() {
			return nil, earlyError(tok.Span, what,
				"'yield' cannot be used as an identifier in this context")
		}
		return &ast.Ident{Span: tok.Span, Name: interner.SymYield}, nil
	case TokenAwait:
		if c.allowAwait {
			return nil, earlyError(tok.Span, what,
				"'await' cannot be used as an identifier in this context")
		}
		return &ast.Ident{Span: tok.Span, Name: interner.SymAwait}, nil
	}
	return nil, earlyError(tok.Span, what, "unexpected reserved word %q", tok.Literal)
}

func (p *Parser) parseArrayBindingPattern(c context, what string) (ast.Pattern, error) {
	lbracket := p.next()
	node := &ast.ArrayPattern{}
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBracket || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenComma {
			p.next()
			node.Elems = append(node.Elems, nil)
			continue
		}
		if tok.Kind == TokenEllipsis {
			p.next()
			target, err := p.parseBindingTarget(c, what)
			if err != nil {
				return nil, err
			}
			if next := p.cursor.Peek(0); next.Kind == TokenAssign {
				return nil, earlyError(next.Span, what,
					"rest element may not have a default initializer")
			}
			node.Elems = append(node.Elems, &ast.Param{
				Span:   Span{Start: tok.Span.Start, End: target.Loc().End},
				Target: target,
				Rest:   true,
			})
			if next := p.cursor.Peek(0); next.Kind == TokenComma {
				return nil, earlyError(next.Span, what, "rest element must be the last element")
			}
			break
		}
		elem, err := p.parseBindingElement(c, what)
		if err != nil {
			return nil, err
		}
		node.Elems = append(node.Elems, elem)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expectClose(TokenRBracket, lbracket, "array pattern"); err != nil {
		return nil, err
	}
	node.Span = p.spanFrom(lbracket.Span.Start)
	return node, nil
}

// parseBindingElement parses target with an optional default initializer.
func (p *Parser) parseBindingElement(c context, what string) (*ast.Param, error) {
	target, err := p.parseBindingTarget(c, what)
	if err != nil {
		return nil, err
	}
	elem := &ast.Param{Target: target}
	if p.cursor.Peek(0).Kind == TokenAssign {
		p.next()
		def, err := p.parseAssignExpr(c.withIn(true))
		if err != nil {
			return nil, err
		}
		elem.Default = def
	}
	elem.Span = Span{Start: target.Loc().Start, End: p.cursor.PrevEnd()}
	return elem, nil
}

// exprToAssignTarget reinterprets an already parsed expression as the
// target of a plain assignment or a for-in/of head. Identifiers and member
// accesses pass through; object and array literals reparse structurally as
// destructuring patterns. Nothing is re-lexed: the literal nodes are
// rebuilt into pattern nodes.
func (p *Parser) exprToAssignTarget(expr ast.Expr, what string) (ast.Pattern, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if p.cursor.Strict() && (t.Name == interner.SymEval || t.Name == interner.SymArguments) {
			return nil, earlyError(t.Span, what, "unexpected eval or arguments in strict mode")
		}
		return t, nil
	case *ast.MemberExpr:
		if hasOptionalLink(t) {
			return nil, earlyError(t.Span, what, "invalid left-hand side in assignment")
		}
		return t, nil
	case *ast.ObjectLit:
		return p.objectLitToPattern(t, what)
	case *ast.ArrayLit:
		return p.arrayLitToPattern(t, what)
	}
	return nil, earlyError(expr.Loc(), what, "invalid left-hand side in assignment")
}

// exprToSimpleTarget is the stricter variant for compound assignment
// operators, which never destructure.
func (p *Parser) exprToSimpleTarget(expr ast.Expr, what string) (ast.Pattern, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if p.cursor.Strict() && (t.Name == interner.SymEval || t.Name == interner.SymArguments) {
			return nil, earlyError(t.Span, what, "unexpected eval or arguments in strict mode")
		}
		return t, nil
	case *ast.MemberExpr:
		if hasOptionalLink(t) {
			return nil, earlyError(t.Span, what, "invalid left-hand side in assignment")
		}
		return t, nil
	}
	return nil, earlyError(expr.Loc(), what, "invalid left-hand side in assignment")
}

func (p *Parser) objectLitToPattern(lit *ast.ObjectLit, what string) (*ast.ObjectPattern, error) {
	node := &ast.ObjectPattern{Span: lit.Span}
	for i, member := range lit.Members {
		switch m := member.(type) {
		case *ast.SpreadElement:
			if i != len(lit.Members)-1 {
				return nil, earlyError(m.Span, what, "rest element must be the last element")
			}
			// Object assignment rest takes a simple reference, never a
			// nested pattern.
			rest, err := p.exprToSimpleTarget(m.Arg, what)
			if err != nil {
				return nil, err
			}
			node.Rest = rest
		case *ast.PropertyDef:
			prop := &ast.PropertyPattern{
				Span:     m.Span,
				Key:      m.Key,
				Computed: m.Computed,
			}
			value := m.Value
			if m.CoverInit != nil {
				prop.Default = m.CoverInit
			}
			if assign, ok := value.(*ast.AssignExpr); ok && assign.Op == "=" {
				prop.Value = assign.Target
				prop.Default = assign.Value
			} else {
				target, err := p.exprToAssignTarget(value, what)
				if err != nil {
					return nil, err
				}
				prop.Value = target
			}
			node.Props = append(node.Props, prop)
		default:
			return nil, earlyError(member.Loc(), what, "invalid destructuring assignment target")
		}
	}
	return node, nil
}

func (p *Parser) arrayLitToPattern(lit *ast.ArrayLit, what string) (*ast.ArrayPattern, error) {
	node := &ast.ArrayPattern{Span: lit.Span}
	for i, elem := range lit.Elems {
		if elem == nil {
			node.Elems = append(node.Elems, nil)
			continue
		}
		switch e := elem.(type) {
		case *ast.SpreadElement:
			if i != len(lit.Elems)-1 {
				return nil, earlyError(e.Span, what, "rest element must be the last element")
			}
			if assign, ok := e.Arg.(*ast.AssignExpr); ok && assign.Op == "=" {
				return nil, earlyError(assign.Span, what,
					"rest element may not have a default initializer")
			}
			// Array assignment rest may itself destructure.
			target, err := p.exprToAssignTarget(e.Arg, what)
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, &ast.Param{
				Span:   e.Span,
				Target: target,
				Rest:   true,
			})
		case *ast.AssignExpr:
			if e.Op != "=" {
				return nil, earlyError(e.Span, what, "invalid destructuring assignment target")
			}
			node.Elems = append(node.Elems, &ast.Param{
				Span:    e.Span,
				Target:  e.Target,
				Default: e.Value,
			})
		default:
			target, err := p.exprToAssignTarget(elem, what)
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, &ast.Param{
				Span:   elem.Loc(),
				Target: target,
			})
		}
	}
	return node, nil
}

// coverToParams reinterprets the collected items of a parenthesized cover
// as arrow-function parameters. The items were parsed as assignment
// expressions, so defaults arrive as assignments and patterns as literals;
// both are rebuilt, and member accesses that assignment conversion would
// tolerate are rejected because parameters bind identifiers only.
func (p *Parser) coverToParams(c context, lparen Token, items []ast.Expr, rest *ast.Param) (*ast.ParamList, error) {
	params := &ast.ParamList{IsSimple: true}
	for _, item := range items {
		param, err := p.exprToParam(c, item)
		if err != nil {
			return nil, err
		}
		params.List = append(params.List, param)
	}
	if rest != nil {
		params.List = append(params.List, rest)
	}
	for _, param := range params.List {
		if param.Default != nil || param.Rest {
			params.IsSimple = false
			continue
		}
		if _, ok := param.Target.(*ast.Ident); !ok {
			params.IsSimple = false
		}
	}
	_, dup := ast.FirstDuplicate(ast.BoundNameRefs(params))
	params.HasDuplicates = dup
	params.Span = Span{Start: lparen.Span.Start, End: p.cursor.PrevEnd()}
	return params, nil
}

func (p *Parser) exprToParam(c context, item ast.Expr) (*ast.Param, error) {
	switch t := item.(type) {
	case *ast.Ident:
		if err := p.checkParamIdent(t); err != nil {
			return nil, err
		}
		return &ast.Param{Span: t.Span, Target: t}, nil
	case *ast.AssignExpr:
		if t.Op != "=" {
			break
		}
		if err := p.checkBindingPatternTree(t.Target); err != nil {
			return nil, err
		}
		return &ast.Param{Span: t.Span, Target: t.Target, Default: t.Value}, nil
	case *ast.ObjectLit:
		pat, err := p.objectLitToPattern(t, "arrow function")
		if err != nil {
			return nil, err
		}
		if err := p.checkBindingPatternTree(pat); err != nil {
			return nil, err
		}
		return &ast.Param{Span: t.Span, Target: pat}, nil
	case *ast.ArrayLit:
		pat, err := p.arrayLitToPattern(t, "arrow function")
		if err != nil {
			return nil, err
		}
		if err := p.checkBindingPatternTree(pat); err != nil {
			return nil, err
		}
		return &ast.Param{Span: t.Span, Target: pat}, nil
	}
	return nil, earlyError(item.Loc(), "arrow function", "invalid arrow function parameter")
}

func (p *Parser) checkParamIdent(ident *ast.Ident) error {
	if p.cursor.Strict() && (ident.Name == interner.SymEval || ident.Name == interner.SymArguments) {
		return earlyError(ident.Span, "arrow function", "unexpected eval or arguments in strict mode")
	}
	return nil
}

// checkBindingPatternTree rejects the assignment-only target forms inside
// a pattern that is being promoted to a parameter binding.
func (p *Parser) checkBindingPatternTree(pat ast.Pattern) error {
	switch t := pat.(type) {
	case *ast.Ident:
		return p.checkParamIdent(t)
	case *ast.MemberExpr:
		return earlyError(t.Span, "arrow function", "invalid arrow function parameter")
	case *ast.ObjectPattern:
		for _, prop := range t.Props {
			if err := p.checkBindingPatternTree(prop.Value); err != nil {
				return err
			}
		}
		if t.Rest != nil {
			return p.checkBindingPatternTree(t.Rest)
		}
		return nil
	case *ast.ArrayPattern:
		for _, elem := range t.Elems {
			if elem == nil {
				continue
			}
			if err := p.checkBindingPatternTree(elem.Target); err != nil {
				return err
			}
		}
		return nil
	}
	return earlyError(pat.Loc(), "arrow function", "invalid arrow function parameter")
}
