package parser

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// parseModuleItem parses one top-level item of a module: an import or
// export declaration, or any statement-list item.
func (p *Parser) parseModuleItem(c context) (ast.Stmt, error) {
	switch p.cursor.Peek(0).Kind {
	case TokenImport:
		return p.parseImport(c)
	case TokenExport:
		return p.parseExport(c)
	}
	return p.parseStatementListItem(c)
}

// parseImport handles every import form: bare, default, namespace, named,
// and the default-plus-clause combinations.
func (p *Parser) parseImport(c context) (ast.Stmt, error) {
	impTok := p.next()
	node := &ast.ImportDecl{}
	tok := p.cursor.Peek(0)
	if tok.Kind == TokenString {
		p.next()
		node.From = tok.Sym
	} else {
		needClause := true
		if tok.Kind == TokenIdent || tok.Kind == TokenYield || tok.Kind == TokenAwait {
			name, err := p.parseBindingIdent(c, "import declaration")
			if err != nil {
				return nil, err
			}
			node.Default = name.Name
			needClause = false
			if p.cursor.Peek(0).Kind == TokenComma {
				p.next()
				needClause = true
			}
		}
		if needClause {
			switch next := p.cursor.Peek(0); next.Kind {
			case TokenStar:
				p.next()
				if err := p.expectContextual(interner.SymAs, "'as'", "import declaration"); err != nil {
					return nil, err
				}
				name, err := p.parseBindingIdent(c, "import declaration")
				if err != nil {
					return nil, err
				}
				node.Namespace = name.Name
			case TokenLBrace:
				specs, err := p.parseNamedImports(c)
				if err != nil {
					return nil, err
				}
				node.Named = specs
			default:
				return nil, unexpectedToken(&next, "'*' or '{'", "import declaration")
			}
		}
		if err := p.expectContextual(interner.SymFrom, "'from'", "import declaration"); err != nil {
			return nil, err
		}
		strTok := p.cursor.Peek(0)
		if strTok.Kind != TokenString {
			return nil, unexpectedToken(&strTok, "module specifier string", "import declaration")
		}
		p.next()
		node.From = strTok.Sym
	}
	if err := p.semicolon("import declaration"); err != nil {
		return nil, err
	}
	node.Span = p.spanFrom(impTok.Span.Start)
	return node, nil
}

// expectContextual consumes an identifier token that serves as a
// contextual keyword, such as as or from.
func (p *Parser) expectContextual(sym interner.Symbol, expected, what string) error {
	tok := p.cursor.Peek(0)
	if tok.Kind != TokenIdent || tok.Sym != sym {
		return unexpectedToken(&tok, expected, what)
	}
	p.next()
	return nil
}

func (p *Parser) parseNamedImports(c context) ([]*ast.ImportSpec, error) {
	lbrace := p.next()
	var specs []*ast.ImportSpec
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		// The imported side is any IdentifierName; `default` and other
		// keywords are fine as long as they are renamed with as.
		imported, err := p.parseIdentName("import specifier")
		if err != nil {
			return nil, err
		}
		spec := &ast.ImportSpec{Imported: imported.Name}
		if next := p.cursor.Peek(0); next.Kind == TokenIdent && next.Sym == interner.SymAs {
			p.next()
			local, err := p.parseBindingIdent(c, "import specifier")
			if err != nil {
				return nil, err
			}
			spec.Local = local.Name
			spec.Span = Span{Start: imported.Span.Start, End: local.Span.End}
		} else {
			local, err := p.bindingIdentFromToken(c, tok, "import specifier")
			if err != nil {
				return nil, err
			}
			spec.Local = local.Name
			spec.Span = imported.Span
		}
		specs = append(specs, spec)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "named imports"); err != nil {
		return nil, err
	}
	return specs, nil
}

// parseExport handles export lists, re-exports, export *, export default,
// and exported declarations.
func (p *Parser) parseExport(c context) (ast.Stmt, error) {
	expTok := p.next()
	switch tok := p.cursor.Peek(0); tok.Kind {
	case TokenStar:
		p.next()
		node := &ast.ExportAllDecl{}
		if next := p.cursor.Peek(0); next.Kind == TokenIdent && next.Sym == interner.SymAs {
			p.next()
			name, err := p.parseIdentName("export declaration")
			if err != nil {
				return nil, err
			}
			node.As = name.Name
		}
		if err := p.expectContextual(interner.SymFrom, "'from'", "export declaration"); err != nil {
			return nil, err
		}
		strTok := p.cursor.Peek(0)
		if strTok.Kind != TokenString {
			return nil, unexpectedToken(&strTok, "module specifier string", "export declaration")
		}
		p.next()
		node.From = strTok.Sym
		if err := p.semicolon("export declaration"); err != nil {
			return nil, err
		}
		node.Span = p.spanFrom(expTok.Span.Start)
		return node, nil

	case TokenLBrace:
		specs, err := p.parseExportSpecs()
		if err != nil {
			return nil, err
		}
		node := &ast.ExportNamedDecl{Specs: specs}
		if next := p.cursor.Peek(0); next.Kind == TokenIdent && next.Sym == interner.SymFrom {
			p.next()
			strTok := p.cursor.Peek(0)
			if strTok.Kind != TokenString {
				return nil, unexpectedToken(&strTok, "module specifier string", "export declaration")
			}
			p.next()
			node.From = strTok.Sym
			node.HasFrom = true
		}
		if err := p.semicolon("export declaration"); err != nil {
			return nil, err
		}
		node.Span = p.spanFrom(expTok.Span.Start)
		return node, nil

	case TokenDefault:
		p.next()
		node := &ast.ExportDefaultDecl{}
		next := p.cursor.Peek(0)
		switch {
		case next.Kind == TokenFunction:
			decl, err := p.parseHoistable(c, false, true)
			if err != nil {
				return nil, err
			}
			node.Decl = decl
		case next.Kind == TokenIdent && next.Sym == interner.SymAsync &&
			p.cursor.Peek(1).Kind == TokenFunction && !p.cursor.Peek(1).NewlineBefore:
			decl, err := p.parseHoistable(c, true, true)
			if err != nil {
				return nil, err
			}
			node.Decl = decl
		default:
			expr, err := p.parseAssignExpr(c)
			if err != nil {
				return nil, err
			}
			if err := p.semicolon("export declaration"); err != nil {
				return nil, err
			}
			node.Decl = &ast.ExprStmt{Span: expr.Loc(), Expr: expr}
		}
		node.Span = p.spanFrom(expTok.Span.Start)
		return node, nil

	case TokenVar, TokenConst:
		decl, err := p.parseVarDecl(c, false)
		if err != nil {
			return nil, err
		}
		return &ast.ExportNamedDecl{Span: p.spanFrom(expTok.Span.Start), Decl: decl}, nil

	case TokenFunction:
		decl, err := p.parseFunctionDecl(c, false)
		if err != nil {
			return nil, err
		}
		return &ast.ExportNamedDecl{Span: p.spanFrom(expTok.Span.Start), Decl: decl}, nil

	case TokenIdent:
		if tok.Sym == interner.SymLet && p.letDeclFollows() {
			decl, err := p.parseVarDecl(c, false)
			if err != nil {
				return nil, err
			}
			return &ast.ExportNamedDecl{Span: p.spanFrom(expTok.Span.Start), Decl: decl}, nil
		}
		if tok.Sym == interner.SymAsync &&
			p.cursor.Peek(1).Kind == TokenFunction && !p.cursor.Peek(1).NewlineBefore {
			decl, err := p.parseFunctionDecl(c, true)
			if err != nil {
				return nil, err
			}
			return &ast.ExportNamedDecl{Span: p.spanFrom(expTok.Span.Start), Decl: decl}, nil
		}
	}
	tok := p.cursor.Peek(0)
	return nil, unexpectedToken(&tok, "declaration, '{', '*', or 'default'", "export declaration")
}

// parseExportSpecs parses the brace list of an export clause. Both sides
// are IdentifierNames; whether the local side must resolve to a module
// binding depends on the absence of a from clause and is checked in
// validateModule.
func (p *Parser) parseExportSpecs() ([]*ast.ExportSpec, error) {
	lbrace := p.next()
	var specs []*ast.ExportSpec
	for {
		tok := p.cursor.Peek(0)
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		local, err := p.parseIdentName("export specifier")
		if err != nil {
			return nil, err
		}
		spec := &ast.ExportSpec{Local: local.Name, Exported: local.Name, Span: local.Span}
		if next := p.cursor.Peek(0); next.Kind == TokenIdent && next.Sym == interner.SymAs {
			p.next()
			exported, err := p.parseIdentName("export specifier")
			if err != nil {
				return nil, err
			}
			spec.Exported = exported.Name
			spec.Span = Span{Start: local.Span.Start, End: exported.Span.End}
		}
		specs = append(specs, spec)
		if p.cursor.Peek(0).Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expectClose(TokenRBrace, lbrace, "export clause"); err != nil {
		return nil, err
	}
	return specs, nil
}

// validateModule checks the export surface after the whole module parsed:
// exported names must be unique, and a local export list must reference
// names the module actually declares.
func (p *Parser) validateModule(body []ast.Stmt) error {
	var exported []ast.NameRef
	for _, s := range body {
		switch s := s.(type) {
		case *ast.ExportNamedDecl:
			if s.Decl != nil {
				exported = append(exported, ast.BoundNameRefs(s.Decl)...)
			}
			for _, spec := range s.Specs {
				exported = append(exported, ast.NameRef{Sym: spec.Exported, Span: spec.Span})
			}
		case *ast.ExportAllDecl:
			if s.As != interner.SymNone {
				exported = append(exported, ast.NameRef{Sym: s.As, Span: s.Span})
			}
		case *ast.ExportDefaultDecl:
			exported = append(exported, ast.NameRef{Sym: interner.SymDefault, Span: s.Span})
		}
	}
	if ref, ok := ast.FirstDuplicate(exported); ok {
		return earlyError(ref.Span, "module", "duplicate exported name %q", p.name(ref.Sym))
	}

	declared := make(map[interner.Symbol]struct{})
	for _, ref := range ast.LexicallyDeclaredNameRefs(body) {
		declared[ref.Sym] = struct{}{}
	}
	for _, ref := range ast.VarDeclaredNameRefs(body) {
		declared[ref.Sym] = struct{}{}
	}
	for _, s := range body {
		exp, ok := s.(*ast.ExportNamedDecl)
		if !ok || exp.HasFrom || exp.Decl != nil {
			continue
		}
		for _, spec := range exp.Specs {
			if _, ok := declared[spec.Local]; !ok {
				return earlyError(spec.Span, "module",
					"export %q is not defined in the module", p.name(spec.Local))
			}
		}
	}
	return nil
}
