package parser

import (
	"github.com/pkg/errors"

	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// Parser turns one source text into a syntax tree. A Parser is single use;
// construct a new one for each input.
type Parser struct {
	cursor *Cursor
	in     *interner.Interner

	file            string
	collectComments bool
	used            bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithFile sets the file name recorded in positions and diagnostics.
func WithFile(name string) Option {
	return func(p *Parser) { p.file = name }
}

// WithComments makes the parser collect comment tokens, retrievable with
// Comments after the parse.
func WithComments() Option {
	return func(p *Parser) { p.collectComments = true }
}

// WithInterner makes the parser intern names into the given interner
// instead of a private one. Callers that resolve symbols after parsing,
// or parse many files, share one interner this way.
func WithInterner(in *interner.Interner) Option {
	return func(p *Parser) { p.in = in }
}

func New(src []byte, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.in == nil {
		p.in = interner.New()
	}
	lexer := NewLexer(src, p.file, p.in)
	lexer.collectComments = p.collectComments
	p.cursor = newCursor(lexer)
	return p
}

// Interner returns the interner the parse used; resolve symbols from the
// tree through it.
func (p *Parser) Interner() *interner.Interner { return p.in }

// Comments returns the comment tokens seen so far, in source order. Empty
// unless WithComments was given.
func (p *Parser) Comments() []Token { return p.cursor.lexer.comments }

func (p *Parser) begin() error {
	if p.used {
		return errors.New("parser instances are single use")
	}
	p.used = true
	return nil
}

// ParseScript parses the source as a classic script. The script starts
// non-strict; a "use strict" directive upgrades it.
func (p *Parser) ParseScript() (*ast.Script, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	c := scriptContext()
	start := p.startPos()
	body, err := p.parseProgramBody(c, false)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenEOF, "script"); err != nil {
		return nil, err
	}
	if err := p.validateProgram(body, false); err != nil {
		return nil, err
	}
	return &ast.Script{Span: p.spanFrom(start), Body: body, Strict: p.cursor.Strict()}, nil
}

// ParseModule parses the source as a module: strict throughout, await
// reserved at the top level, import and export allowed.
func (p *Parser) ParseModule() (*ast.Module, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	p.cursor.SetStrict(true)
	c := moduleContext()
	start := p.startPos()
	body, err := p.parseProgramBody(c, true)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenEOF, "module"); err != nil {
		return nil, err
	}
	if err := p.validateProgram(body, true); err != nil {
		return nil, err
	}
	return &ast.Module{Span: p.spanFrom(start), Body: body}, nil
}

// ParseExpression parses the source as a single expression, including the
// comma operator, and requires it to span the whole input.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(scriptContext())
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenEOF, "expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) startPos() Position {
	return Position{File: p.file, Line: 1, Column: 1}
}

func (p *Parser) parseProgramBody(c context, isModule bool) ([]ast.Stmt, error) {
	var body []ast.Stmt
	if _, err := p.parseDirectivePrologue(c, &body); err != nil {
		return nil, err
	}
	for {
		tok := p.peekExprStart()
		if tok.Kind == TokenEOF || tok.Kind == TokenRBrace {
			return body, nil
		}
		var (
			stmt ast.Stmt
			err  error
		)
		if isModule {
			stmt, err = p.parseModuleItem(c)
		} else {
			stmt, err = p.parseStatementListItem(c)
		}
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

// parseDirectivePrologue consumes the run of leading string-literal
// statements. A "use strict" directive takes effect immediately, which
// also retroactively rejects legacy octal escapes in earlier directives.
// Returns whether this prologue itself contained "use strict".
func (p *Parser) parseDirectivePrologue(c context, body *[]ast.Stmt) (bool, error) {
	useStrict := false
	var directives []*ast.StringLit
	for {
		tok := p.peekExprStart()
		if tok.Kind != TokenString {
			return useStrict, nil
		}
		stmt, err := p.parseStatementListItem(c)
		if err != nil {
			return false, err
		}
		*body = append(*body, stmt)
		es, ok := stmt.(*ast.ExprStmt)
		if !ok {
			return useStrict, nil
		}
		lit, ok := es.Expr.(*ast.StringLit)
		if !ok {
			return useStrict, nil
		}
		directives = append(directives, lit)
		if es.Directive == "use strict" {
			useStrict = true
			p.cursor.SetStrict(true)
			for _, d := range directives {
				if d.LegacyOctal {
					return false, tokenError(d.Span, "octal escape sequences are not allowed in strict mode")
				}
			}
		}
	}
}

// validateProgram runs the program-level static semantics after the body
// parsed: duplicate lexical names, lexical/var collisions, label targets,
// leftover cover forms, and super outside any function.
func (p *Parser) validateProgram(body []ast.Stmt, isModule bool) error {
	what := "script"
	var lex, vars []ast.NameRef
	if isModule {
		what = "module"
		lex = ast.LexicallyDeclaredNameRefs(body)
		vars = ast.VarDeclaredNameRefs(body)
	} else {
		lex = ast.TopLevelLexicallyDeclaredNameRefs(body)
		vars = ast.TopLevelVarDeclaredNameRefs(body)
	}
	if ref, ok := ast.FirstDuplicate(lex); ok {
		return earlyError(ref.Span, what, "identifier %q has already been declared", p.name(ref.Sym))
	}
	if ref, ok := redeclaration(lex, vars); ok {
		return earlyError(ref.Span, what, "identifier %q has already been declared", p.name(ref.Sym))
	}
	if lbl := ast.CheckLabels(body); lbl != nil {
		return p.labelError(lbl)
	}
	for _, s := range body {
		if err := p.coverInitError(s); err != nil {
			return err
		}
		if err := p.superError(s, false); err != nil {
			return err
		}
	}
	if isModule {
		return p.validateModule(body)
	}
	return nil
}

// redeclaration finds the first name declared both lexically and as a var,
// anchored at whichever declaration comes second in source order.
func redeclaration(lex, vars []ast.NameRef) (ast.NameRef, bool) {
	if len(lex) == 0 || len(vars) == 0 {
		return ast.NameRef{}, false
	}
	seenLex := make(map[interner.Symbol]struct{})
	seenVar := make(map[interner.Symbol]struct{})
	i, j := 0, 0
	for i < len(lex) || j < len(vars) {
		takeLex := j >= len(vars) ||
			(i < len(lex) && lex[i].Span.Start.Offset <= vars[j].Span.Start.Offset)
		if takeLex {
			r := lex[i]
			i++
			if _, ok := seenVar[r.Sym]; ok {
				return r, true
			}
			seenLex[r.Sym] = struct{}{}
		} else {
			r := vars[j]
			j++
			if _, ok := seenLex[r.Sym]; ok {
				return r, true
			}
			seenVar[r.Sym] = struct{}{}
		}
	}
	return ast.NameRef{}, false
}

func (p *Parser) labelError(e *ast.LabelError) *SyntaxError {
	switch e.Kind {
	case ast.LabelDuplicate:
		return earlyError(e.Span, "label", "label %q has already been declared", p.name(e.Label))
	case ast.LabelUndefined:
		return earlyError(e.Span, "label", "undefined label %q", p.name(e.Label))
	case ast.LabelNotIteration:
		return earlyError(e.Span, "label", "continue target %q must label an iteration statement", p.name(e.Label))
	case ast.BreakOutside:
		return earlyError(e.Span, "statement", "unlabeled break must be inside an iteration statement or switch")
	case ast.ContinueOutside:
		return earlyError(e.Span, "statement", "unlabeled continue must be inside an iteration statement")
	}
	return earlyError(e.Span, "label", "malformed label")
}

func (p *Parser) coverInitError(n ast.Node) error {
	if span, ok := ast.FindCoverInitializedName(n); ok {
		return earlyError(span, "object literal", "invalid shorthand property initializer")
	}
	return nil
}

// superError rejects super usage the current construct does not legalize.
// Methods allow super properties, nothing here allows super calls.
func (p *Parser) superError(n ast.Node, allowProperty bool) error {
	if !allowProperty {
		if span, ok := ast.FindSuperProperty(n); ok {
			return earlyError(span, "super", "invalid super usage")
		}
	}
	if span, ok := ast.FindSuperCall(n); ok {
		return earlyError(span, "super", "invalid super usage")
	}
	return nil
}

// next consumes the peeked token. Callers use it only after Peek showed a
// real token; lexer failures surface through Peek as TokenError first.
func (p *Parser) next() Token {
	tok, _ := p.cursor.Next()
	return tok
}

// peekExprStart peeks with the regexp goal armed, for any position where
// an expression, and therefore a regex literal, may begin.
func (p *Parser) peekExprStart() Token {
	p.cursor.SetGoal(GoalRegExp)
	return p.cursor.Peek(0)
}

// semicolon consumes an explicit ';' or applies automatic semicolon
// insertion before '}', end of input, or a line break. The peek is made
// under the regexp goal so a token left for the next statement is already
// lexed correctly.
func (p *Parser) semicolon(what string) error {
	p.cursor.SetGoal(GoalRegExp)
	tok := p.cursor.Peek(0)
	switch {
	case tok.Kind == TokenSemicolon:
		p.next()
		return nil
	case tok.Kind == TokenRBrace || tok.Kind == TokenEOF || tok.NewlineBefore:
		return nil
	}
	return unexpectedToken(&tok, "';'", what)
}

func (p *Parser) spanFrom(start Position) Span {
	return Span{Start: start, End: p.cursor.PrevEnd()}
}

func (p *Parser) name(sym interner.Symbol) string {
	return p.in.Resolve(sym)
}

func isStrictReservedSym(sym interner.Symbol) bool {
	switch sym {
	case interner.SymImplements, interner.SymInterface, interner.SymPackage,
		interner.SymPrivate, interner.SymProtected, interner.SymPublic,
		interner.SymLet, interner.SymStatic:
		return true
	}
	return false
}

// parseBindingIdent parses an identifier that creates a binding. Yield and
// await are identifiers only where the context does not reserve them, and
// strict mode rejects eval, arguments, and the strict reserved words.
func (p *Parser) parseBindingIdent(c context, what string) (*ast.Ident, error) {
	tok := p.cursor.Peek(0)
	switch tok.Kind {
	case TokenIdent:
		if p.cursor.Strict() {
			if tok.Sym == interner.SymEval || tok.Sym == interner.SymArguments {
				return nil, earlyError(tok.Span, what, "unexpected eval or arguments in strict mode")
			}
			if isStrictReservedSym(tok.Sym) {
				return nil, earlyError(tok.Span, what, "%q is a reserved word in strict mode", tok.Literal)
			}
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: tok.Sym}, nil
	case TokenYield:
		if c.allowYield || p.cursor.Strict() {
			return nil, earlyError(tok.Span, what, "'yield' cannot be used as an identifier in this context")
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: interner.SymYield}, nil
	case TokenAwait:
		if c.allowAwait {
			return nil, earlyError(tok.Span, what, "'await' cannot be used as an identifier in this context")
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: interner.SymAwait}, nil
	}
	return nil, unexpectedToken(&tok, "identifier", what)
}

// parseIdentRef parses an identifier in reference position. Unlike binding
// position, eval and arguments stay legal in strict mode.
func (p *Parser) parseIdentRef(c context, what string) (*ast.Ident, error) {
	tok := p.cursor.Peek(0)
	switch tok.Kind {
	case TokenIdent:
		if p.cursor.Strict() && isStrictReservedSym(tok.Sym) {
			return nil, earlyError(tok.Span, what, "%q is a reserved word in strict mode", tok.Literal)
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: tok.Sym}, nil
	case TokenYield:
		if c.allowYield || p.cursor.Strict() {
			return nil, earlyError(tok.Span, what, "'yield' cannot be used as an identifier in this context")
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: interner.SymYield}, nil
	case TokenAwait:
		if c.allowAwait {
			return nil, earlyError(tok.Span, what, "'await' cannot be used as an identifier in this context")
		}
		p.next()
		return &ast.Ident{Span: tok.Span, Name: interner.SymAwait}, nil
	}
	return nil, unexpectedToken(&tok, "identifier", what)
}

// parseIdentName parses an IdentifierName, where every keyword is allowed:
// property names after '.', object literal keys, import and export names.
func (p *Parser) parseIdentName(what string) (*ast.Ident, error) {
	tok := p.cursor.Peek(0)
	if !tok.IsIdentLike() {
		return nil, unexpectedToken(&tok, "identifier", what)
	}
	p.next()
	sym := tok.Sym
	if tok.Kind != TokenIdent {
		sym = p.in.Intern(tok.Literal)
	}
	return &ast.Ident{Span: tok.Span, Name: sym}, nil
}

// isLegacyNumber reports whether a numeric literal uses the legacy
// leading-zero form, which strict mode rejects even when the token was
// scanned before a directive upgraded the scope.
func isLegacyNumber(raw string) bool {
	return len(raw) > 1 && raw[0] == '0' && raw[1] >= '0' && raw[1] <= '9'
}
