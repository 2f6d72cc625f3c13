package parser

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/kei/js/interner"
)

// Goal selects how the next raw scan treats '/' and '}'. The parser arms a
// goal through the cursor before the token in question is lexed; after each
// token the lexer falls back to GoalDiv, so an armed goal only ever applies
// to the next scan.
type Goal int

const (
	// GoalDiv lexes '/' as the divide operator and '}' as a punctuator.
	GoalDiv Goal = iota
	// GoalRegExp lexes '/' as the start of a regular expression literal.
	GoalRegExp
	// GoalTemplateTail lexes '}' as the continuation of a template literal.
	GoalTemplateTail
)

// Lexer walks raw bytes and produces Tokens. Identifier and string payloads
// are interned as they are scanned. The strict bit changes which numeric and
// escape forms are legal; the cursor mirrors it in when a directive prologue
// upgrades the scope.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int

	goal   Goal
	strict bool
	in     *interner.Interner

	collectComments bool
	comments        []Token

	sawNewline bool
}

func NewLexer(input []byte, file string, in *interner.Interner) *Lexer {
	l := &Lexer{input: input, file: file, line: 1, column: 1, in: in}
	if bytes.HasPrefix(input, []byte("#!")) {
		for l.pos < len(l.input) && l.input[l.pos] != '\n' && l.input[l.pos] != '\r' {
			l.advance()
		}
	}
	return l
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

// setPosition rewinds the lexer. Only ever used by the cursor to re-lex a
// peeked-but-unconsumed '}' as a template continuation, which stays within
// the no-rollback-past-consumption contract.
func (l *Lexer) setPosition(pos Position) {
	l.pos = pos.Offset
	l.line = pos.Line
	l.column = pos.Column
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	c := l.input[l.pos]
	l.pos++
	switch c {
	case '\n':
		l.line++
		l.column = 1
	case '\r':
		if l.peek() == '\n' {
			l.column++
		} else {
			l.line++
			l.column = 1
		}
	default:
		l.column++
	}
	return c
}

// advanceLine consumes n bytes that together encode one line terminator.
func (l *Lexer) advanceLine(n int) {
	l.pos += n
	l.line++
	l.column = 1
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

// Next produces the next token under the current goal, skipping whitespace
// and comments. The goal resets to GoalDiv afterwards.
func (l *Lexer) Next() (Token, error) {
	l.sawNewline = false
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}

	goal := l.goal
	l.goal = GoalDiv

	start := l.position()
	if l.atEOF() {
		return l.make(TokenEOF, start), nil
	}

	c := l.peek()
	switch {
	case c == '"' || c == '\'':
		return l.scanString(start)
	case c == '`':
		l.advance()
		return l.scanTemplateChunk(start, true)
	case c == '}' && goal == GoalTemplateTail:
		l.advance()
		return l.scanTemplateChunk(start, false)
	case c == '/' && goal == GoalRegExp:
		return l.scanRegExp(start)
	case c >= '0' && c <= '9':
		return l.scanNumber(start)
	case c == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber(start)
	case isIdentStartByte(c):
		return l.scanIdentifier(start), nil
	case c >= utf8.RuneSelf:
		r, _ := utf8.DecodeRune(l.input[l.pos:])
		if unicode.IsLetter(r) {
			return l.scanIdentifier(start), nil
		}
		return Token{}, tokenError(Span{start, l.position()}, "unexpected character %q", r)
	}
	return l.scanPunctuator(start)
}

func (l *Lexer) make(kind TokenKind, start Position) Token {
	return Token{
		Kind:          kind,
		Span:          Span{Start: start, End: l.position()},
		NewlineBefore: l.sawNewline,
	}
}

func (l *Lexer) skipSpaceAndComments() error {
	for !l.atEOF() {
		c := l.peek()
		switch c {
		case ' ', '\t', '\v', '\f':
			l.advance()
		case '\n', '\r':
			l.sawNewline = true
			l.advance()
		case '/':
			switch l.peekAt(1) {
			case '/':
				l.skipLineComment()
			case '*':
				if err := l.skipBlockComment(); err != nil {
					return err
				}
			default:
				return nil
			}
		default:
			if c < utf8.RuneSelf {
				return nil
			}
			r, size := utf8.DecodeRune(l.input[l.pos:])
			switch {
			case r == lineSeparator || r == paragraphSeparator:
				l.sawNewline = true
				l.advanceLine(size)
			case r == 0xFEFF || unicode.Is(unicode.Zs, r):
				l.pos += size
				l.column++
			default:
				return nil
			}
		}
	}
	return nil
}

const (
	lineSeparator      = ' '
	paragraphSeparator = ' '
)

func (l *Lexer) skipLineComment() {
	start := l.position()
	for !l.atEOF() {
		c := l.peek()
		if c == '\n' || c == '\r' {
			break
		}
		if c >= utf8.RuneSelf {
			r, _ := utf8.DecodeRune(l.input[l.pos:])
			if r == lineSeparator || r == paragraphSeparator {
				break
			}
		}
		l.advance()
	}
	if l.collectComments {
		l.comments = append(l.comments, Token{
			Kind:    TokenLineComment,
			Span:    Span{Start: start, End: l.position()},
			Literal: string(l.input[start.Offset:l.pos]),
		})
	}
}

func (l *Lexer) skipBlockComment() error {
	start := l.position()
	l.advance() // '/'
	l.advance() // '*'
	for !l.atEOF() {
		c := l.peek()
		if c == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			if l.collectComments {
				l.comments = append(l.comments, Token{
					Kind:    TokenComment,
					Span:    Span{Start: start, End: l.position()},
					Literal: string(l.input[start.Offset:l.pos]),
				})
			}
			return nil
		}
		if c == '\n' || c == '\r' {
			l.sawNewline = true
			l.advance()
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if r == lineSeparator || r == paragraphSeparator {
				l.sawNewline = true
				l.advanceLine(size)
				continue
			}
			l.pos += size
			l.column++
			continue
		}
		l.advance()
	}
	return unterminated(Span{Start: start, End: l.position()}, "block comment")
}

func isIdentStartByte(c byte) bool {
	return c == '$' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPartByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) scanIdentifier(start Position) Token {
	for !l.atEOF() {
		c := l.peek()
		if isIdentPartByte(c) {
			l.advance()
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				l.pos += size
				l.column++
				continue
			}
		}
		break
	}
	text := string(l.input[start.Offset:l.pos])
	tok := l.make(LookupKeyword(text), start)
	tok.Literal = text
	if tok.Kind == TokenIdent {
		tok.Sym = l.in.Intern(text)
	}
	return tok
}

func (l *Lexer) scanNumber(start Position) (Token, error) {
	if l.peek() == '0' && l.pos+1 < len(l.input) {
		switch l.input[l.pos+1] {
		case 'x', 'X':
			return l.scanRadixNumber(start, 16, isHexDigit)
		case 'o', 'O':
			return l.scanRadixNumber(start, 8, isOctalDigit)
		case 'b', 'B':
			return l.scanRadixNumber(start, 2, isBinaryDigit)
		}
		if isDigit(l.input[l.pos+1]) {
			return l.scanLegacyOctal(start)
		}
	}

	l.scanDigits()
	if l.peek() == '.' {
		l.advance()
		l.scanDigits()
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		l.advance()
		if c := l.peek(); c == '+' || c == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return Token{}, tokenError(Span{start, l.position()}, "missing exponent digits in numeric literal")
		}
		l.scanDigits()
	}
	value, _ := strconv.ParseFloat(string(l.input[start.Offset:l.pos]), 64)
	return l.finishNumber(start, value)
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func (l *Lexer) scanRadixNumber(start Position, base int, valid func(byte) bool) (Token, error) {
	l.advance() // '0'
	l.advance() // radix marker
	digits := l.pos
	for valid(l.peek()) {
		l.advance()
	}
	if l.pos == digits {
		return Token{}, tokenError(Span{start, l.position()}, "missing digits in numeric literal")
	}
	value, err := strconv.ParseUint(string(l.input[digits:l.pos]), base, 64)
	if err != nil {
		// Out of uint64 range; fall back to the float path digit by digit.
		var f float64
		for _, c := range l.input[digits:l.pos] {
			f = f*float64(base) + float64(hexValue(c))
		}
		return l.finishNumber(start, f)
	}
	return l.finishNumber(start, float64(value))
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// scanLegacyOctal handles 0-prefixed literals like 0644 and 089. The former
// reads as octal, the latter as decimal; both are illegal in strict mode.
func (l *Lexer) scanLegacyOctal(start Position) (Token, error) {
	if l.strict {
		l.scanDigits()
		return Token{}, tokenError(Span{start, l.position()}, "implicit octal literals are not allowed in strict mode")
	}
	l.advance() // '0'
	octal := true
	for isDigit(l.peek()) {
		if l.peek() > '7' {
			octal = false
		}
		l.advance()
	}
	text := string(l.input[start.Offset:l.pos])
	var value float64
	if octal {
		v, _ := strconv.ParseUint(text[1:], 8, 64)
		value = float64(v)
	} else {
		v, _ := strconv.ParseFloat(text, 64)
		value = v
	}
	return l.finishNumber(start, value)
}

func (l *Lexer) finishNumber(start Position, value float64) (Token, error) {
	if c := l.peek(); isIdentStartByte(c) || isDigit(c) {
		return Token{}, tokenError(Span{start, l.position()}, "identifier starts immediately after numeric literal")
	}
	tok := l.make(TokenNumber, start)
	tok.Literal = string(l.input[start.Offset:l.pos])
	tok.Num = value
	return tok, nil
}

func (l *Lexer) scanString(start Position) (Token, error) {
	quote := l.advance()
	var cooked strings.Builder
	legacyOctal := false

	for {
		if l.atEOF() {
			return Token{}, unterminated(Span{start, l.position()}, "string literal")
		}
		c := l.peek()
		switch {
		case c == quote:
			l.advance()
			tok := l.make(TokenString, start)
			tok.Literal = cooked.String()
			tok.Raw = string(l.input[start.Offset:l.pos])
			tok.Sym = l.in.Intern(tok.Literal)
			tok.LegacyOctal = legacyOctal
			return tok, nil
		case c == '\\':
			octal, err := l.scanEscape(&cooked, false)
			if err != nil {
				return Token{}, err
			}
			legacyOctal = legacyOctal || octal
		case c == '\n' || c == '\r':
			return Token{}, unterminated(Span{start, l.position()}, "string literal")
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if r == lineSeparator || r == paragraphSeparator {
				// Allowed raw in string literals since ES2019.
				cooked.WriteRune(r)
				l.advanceLine(size)
				continue
			}
			cooked.Write(l.input[l.pos : l.pos+size])
			l.pos += size
			l.column++
		default:
			cooked.WriteByte(c)
			l.advance()
		}
	}
}

// scanEscape consumes a backslash escape and appends its cooked value.
// Reports whether a legacy octal (or \8 \9) escape was seen; those are
// always illegal in templates and illegal in strict strings.
func (l *Lexer) scanEscape(cooked *strings.Builder, inTemplate bool) (bool, error) {
	escStart := l.position()
	l.advance() // '\\'
	if l.atEOF() {
		return false, unterminated(Span{escStart, l.position()}, "escape sequence")
	}
	c := l.peek()
	switch c {
	case 'n':
		l.advance()
		cooked.WriteByte('\n')
	case 't':
		l.advance()
		cooked.WriteByte('\t')
	case 'r':
		l.advance()
		cooked.WriteByte('\r')
	case 'b':
		l.advance()
		cooked.WriteByte('\b')
	case 'f':
		l.advance()
		cooked.WriteByte('\f')
	case 'v':
		l.advance()
		cooked.WriteByte('\v')
	case 'x':
		l.advance()
		hi, lo := l.peek(), l.peekAt(1)
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return false, tokenError(Span{escStart, l.position()}, "invalid hexadecimal escape sequence")
		}
		l.advance()
		l.advance()
		cooked.WriteRune(rune(hexValue(hi)<<4 | hexValue(lo)))
	case 'u':
		r, err := l.scanUnicodeEscape(escStart)
		if err != nil {
			return false, err
		}
		cooked.WriteRune(r)
	case '\n', '\r':
		// Line continuation: contributes nothing to the cooked value.
		l.advance()
		if c == '\r' && l.peek() == '\n' {
			l.advance()
		}
	case '0':
		if !isDigit(l.peekAt(1)) {
			l.advance()
			cooked.WriteByte(0)
			return false, nil
		}
		return l.scanOctalEscape(escStart, cooked, inTemplate)
	case '1', '2', '3', '4', '5', '6', '7':
		return l.scanOctalEscape(escStart, cooked, inTemplate)
	case '8', '9':
		if inTemplate {
			return false, tokenError(Span{escStart, l.position()}, `\8 and \9 are not allowed in template literals`)
		}
		if l.strict {
			return false, tokenError(Span{escStart, l.position()}, `\8 and \9 are not allowed in strict mode`)
		}
		l.advance()
		cooked.WriteByte(c)
		return true, nil
	default:
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if r == lineSeparator || r == paragraphSeparator {
				l.advanceLine(size)
				return false, nil
			}
			cooked.Write(l.input[l.pos : l.pos+size])
			l.pos += size
			l.column++
			return false, nil
		}
		l.advance()
		cooked.WriteByte(c)
	}
	return false, nil
}

func (l *Lexer) scanUnicodeEscape(escStart Position) (rune, error) {
	l.advance() // 'u'
	if l.peek() == '{' {
		l.advance()
		digits := l.pos
		for isHexDigit(l.peek()) {
			l.advance()
		}
		if l.pos == digits || l.peek() != '}' {
			return 0, tokenError(Span{escStart, l.position()}, "invalid Unicode escape sequence")
		}
		value, err := strconv.ParseUint(string(l.input[digits:l.pos]), 16, 32)
		l.advance() // '}'
		if err != nil || value > unicode.MaxRune {
			return 0, tokenError(Span{escStart, l.position()}, "Unicode code point out of range")
		}
		return rune(value), nil
	}
	var value rune
	for i := 0; i < 4; i++ {
		c := l.peek()
		if !isHexDigit(c) {
			return 0, tokenError(Span{escStart, l.position()}, "invalid Unicode escape sequence")
		}
		l.advance()
		value = value<<4 | rune(hexValue(c))
	}
	return value, nil
}

func (l *Lexer) scanOctalEscape(escStart Position, cooked *strings.Builder, inTemplate bool) (bool, error) {
	if inTemplate {
		return false, tokenError(Span{escStart, l.position()}, "octal escape sequences are not allowed in template literals")
	}
	if l.strict {
		return false, tokenError(Span{escStart, l.position()}, "octal escape sequences are not allowed in strict mode")
	}
	value := 0
	limit := 3
	if l.peek() >= '4' {
		limit = 2
	}
	for i := 0; i < limit && isOctalDigit(l.peek()); i++ {
		value = value*8 + int(l.advance()-'0')
	}
	cooked.WriteRune(rune(value))
	return true, nil
}

// scanTemplateChunk scans from just past the opening '`' (head) or the
// continuation '}'. The raw text keeps source spelling apart from the
// mandated <CR><LF> and <CR> to <LF> normalization.
func (l *Lexer) scanTemplateChunk(start Position, head bool) (Token, error) {
	var cooked, raw strings.Builder

	finish := func(kind TokenKind) Token {
		tok := l.make(kind, start)
		tok.Literal = cooked.String()
		tok.Raw = raw.String()
		tok.Sym = l.in.Intern(tok.Literal)
		return tok
	}

	for {
		if l.atEOF() {
			return Token{}, unterminated(Span{start, l.position()}, "template literal")
		}
		c := l.peek()
		switch {
		case c == '`':
			l.advance()
			if head {
				return finish(TokenTemplateNoSub), nil
			}
			return finish(TokenTemplateTail), nil
		case c == '$' && l.peekAt(1) == '{':
			l.advance()
			l.advance()
			if head {
				return finish(TokenTemplateHead), nil
			}
			return finish(TokenTemplateMiddle), nil
		case c == '\\':
			rawStart := l.pos
			if _, err := l.scanEscape(&cooked, true); err != nil {
				return Token{}, err
			}
			raw.Write(l.input[rawStart:l.pos])
		case c == '\r':
			l.advance()
			if l.peek() == '\n' {
				l.advance()
			}
			cooked.WriteByte('\n')
			raw.WriteByte('\n')
		default:
			if c >= utf8.RuneSelf {
				r, size := utf8.DecodeRune(l.input[l.pos:])
				if r == lineSeparator || r == paragraphSeparator {
					cooked.WriteRune(r)
					raw.WriteRune(r)
					l.advanceLine(size)
					continue
				}
				cooked.Write(l.input[l.pos : l.pos+size])
				raw.Write(l.input[l.pos : l.pos+size])
				l.pos += size
				l.column++
				continue
			}
			cooked.WriteByte(c)
			raw.WriteByte(c)
			l.advance()
		}
	}
}

const regexpFlagAlphabet = "dgimsuvy"

func (l *Lexer) scanRegExp(start Position) (Token, error) {
	l.advance() // '/'
	inClass := false
	for {
		if l.atEOF() {
			return Token{}, unterminated(Span{start, l.position()}, "regular expression literal")
		}
		c := l.peek()
		switch {
		case c == '\\':
			l.advance()
			if l.atEOF() || l.peek() == '\n' || l.peek() == '\r' {
				return Token{}, unterminated(Span{start, l.position()}, "regular expression literal")
			}
			l.advance()
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			l.advance()
			return l.scanRegExpFlags(start)
		case c == '\n' || c == '\r':
			return Token{}, unterminated(Span{start, l.position()}, "regular expression literal")
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if r == lineSeparator || r == paragraphSeparator {
				return Token{}, unterminated(Span{start, l.position()}, "regular expression literal")
			}
			l.pos += size
			l.column++
			continue
		}
		l.advance()
	}
}

func (l *Lexer) scanRegExpFlags(start Position) (Token, error) {
	flagStart := l.pos
	var seen [8]bool
	for !l.atEOF() && isIdentPartByte(l.peek()) {
		idx := strings.IndexByte(regexpFlagAlphabet, l.peek())
		if idx < 0 || seen[idx] {
			l.advance()
			return Token{}, tokenError(Span{start, l.position()}, "invalid regular expression flags %q", string(l.input[flagStart:l.pos]))
		}
		seen[idx] = true
		l.advance()
	}
	tok := l.make(TokenRegExp, start)
	tok.Literal = string(l.input[start.Offset:l.pos])
	return tok, nil
}

func (l *Lexer) scanPunctuator(start Position) (Token, error) {
	c := l.advance()
	kind := TokenError
	switch c {
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	case ';':
		kind = TokenSemicolon
	case ',':
		kind = TokenComma
	case ':':
		kind = TokenColon
	case '~':
		kind = TokenBitNot
	case '.':
		if l.peek() == '.' && l.peekAt(1) == '.' {
			l.advance()
			l.advance()
			kind = TokenEllipsis
		} else {
			kind = TokenDot
		}
	case '?':
		switch {
		case l.peek() == '?' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenNullishAssign
		case l.peek() == '?':
			l.advance()
			kind = TokenNullish
		case l.peek() == '.' && !isDigit(l.peekAt(1)):
			l.advance()
			kind = TokenQuestionDot
		default:
			kind = TokenQuestion
		}
	case '=':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenStrictEQ
		case l.peek() == '=':
			l.advance()
			kind = TokenEQ
		case l.peek() == '>':
			l.advance()
			kind = TokenArrow
		default:
			kind = TokenAssign
		}
	case '!':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenStrictNE
		case l.peek() == '=':
			l.advance()
			kind = TokenNE
		default:
			kind = TokenNot
		}
	case '<':
		switch {
		case l.peek() == '<' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenShlAssign
		case l.peek() == '<':
			l.advance()
			kind = TokenShl
		case l.peek() == '=':
			l.advance()
			kind = TokenLE
		default:
			kind = TokenLT
		}
	case '>':
		switch {
		case l.peek() == '>' && l.peekAt(1) == '>' && l.peekAt(2) == '=':
			l.advance()
			l.advance()
			l.advance()
			kind = TokenUShrAssign
		case l.peek() == '>' && l.peekAt(1) == '>':
			l.advance()
			l.advance()
			kind = TokenUShr
		case l.peek() == '>' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenShrAssign
		case l.peek() == '>':
			l.advance()
			kind = TokenShr
		case l.peek() == '=':
			l.advance()
			kind = TokenGE
		default:
			kind = TokenGT
		}
	case '+':
		switch l.peek() {
		case '+':
			l.advance()
			kind = TokenIncrement
		case '=':
			l.advance()
			kind = TokenPlusAssign
		default:
			kind = TokenPlus
		}
	case '-':
		switch l.peek() {
		case '-':
			l.advance()
			kind = TokenDecrement
		case '=':
			l.advance()
			kind = TokenMinusAssign
		default:
			kind = TokenMinus
		}
	case '*':
		switch {
		case l.peek() == '*' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenStarStarAssign
		case l.peek() == '*':
			l.advance()
			kind = TokenStarStar
		case l.peek() == '=':
			l.advance()
			kind = TokenStarAssign
		default:
			kind = TokenStar
		}
	case '/':
		if l.peek() == '=' {
			l.advance()
			kind = TokenSlashAssign
		} else {
			kind = TokenSlash
		}
	case '%':
		if l.peek() == '=' {
			l.advance()
			kind = TokenPercentAssign
		} else {
			kind = TokenPercent
		}
	case '&':
		switch {
		case l.peek() == '&' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenAndAndAssign
		case l.peek() == '&':
			l.advance()
			kind = TokenAnd
		case l.peek() == '=':
			l.advance()
			kind = TokenAndAssign
		default:
			kind = TokenBitAnd
		}
	case '|':
		switch {
		case l.peek() == '|' && l.peekAt(1) == '=':
			l.advance()
			l.advance()
			kind = TokenOrOrAssign
		case l.peek() == '|':
			l.advance()
			kind = TokenOr
		case l.peek() == '=':
			l.advance()
			kind = TokenOrAssign
		default:
			kind = TokenBitOr
		}
	case '^':
		if l.peek() == '=' {
			l.advance()
			kind = TokenXorAssign
		} else {
			kind = TokenBitXor
		}
	default:
		return Token{}, tokenError(Span{start, l.position()}, "unexpected character %q", rune(c))
	}
	tok := l.make(kind, start)
	tok.Literal = tokenKindNames[kind]
	return tok, nil
}
