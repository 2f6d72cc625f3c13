package parser

import "fmt"

// Cursor owns the lexer and a bounded lookahead buffer. Peeking never
// consumes; consumption advances monotonically and there is no rollback past
// a consumed token. Disambiguation goals and the strict bit must be set
// before the affected token is first pulled from the lexer.
type Cursor struct {
	lexer   *Lexer
	buf     []Token
	err     *SyntaxError
	prevEnd Position
	strict  bool
}

func newCursor(lexer *Lexer) *Cursor {
	return &Cursor{
		lexer:   lexer,
		prevEnd: Position{File: lexer.file, Line: 1, Column: 1},
	}
}

// fill buffers tokens until offset n is available or the stream has ended.
// A lexer error is sticky: it is represented in the buffer by a TokenError
// sentinel and returned by the consuming methods.
func (c *Cursor) fill(n int) {
	for len(c.buf) <= n {
		if last := len(c.buf) - 1; last >= 0 {
			if k := c.buf[last].Kind; k == TokenEOF || k == TokenError {
				return
			}
		}
		tok, err := c.lexer.Next()
		if err != nil {
			c.err = err.(*SyntaxError)
			c.buf = append(c.buf, Token{Kind: TokenError, Span: c.err.Span})
			return
		}
		c.buf = append(c.buf, tok)
	}
}

// Peek returns the token at the given lookahead offset without consuming.
// Past end-of-input it returns the end-of-input token (fails closed).
func (c *Cursor) Peek(offset int) Token {
	c.fill(offset)
	if offset < len(c.buf) {
		return c.buf[offset]
	}
	return c.buf[len(c.buf)-1]
}

// Next consumes and returns the next token. The end-of-input token can be
// consumed repeatedly; a lexer error surfaces here.
func (c *Cursor) Next() (Token, error) {
	c.fill(0)
	tok := c.buf[0]
	if tok.Kind == TokenError {
		return Token{}, c.err
	}
	if tok.Kind != TokenEOF {
		c.buf = c.buf[1:]
		c.prevEnd = tok.Span.End
	}
	return tok, nil
}

// Expect consumes the next token only if it has the wanted kind. Otherwise
// the cursor does not advance and an UnexpectedToken error naming the
// expected construct is returned.
func (c *Cursor) Expect(kind TokenKind, context string) (Token, error) {
	tok := c.Peek(0)
	if tok.Kind == TokenError {
		return Token{}, c.err
	}
	if tok.Kind != kind {
		return Token{}, unexpectedToken(&tok, expectName(kind), context)
	}
	return c.Next()
}

func expectName(kind TokenKind) string {
	switch kind {
	case TokenIdent:
		return "identifier"
	case TokenEOF:
		return "end of input"
	case TokenString:
		return "string literal"
	}
	return fmt.Sprintf("%q", kind.String())
}

// SetGoal arms the lexer goal for the next raw scan. It must be called
// before the affected token is first peeked; tokens already in the buffer
// keep the interpretation they were lexed under.
func (c *Cursor) SetGoal(goal Goal) {
	c.lexer.goal = goal
}

// ReLexTemplate converts a peeked-but-unconsumed '}' into the next template
// chunk. The expression inside a template substitution necessarily peeks the
// closing brace as a punctuator; since that token was never consumed, the
// lexer rewinds to its start and rescans under the template-tail goal.
func (c *Cursor) ReLexTemplate(context string) (Token, error) {
	tok := c.Peek(0)
	if tok.Kind == TokenError {
		return Token{}, c.err
	}
	if tok.Kind != TokenRBrace {
		return Token{}, unexpectedToken(&tok, `"}"`, context)
	}
	c.lexer.setPosition(tok.Span.Start)
	c.buf = c.buf[:0]
	c.lexer.goal = GoalTemplateTail
	return c.Next()
}

// SetStrict flips the strict-mode bit for the current scope and mirrors it
// into the lexer, where it changes octal and escape legality.
func (c *Cursor) SetStrict(strict bool) {
	c.strict = strict
	c.lexer.strict = strict
}

func (c *Cursor) Strict() bool { return c.strict }

// PrevEnd reports the end position of the last consumed token, used for
// spans of inserted semicolons and end-of-input diagnostics.
func (c *Cursor) PrevEnd() Position { return c.prevEnd }
