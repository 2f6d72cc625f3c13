package parser

import "fmt"

// ErrorCategory classifies a SyntaxError.
type ErrorCategory int

const (
	// ErrToken is a malformed token reported by the lexer.
	ErrToken ErrorCategory = iota
	// ErrUnexpectedToken means a grammar terminal other than the expected
	// one was found.
	ErrUnexpectedToken
	// ErrEarly is a static-semantics violation in an otherwise well-formed
	// parse (duplicate names, illegal strict-mode construct, illegal
	// contained construct).
	ErrEarly
	// ErrUnterminated means end of input was reached mid-production.
	ErrUnterminated
)

var errorCategoryNames = map[ErrorCategory]string{
	ErrToken:           "token error",
	ErrUnexpectedToken: "unexpected token",
	ErrEarly:           "early error",
	ErrUnterminated:    "unterminated construct",
}

func (c ErrorCategory) String() string {
	if name, ok := errorCategoryNames[c]; ok {
		return name
	}
	return "syntax error"
}

// SyntaxError is the single error type produced by this package. The first
// error aborts the parse and travels unchanged to the entry-point caller.
// Context carries the label of the production that detected the problem,
// e.g. "generator expression" or "formal parameter list".
type SyntaxError struct {
	Category ErrorCategory
	Span     Span
	Message  string
	Context  string
}

func (e *SyntaxError) Error() string {
	pos := e.Span.Start
	where := fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	if pos.File != "" {
		where = pos.File + ":" + where
	}
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s in %s", where, e.Category, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s: %s", where, e.Category, e.Message)
}

func tokenError(span Span, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Category: ErrToken,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	}
}

func unterminated(span Span, what string) *SyntaxError {
	return &SyntaxError{
		Category: ErrUnterminated,
		Span:     span,
		Message:  "unterminated " + what,
	}
}

func unexpectedToken(found *Token, expected, context string) *SyntaxError {
	var msg string
	if expected != "" {
		msg = fmt.Sprintf("expected %s, found %s", expected, describeToken(found))
	} else {
		msg = fmt.Sprintf("unexpected %s", describeToken(found))
	}
	return &SyntaxError{
		Category: ErrUnexpectedToken,
		Span:     found.Span,
		Message:  msg,
		Context:  context,
	}
}

func earlyError(span Span, context string, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Category: ErrEarly,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	}
}

func describeToken(t *Token) string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", t.Literal)
	case TokenNumber:
		return fmt.Sprintf("number %s", t.Literal)
	case TokenString:
		return "string literal"
	case TokenRegExp:
		return "regular expression literal"
	case TokenTemplateNoSub, TokenTemplateHead, TokenTemplateMiddle, TokenTemplateTail:
		return "template literal"
	}
	return fmt.Sprintf("%q", t.Kind.String())
}
