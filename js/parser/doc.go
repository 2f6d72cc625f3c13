// Package parser provides a recursive-descent parser for ECMAScript
// scripts and modules with integrated early-error checking.
//
// # Overview
//
// The parser consumes a complete source text and produces an abstract
// syntax tree, or the first syntax error. There is no error recovery and
// no partial tree: the first violation, whether a malformed token, an
// unexpected token, or a static-semantics rule, aborts the parse. Early
// errors are checked as each construct finishes parsing, so a violation
// deep in the input is reported without finishing the rest of the file.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Cursor    │
//	│  (bytes)    │     │  (tokens)   │     │ (lookahead) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│     AST     │◀────│ Validators  │◀────│   Parser    │
//	│  (js/ast)   │     │(early errs) │     │ (grammar)   │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// The lexer produces tokens on demand. The cursor buffers them for
// lookahead and owns the two pieces of state the lexer cannot decide
// alone: the lexical goal and the strict flag. The parser drives the
// cursor, builds js/ast nodes, and runs the static-semantics validators
// on each completed fragment.
//
// # Lexical Goals
//
// A '/' is a division operator or the start of a regular expression
// depending on what the grammar allows at that position, and a '}' may
// resume a template literal. The lexer cannot know; the parser does. The
// cursor's SetGoal arms the regexp goal for positions where an expression
// may begin, and ReLexTemplate rescans a '}' as a template middle or
// tail. Arming a goal invalidates buffered lookahead so the next Peek
// rescans under the new goal.
//
// # Grammar Context
//
// Context-sensitive productions thread a small immutable context value
// through the parse functions:
//
//	type context struct {
//	    allowYield  bool // yield is an expression, not an identifier
//	    allowAwait  bool // await is an expression, not an identifier
//	    allowIn     bool // the in operator may appear (off in for-init)
//	    allowReturn bool // return is legal here
//	    kind        fnKind
//	}
//
// Deriving a new context copies the value, so parsing a nested function
// cannot leak flags back into the enclosing production.
//
// # Static Semantics
//
// Early errors run interleaved with parsing, each at the point where the
// enclosing construct completes: duplicate lexical declarations when a
// block closes, parameter rules when a function finishes, label rules and
// export collisions when the program body ends. The js/ast operations
// (BoundNameRefs, LexicallyDeclaredNameRefs, FindYieldExpr, and friends)
// supply the name sets and containment queries the checks are written in.
//
// # Error Reporting
//
// All failures are *SyntaxError values carrying a category, a source
// span, and a message:
//
//	ErrToken           malformed input at the character level
//	ErrUnexpectedToken well-formed token the grammar cannot accept
//	ErrEarly           static-semantics violation
//	ErrUnterminated    construct still open at end of input
//
// # Entry Points
//
//	// ParseScript parses the source as a classic script: sloppy unless a
//	// "use strict" directive upgrades it.
//	func (p *Parser) ParseScript() (*ast.Script, error)
//
//	// ParseModule parses the source as a module: strict throughout, await
//	// reserved at the top level, import and export allowed.
//	func (p *Parser) ParseModule() (*ast.Module, error)
//
//	// ParseExpression parses a standalone expression spanning the whole
//	// input. Useful for snippets and REPL-style evaluation.
//	func (p *Parser) ParseExpression() (ast.Expr, error)
//
// # Thread Safety
//
// A Parser is single use and not safe for concurrent use. The interner is
// safe to share: give each parser the same interner with WithInterner and
// symbols compare across files.
//
// # Example Usage
//
//	p := parser.New(src, parser.WithFile("app.js"))
//	script, err := p.ParseScript()
//	if err != nil {
//	    var serr *parser.SyntaxError
//	    if errors.As(err, &serr) {
//	        fmt.Println(serr) // app.js:3:7: syntax error: ...
//	    }
//	    return err
//	}
//	name := p.Interner().Resolve(someIdent.Name)
package parser
