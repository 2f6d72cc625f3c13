// Package ast defines the syntax tree produced by the parser and the
// static-semantics operations that run over it.
//
// Nodes are plain values owning their children exclusively; a finished tree
// is address-independent and safe to traverse read-only from a later
// compilation stage. Identifier text is carried as interner symbols, so
// name comparisons are integer comparisons. Spans carry both line/column
// positions for diagnostics and byte offsets, which double as the linear
// positions used by ordering checks that must ignore line breaks.
//
// The hierarchy:
//
//	Node (interface)
//	  Expr:  expression forms
//	  Stmt:  statements and module items
//	  Pattern: binding and assignment targets (Ident and MemberExpr
//	           double as patterns; ObjectPattern/ArrayPattern are
//	           pattern-only)
//
// Function-like nodes carry their own strict bit in addition to the span;
// parameter lists carry the derived IsSimple and HasDuplicates flags.
package ast

import "github.com/dhamidi/kei/js/interner"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// Node is the root interface for every element of the tree.
type Node interface {
	Loc() Span
}

// Expr is a Node that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement or module item.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is a node usable as a binding or assignment target.
type Pattern interface {
	Node
	patternNode()
}

// Script is the tree for a source parsed with the script goal.
type Script struct {
	Span   Span
	Body   []Stmt
	Strict bool
}

func (s *Script) Loc() Span      { return s.Span }
func (s *Script) Stmts() []Stmt  { return s.Body }
func (s *Script) IsModule() bool { return false }

// Module is the tree for a source parsed with the module goal. Module code
// is always strict.
type Module struct {
	Span Span
	Body []Stmt
}

func (m *Module) Loc() Span      { return m.Span }
func (m *Module) Stmts() []Stmt  { return m.Body }
func (m *Module) IsModule() bool { return true }

// Program is implemented by Script and Module.
type Program interface {
	Node
	Stmts() []Stmt
	IsModule() bool
}

// Symbol aliases the interner handle type for brevity in node definitions.
type Symbol = interner.Symbol
