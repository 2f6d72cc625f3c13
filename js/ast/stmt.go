package ast

type BlockStmt struct {
	Span Span
	List []Stmt
}

func (n *BlockStmt) Loc() Span { return n.Span }
func (n *BlockStmt) stmtNode() {}

// Declarator is one target = init pair of a declaration.
type Declarator struct {
	Span   Span
	Target Pattern
	Init   Expr
}

func (n *Declarator) Loc() Span { return n.Span }

// VarDecl is a var, let, or const declaration. Kind holds the keyword.
type VarDecl struct {
	Span  Span
	Kind  string
	Decls []*Declarator
}

func (n *VarDecl) Loc() Span { return n.Span }
func (n *VarDecl) stmtNode() {}

func (n *VarDecl) IsLexical() bool { return n.Kind != "var" }

type EmptyStmt struct {
	Span Span
}

func (n *EmptyStmt) Loc() Span { return n.Span }
func (n *EmptyStmt) stmtNode() {}

// ExprStmt is an expression statement. Directive holds the raw interior of
// the string literal when the statement is part of a directive prologue
// candidate, empty otherwise.
type ExprStmt struct {
	Span      Span
	Expr      Expr
	Directive string
}

func (n *ExprStmt) Loc() Span { return n.Span }
func (n *ExprStmt) stmtNode() {}

type IfStmt struct {
	Span Span
	Test Expr
	Cons Stmt
	Alt  Stmt
}

func (n *IfStmt) Loc() Span { return n.Span }
func (n *IfStmt) stmtNode() {}

type DoWhileStmt struct {
	Span Span
	Body Stmt
	Test Expr
}

func (n *DoWhileStmt) Loc() Span { return n.Span }
func (n *DoWhileStmt) stmtNode() {}

type WhileStmt struct {
	Span Span
	Test Expr
	Body Stmt
}

func (n *WhileStmt) Loc() Span { return n.Span }
func (n *WhileStmt) stmtNode() {}

// ForStmt is the classic three-clause loop. Init is nil, a *VarDecl, or an
// Expr; Test and Update may be nil.
type ForStmt struct {
	Span   Span
	Init   Node
	Test   Expr
	Update Expr
	Body   Stmt
}

func (n *ForStmt) Loc() Span { return n.Span }
func (n *ForStmt) stmtNode() {}

// ForInStmt is for (left in right). Left is a *VarDecl with exactly one
// initializer-free declarator, or a Pattern.
type ForInStmt struct {
	Span  Span
	Left  Node
	Right Expr
	Body  Stmt
}

func (n *ForInStmt) Loc() Span { return n.Span }
func (n *ForInStmt) stmtNode() {}

type ForOfStmt struct {
	Span  Span
	Left  Node
	Right Expr
	Body  Stmt
}

func (n *ForOfStmt) Loc() Span { return n.Span }
func (n *ForOfStmt) stmtNode() {}

// ContinueStmt carries the target label, or SymNone when unlabeled.
type ContinueStmt struct {
	Span  Span
	Label Symbol
}

func (n *ContinueStmt) Loc() Span { return n.Span }
func (n *ContinueStmt) stmtNode() {}

type BreakStmt struct {
	Span  Span
	Label Symbol
}

func (n *BreakStmt) Loc() Span { return n.Span }
func (n *BreakStmt) stmtNode() {}

// ReturnStmt with a nil Arg returns undefined.
type ReturnStmt struct {
	Span Span
	Arg  Expr
}

func (n *ReturnStmt) Loc() Span { return n.Span }
func (n *ReturnStmt) stmtNode() {}

type WithStmt struct {
	Span   Span
	Object Expr
	Body   Stmt
}

func (n *WithStmt) Loc() Span { return n.Span }
func (n *WithStmt) stmtNode() {}

type LabeledStmt struct {
	Span  Span
	Label Symbol
	Body  Stmt
}

func (n *LabeledStmt) Loc() Span { return n.Span }
func (n *LabeledStmt) stmtNode() {}

// CaseClause is one case of a switch; Test is nil for default.
type CaseClause struct {
	Span Span
	Test Expr
	Body []Stmt
}

func (n *CaseClause) Loc() Span { return n.Span }

type SwitchStmt struct {
	Span  Span
	Disc  Expr
	Cases []*CaseClause
}

func (n *SwitchStmt) Loc() Span { return n.Span }
func (n *SwitchStmt) stmtNode() {}

type ThrowStmt struct {
	Span Span
	Arg  Expr
}

func (n *ThrowStmt) Loc() Span { return n.Span }
func (n *ThrowStmt) stmtNode() {}

// TryStmt has at least one of a catch or finally block. CatchParam is nil
// for the parameterless catch form.
type TryStmt struct {
	Span       Span
	Block      *BlockStmt
	CatchParam Pattern
	CatchBody  *BlockStmt
	Finally    *BlockStmt
}

func (n *TryStmt) Loc() Span { return n.Span }
func (n *TryStmt) stmtNode() {}

type DebuggerStmt struct {
	Span Span
}

func (n *DebuggerStmt) Loc() Span { return n.Span }
func (n *DebuggerStmt) stmtNode() {}

// FunctionDecl is a hoistable function declaration.
type FunctionDecl struct {
	Span Span
	Fn   *FunctionLit
}

func (n *FunctionDecl) Loc() Span { return n.Span }
func (n *FunctionDecl) stmtNode() {}

// ImportSpec is one name of a named-import list. Imported is the exported
// name on the requested module, Local the binding created here; they are
// equal unless the `as` form was used.
type ImportSpec struct {
	Span     Span
	Imported Symbol
	Local    Symbol
}

func (n *ImportSpec) Loc() Span { return n.Span }

// ImportDecl covers every import form. Default and Namespace are SymNone
// when absent; a bare `import "mod"` has no bindings at all.
type ImportDecl struct {
	Span      Span
	Default   Symbol
	Namespace Symbol
	Named     []*ImportSpec
	From      Symbol
}

func (n *ImportDecl) Loc() Span { return n.Span }
func (n *ImportDecl) stmtNode() {}

// ExportSpec is one name of an export list. Local is the name in this
// module (or on the re-exported module), Exported the outward-facing name.
type ExportSpec struct {
	Span     Span
	Local    Symbol
	Exported Symbol
}

func (n *ExportSpec) Loc() Span { return n.Span }

// ExportNamedDecl is `export { ... }`, `export { ... } from "mod"`, or
// `export <declaration>`. Exactly one of Specs or Decl is set.
type ExportNamedDecl struct {
	Span  Span
	Specs []*ExportSpec
	Decl  Stmt
	From  Symbol
	// HasFrom distinguishes `export {} from ""` from a local list, since
	// an empty module name is a legal (if useless) specifier.
	HasFrom bool
}

func (n *ExportNamedDecl) Loc() Span { return n.Span }
func (n *ExportNamedDecl) stmtNode() {}

// ExportAllDecl is `export * from "mod"` or `export * as ns from "mod"`.
type ExportAllDecl struct {
	Span Span
	As   Symbol
	From Symbol
}

func (n *ExportAllDecl) Loc() Span { return n.Span }
func (n *ExportAllDecl) stmtNode() {}

// ExportDefaultDecl is `export default ...`. Decl is a *FunctionDecl for
// hoistable forms, otherwise an Expr wrapped in an *ExprStmt.
type ExportDefaultDecl struct {
	Span Span
	Decl Stmt
}

func (n *ExportDefaultDecl) Loc() Span { return n.Span }
func (n *ExportDefaultDecl) stmtNode() {}
