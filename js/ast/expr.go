package ast

// Ident is an identifier reference. It doubles as the leaf of binding and
// assignment patterns.
type Ident struct {
	Span Span
	Name Symbol
}

func (n *Ident) Loc() Span    { return n.Span }
func (n *Ident) exprNode()    {}
func (n *Ident) patternNode() {}

type NullLit struct {
	Span Span
}

func (n *NullLit) Loc() Span { return n.Span }
func (n *NullLit) exprNode() {}

type BoolLit struct {
	Span  Span
	Value bool
}

func (n *BoolLit) Loc() Span { return n.Span }
func (n *BoolLit) exprNode() {}

type NumberLit struct {
	Span  Span
	Value float64
	// Raw is the literal exactly as written, kept so printers do not have
	// to re-derive a spelling for hex, octal, or exponent forms.
	Raw string
}

func (n *NumberLit) Loc() Span { return n.Span }
func (n *NumberLit) exprNode() {}

type StringLit struct {
	Span  Span
	Value Symbol
	// Raw includes the quotes. Directive detection compares the raw
	// interior, so "use\x20strict" is not a directive.
	Raw string
	// LegacyOctal records that the literal contains a legacy octal escape,
	// which becomes an error retroactively when a later directive enables
	// strict mode.
	LegacyOctal bool
}

func (n *StringLit) Loc() Span { return n.Span }
func (n *StringLit) exprNode() {}

type RegExpLit struct {
	Span    Span
	Pattern Symbol
	Flags   Symbol
}

func (n *RegExpLit) Loc() Span { return n.Span }
func (n *RegExpLit) exprNode() {}

// TemplateElement is one literal chunk of a template. Cooked holds the text
// with escapes applied, Raw the source spelling between the delimiters.
type TemplateElement struct {
	Span   Span
	Cooked Symbol
	Raw    string
}

func (n *TemplateElement) Loc() Span { return n.Span }

// TemplateLit is an untagged template literal. Quasis always has exactly
// one more element than Exprs.
type TemplateLit struct {
	Span   Span
	Quasis []*TemplateElement
	Exprs  []Expr
}

func (n *TemplateLit) Loc() Span { return n.Span }
func (n *TemplateLit) exprNode() {}

type TaggedTemplate struct {
	Span  Span
	Tag   Expr
	Quasi *TemplateLit
}

func (n *TaggedTemplate) Loc() Span { return n.Span }
func (n *TaggedTemplate) exprNode() {}

// ArrayLit is an array initializer. A nil element is an elision.
type ArrayLit struct {
	Span  Span
	Elems []Expr
}

func (n *ArrayLit) Loc() Span { return n.Span }
func (n *ArrayLit) exprNode() {}

// SpreadElement is ...expr in array literals, call arguments, and object
// literals.
type SpreadElement struct {
	Span Span
	Arg  Expr
}

func (n *SpreadElement) Loc() Span         { return n.Span }
func (n *SpreadElement) exprNode()         {}
func (n *SpreadElement) objectMemberNode() {}

// ObjectMember is an entry of an object literal: a property definition, a
// method definition, or a spread.
type ObjectMember interface {
	Node
	objectMemberNode()
}

// PropertyDef is key: value, a shorthand property, or the cover form
// key = init that is only valid once the literal is reinterpreted as an
// assignment pattern.
type PropertyDef struct {
	Span      Span
	Key       Expr
	Computed  bool
	Shorthand bool
	Value     Expr
	// CoverInit is set for the shorthand-with-initializer form. It must be
	// consumed by pattern conversion; if it survives in an expression the
	// literal is rejected.
	CoverInit Expr
}

func (n *PropertyDef) Loc() Span         { return n.Span }
func (n *PropertyDef) objectMemberNode() {}

// MethodDef is a method, getter, or setter in an object literal. The role
// is carried by Fn.
type MethodDef struct {
	Span     Span
	Key      Expr
	Computed bool
	Fn       *FunctionLit
}

func (n *MethodDef) Loc() Span         { return n.Span }
func (n *MethodDef) objectMemberNode() {}

type ObjectLit struct {
	Span    Span
	Members []ObjectMember
}

func (n *ObjectLit) Loc() Span { return n.Span }
func (n *ObjectLit) exprNode() {}

type ThisExpr struct {
	Span Span
}

func (n *ThisExpr) Loc() Span { return n.Span }
func (n *ThisExpr) exprNode() {}

// SuperExpr appears only as the object of a MemberExpr (super property) or
// the callee of a CallExpr (super call). Legality is decided by the
// enclosing function's validator.
type SuperExpr struct {
	Span Span
}

func (n *SuperExpr) Loc() Span { return n.Span }
func (n *SuperExpr) exprNode() {}

// MemberExpr is property access. It doubles as an assignment target.
// Optional marks the ?. form.
type MemberExpr struct {
	Span     Span
	Object   Expr
	Prop     Expr
	Computed bool
	Optional bool
}

func (n *MemberExpr) Loc() Span    { return n.Span }
func (n *MemberExpr) exprNode()    {}
func (n *MemberExpr) patternNode() {}

type CallExpr struct {
	Span     Span
	Callee   Expr
	Args     []Expr
	Optional bool
}

func (n *CallExpr) Loc() Span { return n.Span }
func (n *CallExpr) exprNode() {}

type NewExpr struct {
	Span   Span
	Callee Expr
	Args   []Expr
}

func (n *NewExpr) Loc() Span { return n.Span }
func (n *NewExpr) exprNode() {}

// UnaryExpr covers delete, void, typeof, +, -, ~, !.
type UnaryExpr struct {
	Span    Span
	Op      string
	Operand Expr
}

func (n *UnaryExpr) Loc() Span { return n.Span }
func (n *UnaryExpr) exprNode() {}

// UpdateExpr is ++ or -- in prefix or postfix position.
type UpdateExpr struct {
	Span    Span
	Op      string
	Prefix  bool
	Operand Expr
}

func (n *UpdateExpr) Loc() Span { return n.Span }
func (n *UpdateExpr) exprNode() {}

// BinaryExpr covers arithmetic, relational, equality, bitwise, shift, and
// the short-circuit operators && || ??.
type BinaryExpr struct {
	Span  Span
	Op    string
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Loc() Span { return n.Span }
func (n *BinaryExpr) exprNode() {}

// AssignExpr is target op value. For plain = the target may be a
// destructuring pattern; compound operators require a simple reference.
type AssignExpr struct {
	Span   Span
	Op     string
	Target Pattern
	Value  Expr
}

func (n *AssignExpr) Loc() Span { return n.Span }
func (n *AssignExpr) exprNode() {}

type CondExpr struct {
	Span Span
	Test Expr
	Cons Expr
	Alt  Expr
}

func (n *CondExpr) Loc() Span { return n.Span }
func (n *CondExpr) exprNode() {}

type YieldExpr struct {
	Span     Span
	Arg      Expr
	Delegate bool
}

func (n *YieldExpr) Loc() Span { return n.Span }
func (n *YieldExpr) exprNode() {}

type AwaitExpr struct {
	Span Span
	Arg  Expr
}

func (n *AwaitExpr) Loc() Span { return n.Span }
func (n *AwaitExpr) exprNode() {}

// SequenceExpr is the comma operator. Exprs has at least two entries.
type SequenceExpr struct {
	Span  Span
	Exprs []Expr
}

func (n *SequenceExpr) Loc() Span { return n.Span }
func (n *SequenceExpr) exprNode() {}
