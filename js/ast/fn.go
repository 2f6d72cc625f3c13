package ast

// FunctionRole distinguishes the syntactic position of a function-like
// node. Together with the Generator and Async flags it determines which
// grammar parameters the body was parsed under and which early errors
// apply.
type FunctionRole int

const (
	RoleFunction FunctionRole = iota
	RoleArrow
	RoleMethod
	RoleGetter
	RoleSetter
)

var functionRoleNames = map[FunctionRole]string{
	RoleFunction: "function",
	RoleArrow:    "arrow",
	RoleMethod:   "method",
	RoleGetter:   "getter",
	RoleSetter:   "setter",
}

func (r FunctionRole) String() string {
	if name, ok := functionRoleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Param is one formal parameter, or one element of an array pattern when
// reused there. A nil entry in an array pattern is an elision.
type Param struct {
	Span    Span
	Target  Pattern
	Default Expr
	Rest    bool
}

func (n *Param) Loc() Span { return n.Span }

// ParamList is a formal parameter list together with the two classification
// flags derived while parsing. IsSimple is true when every parameter is a
// plain identifier without default or rest; HasDuplicates is true when a
// bound name occurs more than once.
type ParamList struct {
	Span          Span
	List          []*Param
	IsSimple      bool
	HasDuplicates bool
}

func (n *ParamList) Loc() Span { return n.Span }

// FunctionLit is the shared shape of function declarations, function
// expressions, arrow functions, and object-literal methods. Name is
// SymNone for anonymous forms. Strict is true when the function is itself
// strict, whether inherited or introduced by its own prologue.
//
// Arrow functions with a concise body store the expression in ExprBody and
// leave Body nil; every other form has a Body.
type FunctionLit struct {
	Span      Span
	Role      FunctionRole
	Generator bool
	Async     bool
	Name      Symbol
	NameSpan  Span
	Params    *ParamList
	Body      *BlockStmt
	ExprBody  Expr
	Strict    bool
}

func (n *FunctionLit) Loc() Span { return n.Span }
func (n *FunctionLit) exprNode() {}

// BodyStmts returns the statements of the body, or nil for a concise arrow
// body.
func (n *FunctionLit) BodyStmts() []Stmt {
	if n.Body == nil {
		return nil
	}
	return n.Body.List
}

// PropertyPattern is one entry of an object pattern. For the shorthand form
// Key and Value describe the same identifier. Default may be nil.
type PropertyPattern struct {
	Span     Span
	Key      Expr
	Computed bool
	Value    Pattern
	Default  Expr
}

func (n *PropertyPattern) Loc() Span { return n.Span }

// ObjectPattern is a destructuring target of the form { ... }. Rest, when
// present, binds the remaining properties and admits no default.
type ObjectPattern struct {
	Span  Span
	Props []*PropertyPattern
	Rest  Pattern
}

func (n *ObjectPattern) Loc() Span    { return n.Span }
func (n *ObjectPattern) patternNode() {}

// ArrayPattern is a destructuring target of the form [ ... ]. Elements
// reuse Param: nil is an elision, Rest marks the trailing rest element.
type ArrayPattern struct {
	Span  Span
	Elems []*Param
}

func (n *ArrayPattern) Loc() Span    { return n.Span }
func (n *ArrayPattern) patternNode() {}
