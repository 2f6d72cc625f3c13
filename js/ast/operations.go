package ast

import "github.com/dhamidi/kei/js/interner"

// NameRef pairs a declared name with the span of its declaration site, so
// validators can anchor diagnostics at the offending occurrence.
type NameRef struct {
	Sym  Symbol
	Span Span
}

// BoundNameRefs collects the names a node binds, in source order. It
// understands patterns, parameter lists, declarations, function
// declarations, and import declarations.
func BoundNameRefs(n Node) []NameRef {
	var out []NameRef
	collectBoundNames(n, &out)
	return out
}

// BoundNames is BoundNameRefs without the spans.
func BoundNames(n Node) []Symbol {
	refs := BoundNameRefs(n)
	syms := make([]Symbol, len(refs))
	for i, r := range refs {
		syms[i] = r.Sym
	}
	return syms
}

func collectBoundNames(n Node, out *[]NameRef) {
	switch n := n.(type) {
	case nil:
	case *Ident:
		*out = append(*out, NameRef{n.Name, n.Span})
	case *ObjectPattern:
		for _, p := range n.Props {
			collectBoundNames(p.Value, out)
		}
		collectBoundNames(n.Rest, out)
	case *ArrayPattern:
		for _, e := range n.Elems {
			if e != nil {
				collectBoundNames(e.Target, out)
			}
		}
	case *Param:
		collectBoundNames(n.Target, out)
	case *ParamList:
		for _, p := range n.List {
			collectBoundNames(p, out)
		}
	case *Declarator:
		collectBoundNames(n.Target, out)
	case *VarDecl:
		for _, d := range n.Decls {
			collectBoundNames(d, out)
		}
	case *FunctionDecl:
		if n.Fn.Name != interner.SymNone {
			*out = append(*out, NameRef{n.Fn.Name, n.Fn.NameSpan})
		}
	case *ImportDecl:
		if n.Default != interner.SymNone {
			*out = append(*out, NameRef{n.Default, n.Span})
		}
		if n.Namespace != interner.SymNone {
			*out = append(*out, NameRef{n.Namespace, n.Span})
		}
		for _, s := range n.Named {
			*out = append(*out, NameRef{s.Local, s.Span})
		}
	case *ExportNamedDecl:
		collectBoundNames(n.Decl, out)
	case *ExportDefaultDecl:
		collectBoundNames(n.Decl, out)
	case *MemberExpr:
		// assignment target, binds nothing
	}
}

// LexicallyDeclaredNameRefs returns the names declared by let, const,
// imports, and function declarations directly in the given statement list.
// This is the block-level and module-level notion, where function
// declarations are lexical.
func LexicallyDeclaredNameRefs(stmts []Stmt) []NameRef {
	var out []NameRef
	for _, s := range stmts {
		lexNames(s, true, &out)
	}
	return out
}

// TopLevelLexicallyDeclaredNameRefs is the script and function-body
// variant, where function declarations hoist as vars and only let and
// const count as lexical.
func TopLevelLexicallyDeclaredNameRefs(stmts []Stmt) []NameRef {
	var out []NameRef
	for _, s := range stmts {
		lexNames(s, false, &out)
	}
	return out
}

func lexNames(s Stmt, includeFns bool, out *[]NameRef) {
	switch s := s.(type) {
	case *VarDecl:
		if s.IsLexical() {
			collectBoundNames(s, out)
		}
	case *FunctionDecl:
		if includeFns {
			collectBoundNames(s, out)
		}
	case *LabeledStmt:
		// A labelled function declaration binds like the level it
		// appears at: lexical in blocks, var-scoped at the top level
		// where plain function declarations hoist too.
		if _, ok := s.Body.(*FunctionDecl); ok {
			lexNames(s.Body, includeFns, out)
		}
	case *ImportDecl:
		collectBoundNames(s, out)
	case *ExportNamedDecl:
		if s.Decl != nil {
			lexNames(s.Decl, includeFns, out)
		}
	case *ExportDefaultDecl:
		if fd, ok := s.Decl.(*FunctionDecl); ok && fd.Fn.Name != interner.SymNone {
			collectBoundNames(fd, out)
		}
	}
}

// VarDeclaredNameRefs collects var-declared names reachable from the
// statement list without crossing a function boundary. Function
// declarations do not contribute here; use the top-level variant where
// they hoist.
func VarDeclaredNameRefs(stmts []Stmt) []NameRef {
	var out []NameRef
	for _, s := range stmts {
		varNames(s, false, &out)
	}
	return out
}

// TopLevelVarDeclaredNameRefs is the script and function-body variant: in
// addition to vars it includes the names of function declarations at the
// top level itself.
func TopLevelVarDeclaredNameRefs(stmts []Stmt) []NameRef {
	var out []NameRef
	for _, s := range stmts {
		varNames(s, true, &out)
	}
	return out
}

func varNames(s Stmt, top bool, out *[]NameRef) {
	switch s := s.(type) {
	case *VarDecl:
		if !s.IsLexical() {
			collectBoundNames(s, out)
		}
	case *FunctionDecl:
		if top {
			collectBoundNames(s, out)
		}
	case *BlockStmt:
		for _, c := range s.List {
			varNames(c, false, out)
		}
	case *IfStmt:
		varNames(s.Cons, false, out)
		if s.Alt != nil {
			varNames(s.Alt, false, out)
		}
	case *DoWhileStmt:
		varNames(s.Body, false, out)
	case *WhileStmt:
		varNames(s.Body, false, out)
	case *WithStmt:
		varNames(s.Body, false, out)
	case *ForStmt:
		if d, ok := s.Init.(*VarDecl); ok && !d.IsLexical() {
			collectBoundNames(d, out)
		}
		varNames(s.Body, false, out)
	case *ForInStmt:
		if d, ok := s.Left.(*VarDecl); ok && !d.IsLexical() {
			collectBoundNames(d, out)
		}
		varNames(s.Body, false, out)
	case *ForOfStmt:
		if d, ok := s.Left.(*VarDecl); ok && !d.IsLexical() {
			collectBoundNames(d, out)
		}
		varNames(s.Body, false, out)
	case *LabeledStmt:
		varNames(s.Body, top, out)
	case *SwitchStmt:
		for _, c := range s.Cases {
			for _, b := range c.Body {
				varNames(b, false, out)
			}
		}
	case *TryStmt:
		for _, c := range s.Block.List {
			varNames(c, false, out)
		}
		if s.CatchBody != nil {
			for _, c := range s.CatchBody.List {
				varNames(c, false, out)
			}
		}
		if s.Finally != nil {
			for _, c := range s.Finally.List {
				varNames(c, false, out)
			}
		}
	case *ExportNamedDecl:
		if s.Decl != nil {
			varNames(s.Decl, top, out)
		}
	}
}

// FirstDuplicate returns the second occurrence of the first name that
// appears more than once.
func FirstDuplicate(refs []NameRef) (NameRef, bool) {
	seen := make(map[Symbol]struct{}, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.Sym]; ok {
			return r, true
		}
		seen[r.Sym] = struct{}{}
	}
	return NameRef{}, false
}

// FirstCollision returns the first ref in b whose name also appears in a.
func FirstCollision(a, b []NameRef) (NameRef, bool) {
	set := make(map[Symbol]struct{}, len(a))
	for _, r := range a {
		set[r.Sym] = struct{}{}
	}
	for _, r := range b {
		if _, ok := set[r.Sym]; ok {
			return r, true
		}
	}
	return NameRef{}, false
}

// ContainsName reports whether any ref carries the given symbol.
func ContainsName(refs []NameRef, sym Symbol) bool {
	for _, r := range refs {
		if r.Sym == sym {
			return true
		}
	}
	return false
}

// findNode walks the tree looking for the first node pred accepts. Nested
// functions are not entered, except that arrow functions are traversed
// when descendArrows is set: arrows are transparent to super, this, and
// the enclosing function's special forms.
func findNode(root Node, descendArrows bool, pred func(Node) (Span, bool)) (Span, bool) {
	var span Span
	found := false
	Inspect(root, func(n Node) bool {
		if found {
			return false
		}
		if fl, ok := n.(*FunctionLit); ok && n != root {
			if !descendArrows || fl.Role != RoleArrow {
				return false
			}
		}
		if s, ok := pred(n); ok {
			span, found = s, true
			return false
		}
		return true
	})
	return span, found
}

// FindYieldExpr returns the span of the first yield expression in the
// fragment, not entering nested functions.
func FindYieldExpr(root Node) (Span, bool) {
	return findNode(root, false, func(n Node) (Span, bool) {
		if y, ok := n.(*YieldExpr); ok {
			return y.Span, true
		}
		return Span{}, false
	})
}

// FindAwaitExpr returns the span of the first await expression in the
// fragment, not entering nested functions.
func FindAwaitExpr(root Node) (Span, bool) {
	return findNode(root, false, func(n Node) (Span, bool) {
		if a, ok := n.(*AwaitExpr); ok {
			return a.Span, true
		}
		return Span{}, false
	})
}

// FindSuperProperty returns the span of the first super.x or super[x] in
// the fragment. Arrow functions are entered, other functions are not,
// matching how super binds to the nearest non-arrow environment.
func FindSuperProperty(root Node) (Span, bool) {
	return findNode(root, true, func(n Node) (Span, bool) {
		if m, ok := n.(*MemberExpr); ok {
			if _, ok := m.Object.(*SuperExpr); ok {
				return m.Span, true
			}
		}
		return Span{}, false
	})
}

// FindSuperCall returns the span of the first super(...) in the fragment,
// with the same arrow transparency as FindSuperProperty.
func FindSuperCall(root Node) (Span, bool) {
	return findNode(root, true, func(n Node) (Span, bool) {
		if c, ok := n.(*CallExpr); ok {
			if _, ok := c.Callee.(*SuperExpr); ok {
				return c.Span, true
			}
		}
		return Span{}, false
	})
}

// FindCoverInitializedName returns the span of the first shorthand
// property with an initializer that was never reinterpreted as a pattern.
// Nested functions are skipped; their own validation covers them.
func FindCoverInitializedName(root Node) (Span, bool) {
	return findNode(root, false, func(n Node) (Span, bool) {
		if p, ok := n.(*PropertyDef); ok && p.CoverInit != nil {
			return p.Span, true
		}
		return Span{}, false
	})
}

// LabelErrorKind classifies the ways break, continue, and labels can be
// malformed.
type LabelErrorKind int

const (
	LabelUndefined LabelErrorKind = iota
	LabelDuplicate
	LabelNotIteration
	BreakOutside
	ContinueOutside
)

// LabelError describes one label violation; the parser translates it into
// a diagnostic.
type LabelError struct {
	Kind  LabelErrorKind
	Label Symbol
	Span  Span
}

// CheckLabels validates break and continue targets and label uniqueness
// over a function body or program. Nested function bodies are not entered;
// each function checks its own.
func CheckLabels(stmts []Stmt) *LabelError {
	c := &labelChecker{labels: make(map[Symbol]bool)}
	return c.stmts(stmts)
}

type labelChecker struct {
	labels     map[Symbol]bool // true when the label names an iteration statement
	iterDepth  int
	switchDeep int
}

func (c *labelChecker) stmts(list []Stmt) *LabelError {
	for _, s := range list {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *labelChecker) stmt(s Stmt) *LabelError {
	switch s := s.(type) {
	case *LabeledStmt:
		if _, dup := c.labels[s.Label]; dup {
			return &LabelError{Kind: LabelDuplicate, Label: s.Label, Span: s.Span}
		}
		c.labels[s.Label] = labelsIteration(s.Body)
		err := c.stmt(s.Body)
		delete(c.labels, s.Label)
		return err
	case *BlockStmt:
		return c.stmts(s.List)
	case *IfStmt:
		if err := c.stmt(s.Cons); err != nil {
			return err
		}
		if s.Alt != nil {
			return c.stmt(s.Alt)
		}
	case *DoWhileStmt:
		return c.loopBody(s.Body)
	case *WhileStmt:
		return c.loopBody(s.Body)
	case *ForStmt:
		return c.loopBody(s.Body)
	case *ForInStmt:
		return c.loopBody(s.Body)
	case *ForOfStmt:
		return c.loopBody(s.Body)
	case *WithStmt:
		return c.stmt(s.Body)
	case *SwitchStmt:
		c.switchDeep++
		for _, cl := range s.Cases {
			if err := c.stmts(cl.Body); err != nil {
				c.switchDeep--
				return err
			}
		}
		c.switchDeep--
	case *TryStmt:
		if err := c.stmts(s.Block.List); err != nil {
			return err
		}
		if s.CatchBody != nil {
			if err := c.stmts(s.CatchBody.List); err != nil {
				return err
			}
		}
		if s.Finally != nil {
			return c.stmts(s.Finally.List)
		}
	case *BreakStmt:
		if s.Label == interner.SymNone {
			if c.iterDepth == 0 && c.switchDeep == 0 {
				return &LabelError{Kind: BreakOutside, Span: s.Span}
			}
		} else if _, ok := c.labels[s.Label]; !ok {
			return &LabelError{Kind: LabelUndefined, Label: s.Label, Span: s.Span}
		}
	case *ContinueStmt:
		if s.Label == interner.SymNone {
			if c.iterDepth == 0 {
				return &LabelError{Kind: ContinueOutside, Span: s.Span}
			}
		} else if isIter, ok := c.labels[s.Label]; !ok {
			return &LabelError{Kind: LabelUndefined, Label: s.Label, Span: s.Span}
		} else if !isIter {
			return &LabelError{Kind: LabelNotIteration, Label: s.Label, Span: s.Span}
		}
	case *ExportNamedDecl:
		if s.Decl != nil {
			return c.stmt(s.Decl)
		}
	case *ExportDefaultDecl:
		return c.stmt(s.Decl)
	}
	return nil
}

func (c *labelChecker) loopBody(body Stmt) *LabelError {
	c.iterDepth++
	err := c.stmt(body)
	c.iterDepth--
	return err
}

// labelsIteration reports whether the labelled item is (after peeling
// further labels) an iteration statement, which is what a labelled
// continue requires.
func labelsIteration(s Stmt) bool {
	for {
		switch t := s.(type) {
		case *LabeledStmt:
			s = t.Body
		case *DoWhileStmt, *WhileStmt, *ForStmt, *ForInStmt, *ForOfStmt:
			return true
		default:
			return false
		}
	}
}
