package format

import (
	"strings"

	"github.com/dhamidi/kei/js/ast"
)

// Operator precedence, lowest first. Binding a child at level n means the
// child is parenthesized unless its own level is at least n.
const (
	precLowest = iota
	precComma
	precAssign
	precCond
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precCall
	precPrimary
)

var binaryPrec = map[string]int{
	"??":         precNullish,
	"||":         precOr,
	"&&":         precAnd,
	"|":          precBitOr,
	"^":          precBitXor,
	"&":          precBitAnd,
	"==":         precEquality,
	"!=":         precEquality,
	"===":        precEquality,
	"!==":        precEquality,
	"<":          precRelational,
	">":          precRelational,
	"<=":         precRelational,
	">=":         precRelational,
	"instanceof": precRelational,
	"in":         precRelational,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdditive,
	"-":          precAdditive,
	"*":          precMultiplicative,
	"/":          precMultiplicative,
	"%":          precMultiplicative,
	"**":         precExponent,
}

func exprPrec(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.SequenceExpr:
		return precComma
	case *ast.AssignExpr, *ast.YieldExpr, *ast.SpreadElement:
		return precAssign
	case *ast.FunctionLit:
		if e.Role == ast.RoleArrow {
			return precAssign
		}
		return precPrimary
	case *ast.CondExpr:
		return precCond
	case *ast.BinaryExpr:
		return binaryPrec[e.Op]
	case *ast.UnaryExpr, *ast.AwaitExpr:
		return precUnary
	case *ast.UpdateExpr:
		if e.Prefix {
			return precUnary
		}
		return precPostfix
	case *ast.CallExpr, *ast.MemberExpr, *ast.NewExpr, *ast.TaggedTemplate:
		return precCall
	}
	return precPrimary
}

// printExpr prints e, parenthesized when its precedence falls below min.
func (p *Printer) printExpr(e ast.Expr, min int) {
	if exprPrec(e) < min {
		p.write("(")
		p.printExprInner(e)
		p.write(")")
		return
	}
	p.printExprInner(e)
}

func (p *Printer) printExprInner(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		p.write(p.name(n.Name))
	case *ast.NullLit:
		p.write("null")
	case *ast.BoolLit:
		if n.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.NumberLit:
		p.write(n.Raw)
	case *ast.StringLit:
		p.write(n.Raw)
	case *ast.RegExpLit:
		p.write("/")
		p.write(p.name(n.Pattern))
		p.write("/")
		p.write(p.name(n.Flags))
	case *ast.ThisExpr:
		p.write("this")
	case *ast.SuperExpr:
		p.write("super")
	case *ast.TemplateLit:
		p.printTemplate(n)
	case *ast.TaggedTemplate:
		p.printExpr(n.Tag, precCall)
		p.printTemplate(n.Quasi)
	case *ast.ArrayLit:
		p.printArrayLit(n)
	case *ast.ObjectLit:
		p.printObjectLit(n)
	case *ast.SpreadElement:
		p.write("...")
		p.printExpr(n.Arg, precAssign)
	case *ast.MemberExpr:
		p.printMember(n)
	case *ast.CallExpr:
		p.printCall(n)
	case *ast.NewExpr:
		p.printNew(n)
	case *ast.UnaryExpr:
		p.printUnary(n)
	case *ast.UpdateExpr:
		p.printUpdate(n)
	case *ast.BinaryExpr:
		p.printBinary(n)
	case *ast.AssignExpr:
		p.printAssign(n)
	case *ast.CondExpr:
		p.printExpr(n.Test, precNullish)
		p.write(" ? ")
		p.printExpr(n.Cons, precAssign)
		p.write(" : ")
		p.printExpr(n.Alt, precAssign)
	case *ast.YieldExpr:
		p.write("yield")
		if n.Delegate {
			p.write("*")
		}
		if n.Arg != nil {
			p.write(" ")
			p.printExpr(n.Arg, precAssign)
		}
	case *ast.AwaitExpr:
		p.write("await ")
		p.printExpr(n.Arg, precUnary)
	case *ast.SequenceExpr:
		for i, x := range n.Exprs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(x, precAssign)
		}
	case *ast.FunctionLit:
		p.printFunction(n)
	}
}

func (p *Printer) printTemplate(n *ast.TemplateLit) {
	p.write("`")
	for i, q := range n.Quasis {
		p.write(q.Raw)
		if i < len(n.Exprs) {
			p.write("${")
			p.printExpr(n.Exprs[i], precLowest)
			p.write("}")
		}
	}
	p.write("`")
}

func (p *Printer) printArrayLit(n *ast.ArrayLit) {
	p.write("[")
	for i, el := range n.Elems {
		if i > 0 {
			p.write(", ")
		}
		if el != nil {
			p.printExpr(el, precAssign)
		}
	}
	// a trailing comma after an elision keeps the hole in the reparse
	if len(n.Elems) > 0 && n.Elems[len(n.Elems)-1] == nil {
		p.write(",")
	}
	p.write("]")
}

func (p *Printer) printObjectLit(n *ast.ObjectLit) {
	if len(n.Members) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, m := range n.Members {
		if i > 0 {
			p.write(", ")
		}
		p.printObjectMember(m)
	}
	p.write(" }")
}

func (p *Printer) printObjectMember(m ast.ObjectMember) {
	switch n := m.(type) {
	case *ast.PropertyDef:
		if n.Shorthand {
			p.printExpr(n.Value, precPrimary)
			if n.CoverInit != nil {
				p.write(" = ")
				p.printExpr(n.CoverInit, precAssign)
			}
			return
		}
		p.printKey(n.Key, n.Computed)
		p.write(": ")
		p.printExpr(n.Value, precAssign)
	case *ast.MethodDef:
		p.printMethod(n)
	case *ast.SpreadElement:
		p.write("...")
		p.printExpr(n.Arg, precAssign)
	}
}

func (p *Printer) printMethod(n *ast.MethodDef) {
	fn := n.Fn
	switch fn.Role {
	case ast.RoleGetter:
		p.write("get ")
	case ast.RoleSetter:
		p.write("set ")
	default:
		if fn.Async {
			p.write("async ")
		}
		if fn.Generator {
			p.write("*")
		}
	}
	p.printKey(n.Key, n.Computed)
	p.printParams(fn.Params)
	p.write(" ")
	p.printBlock(fn.Body)
}

func (p *Printer) printKey(key ast.Expr, computed bool) {
	if computed {
		p.write("[")
		p.printExpr(key, precAssign)
		p.write("]")
		return
	}
	switch k := key.(type) {
	case *ast.Ident:
		p.write(p.name(k.Name))
	case *ast.StringLit:
		p.write(k.Raw)
	case *ast.NumberLit:
		p.write(k.Raw)
	}
}

func (p *Printer) printMember(n *ast.MemberExpr) {
	// 1.x would lex the dot into the number
	if num, ok := n.Object.(*ast.NumberLit); ok && !n.Computed {
		p.write("(")
		p.write(num.Raw)
		p.write(")")
	} else {
		p.printExpr(n.Object, precCall)
	}
	switch {
	case n.Computed && n.Optional:
		p.write("?.[")
	case n.Computed:
		p.write("[")
	case n.Optional:
		p.write("?.")
	default:
		p.write(".")
	}
	if n.Computed {
		p.printExpr(n.Prop, precComma)
		p.write("]")
	} else {
		p.printExpr(n.Prop, precPrimary)
	}
}

func (p *Printer) printCall(n *ast.CallExpr) {
	p.printExpr(n.Callee, precCall)
	if n.Optional {
		p.write("?.")
	}
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, precAssign)
	}
	p.write(")")
}

func (p *Printer) printNew(n *ast.NewExpr) {
	p.write("new ")
	if newCalleeNeedsParens(n.Callee) {
		p.write("(")
		p.printExprInner(n.Callee)
		p.write(")")
	} else {
		p.printExpr(n.Callee, precCall)
	}
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, precAssign)
	}
	p.write(")")
}

// newCalleeNeedsParens reports whether the callee contains a call or
// optional chain on its member spine. Printed bare, the argument list of
// that inner call would be claimed by the `new` itself.
func newCalleeNeedsParens(callee ast.Expr) bool {
	for {
		switch n := callee.(type) {
		case *ast.CallExpr:
			return true
		case *ast.TaggedTemplate:
			return true
		case *ast.MemberExpr:
			if n.Optional {
				return true
			}
			callee = n.Object
		default:
			return false
		}
	}
}

func (p *Printer) printUnary(n *ast.UnaryExpr) {
	p.write(n.Op)
	switch n.Op {
	case "delete", "void", "typeof":
		p.write(" ")
	default:
		if signClash(n.Op, n.Operand) {
			p.write(" ")
		}
	}
	p.printExpr(n.Operand, precUnary)
}

// signClash reports when -(-x) or +(+x) would fuse into -- or ++.
func signClash(op string, operand ast.Expr) bool {
	if op != "-" && op != "+" {
		return false
	}
	switch o := operand.(type) {
	case *ast.UnaryExpr:
		return o.Op == op
	case *ast.UpdateExpr:
		return o.Prefix && strings.HasPrefix(o.Op, op)
	}
	return false
}

func (p *Printer) printUpdate(n *ast.UpdateExpr) {
	if n.Prefix {
		p.write(n.Op)
		p.printExpr(n.Operand, precUnary)
		return
	}
	p.printExpr(n.Operand, precPostfix)
	p.write(n.Op)
}

func (p *Printer) printBinary(n *ast.BinaryExpr) {
	prec := binaryPrec[n.Op]
	leftMin, rightMin := prec, prec+1
	if n.Op == "**" {
		// ** is right-associative, and a unary expression cannot stand
		// unparenthesized on its left
		leftMin, rightMin = prec+1, prec
	}

	if mixesCoalesce(n.Op, n.Left) || (n.Op == "**" && exponentLeftNeedsParens(n.Left)) {
		p.write("(")
		p.printExprInner(n.Left)
		p.write(")")
	} else {
		p.printExpr(n.Left, leftMin)
	}
	p.write(" ")
	p.write(n.Op)
	p.write(" ")
	if mixesCoalesce(n.Op, n.Right) {
		p.write("(")
		p.printExprInner(n.Right)
		p.write(")")
	} else {
		p.printExpr(n.Right, rightMin)
	}
}

// mixesCoalesce reports an operand pairing that the grammar refuses
// without parentheses: ?? never associates directly with && or ||.
func mixesCoalesce(op string, operand ast.Expr) bool {
	b, ok := operand.(*ast.BinaryExpr)
	if !ok {
		return false
	}
	if op == "??" {
		return b.Op == "&&" || b.Op == "||"
	}
	if op == "&&" || op == "||" {
		return b.Op == "??"
	}
	return false
}

func exponentLeftNeedsParens(left ast.Expr) bool {
	switch left.(type) {
	case *ast.UnaryExpr, *ast.AwaitExpr:
		return true
	}
	return false
}

func (p *Printer) printAssign(n *ast.AssignExpr) {
	switch t := n.Target.(type) {
	case *ast.ObjectPattern:
		p.printObjectPattern(t)
	case *ast.ArrayPattern:
		p.printArrayPattern(t)
	default:
		p.printExpr(n.Target.(ast.Expr), precCall)
	}
	p.write(" ")
	p.write(n.Op)
	p.write(" ")
	p.printExpr(n.Value, precAssign)
}
