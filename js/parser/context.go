package parser

// fnKind identifies the kind of function-like production currently being
// parsed, for error selection in validators that depend on the syntactic
// role rather than on a grammar flag.
type fnKind int

const (
	fnKindNone fnKind = iota
	fnKindNormal
	fnKindGenerator
	fnKindMethod
	fnKindGetter
	fnKindSetter
	fnKindArrow
)

// context carries the grammar parameters threaded through the productions:
// whether yield and await are operators or identifiers, whether the in
// operator may appear in a relational position, and whether return is
// legal. Methods return modified copies; a callee can never mutate its
// caller's view.
type context struct {
	allowYield  bool
	allowAwait  bool
	allowIn     bool
	allowReturn bool
	kind        fnKind
}

// scriptContext is the top-level context of classic scripts.
func scriptContext() context {
	return context{allowIn: true}
}

// moduleContext is the top-level context of modules: await is reserved at
// the top level even outside async functions.
func moduleContext() context {
	return context{allowIn: true, allowAwait: true}
}

// functionContext is the context for the parameters and body of a function
// of the given kind. Parameters and body see the function's own yield and
// await flags; only the name position keeps the enclosing context.
func functionContext(kind fnKind, generator, async bool) context {
	return context{
		allowYield:  generator,
		allowAwait:  async,
		allowIn:     true,
		allowReturn: true,
		kind:        kind,
	}
}

func (c context) withIn(v bool) context {
	c.allowIn = v
	return c
}

func (c context) withYield(v bool) context {
	c.allowYield = v
	return c
}

func (c context) withAwait(v bool) context {
	c.allowAwait = v
	return c
}

func (c context) withReturn(v bool) context {
	c.allowReturn = v
	return c
}
