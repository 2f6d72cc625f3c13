// Package interner maps identifier text to small dense integer handles.
//
// The parser and the static-semantics checks compare names by handle, which
// makes equality O(1) and keeps the AST free of string data. One Interner is
// typically shared by many parses; it is safe for concurrent use and is
// append-only: a symbol, once handed out, never changes meaning.
package interner

import "sync"

// Symbol is a handle for interned text. Two symbols are equal exactly when
// the underlying text is equal. The zero value means "no symbol" and
// resolves to the empty string.
type Symbol uint32

// Well-known symbols. Every Interner pre-interns these in a fixed order, so
// code can compare against the constants without holding the interner.
const (
	SymNone Symbol = iota
	SymEval
	SymArguments
	SymYield
	SymAwait
	SymAsync
	SymLet
	SymStatic
	SymGet
	SymSet
	SymOf
	SymAs
	SymFrom
	SymDefault
	SymUseStrict
	SymProto
	SymImplements
	SymInterface
	SymPackage
	SymPrivate
	SymProtected
	SymPublic
)

var wellKnown = []string{
	"eval",
	"arguments",
	"yield",
	"await",
	"async",
	"let",
	"static",
	"get",
	"set",
	"of",
	"as",
	"from",
	"default",
	"use strict",
	"__proto__",
	"implements",
	"interface",
	"package",
	"private",
	"protected",
	"public",
}

// Interner is a thread-safe, append-only string table.
type Interner struct {
	mu     sync.RWMutex
	lookup map[string]Symbol
	texts  []string
}

// New returns an Interner with the well-known symbols already present.
func New() *Interner {
	in := &Interner{
		lookup: make(map[string]Symbol, len(wellKnown)*2),
		texts:  make([]string, 0, len(wellKnown)*2),
	}
	for _, text := range wellKnown {
		in.texts = append(in.texts, text)
		in.lookup[text] = Symbol(len(in.texts))
	}
	return in
}

// Intern returns the symbol for text, allocating one on first sight.
func (in *Interner) Intern(text string) Symbol {
	in.mu.RLock()
	sym, ok := in.lookup[text]
	in.mu.RUnlock()
	if ok {
		return sym
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if sym, ok := in.lookup[text]; ok {
		return sym
	}
	in.texts = append(in.texts, text)
	sym = Symbol(len(in.texts))
	in.lookup[text] = sym
	return sym
}

// Resolve returns the text for sym. SymNone and unknown symbols resolve to
// the empty string.
func (in *Interner) Resolve(sym Symbol) string {
	if sym == SymNone {
		return ""
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	idx := int(sym) - 1
	if idx >= len(in.texts) {
		return ""
	}
	return in.texts[idx]
}

// Len reports how many symbols have been interned, including the well-known
// set.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.texts)
}
