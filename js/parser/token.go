package parser

import (
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
)

// Position and Span are shared with the ast package; the aliases keep
// token handling free of qualified names.
type Position = ast.Position

type Span = ast.Span

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenRegExp
	TokenTemplateNoSub
	TokenTemplateHead
	TokenTemplateMiddle
	TokenTemplateTail
	TokenTrue
	TokenFalse
	TokenNull

	// Reserved words
	TokenAwait
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenEnum
	TokenExport
	TokenExtends
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceof
	TokenNew
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith
	TokenYield

	// Punctuators
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenArrow
	TokenQuestion
	TokenQuestionDot
	TokenColon

	TokenAssign
	TokenEQ
	TokenNE
	TokenStrictEQ
	TokenStrictNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNullish
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenStarStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenStarStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAndAndAssign
	TokenOrOrAssign
	TokenNullishAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenComment:        "Comment",
	TokenLineComment:    "LineComment",
	TokenIdent:          "Identifier",
	TokenNumber:         "Number",
	TokenString:         "String",
	TokenRegExp:         "RegExp",
	TokenTemplateNoSub:  "Template",
	TokenTemplateHead:   "TemplateHead",
	TokenTemplateMiddle: "TemplateMiddle",
	TokenTemplateTail:   "TemplateTail",
	TokenTrue:           "true",
	TokenFalse:          "false",
	TokenNull:           "null",
	TokenAwait:          "await",
	TokenBreak:          "break",
	TokenCase:           "case",
	TokenCatch:          "catch",
	TokenClass:          "class",
	TokenConst:          "const",
	TokenContinue:       "continue",
	TokenDebugger:       "debugger",
	TokenDefault:        "default",
	TokenDelete:         "delete",
	TokenDo:             "do",
	TokenElse:           "else",
	TokenEnum:           "enum",
	TokenExport:         "export",
	TokenExtends:        "extends",
	TokenFinally:        "finally",
	TokenFor:            "for",
	TokenFunction:       "function",
	TokenIf:             "if",
	TokenImport:         "import",
	TokenIn:             "in",
	TokenInstanceof:     "instanceof",
	TokenNew:            "new",
	TokenReturn:         "return",
	TokenSuper:          "super",
	TokenSwitch:         "switch",
	TokenThis:           "this",
	TokenThrow:          "throw",
	TokenTry:            "try",
	TokenTypeof:         "typeof",
	TokenVar:            "var",
	TokenVoid:           "void",
	TokenWhile:          "while",
	TokenWith:           "with",
	TokenYield:          "yield",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenSemicolon:      ";",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenEllipsis:       "...",
	TokenArrow:          "=>",
	TokenQuestion:       "?",
	TokenQuestionDot:    "?.",
	TokenColon:          ":",
	TokenAssign:         "=",
	TokenEQ:             "==",
	TokenNE:             "!=",
	TokenStrictEQ:       "===",
	TokenStrictNE:       "!==",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenAnd:            "&&",
	TokenOr:             "||",
	TokenNullish:        "??",
	TokenNot:            "!",
	TokenBitAnd:         "&",
	TokenBitOr:          "|",
	TokenBitXor:         "^",
	TokenBitNot:         "~",
	TokenShl:            "<<",
	TokenShr:            ">>",
	TokenUShr:           ">>>",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenStarStar:       "**",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenIncrement:      "++",
	TokenDecrement:      "--",
	TokenPlusAssign:     "+=",
	TokenMinusAssign:    "-=",
	TokenStarAssign:     "*=",
	TokenStarStarAssign: "**=",
	TokenSlashAssign:    "/=",
	TokenPercentAssign:  "%=",
	TokenAndAssign:      "&=",
	TokenOrAssign:       "|=",
	TokenXorAssign:      "^=",
	TokenShlAssign:      "<<=",
	TokenShrAssign:      ">>=",
	TokenUShrAssign:     ">>>=",
	TokenAndAndAssign:   "&&=",
	TokenOrOrAssign:     "||=",
	TokenNullishAssign:  "??=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit. Span.Start.Offset and Span.End.Offset are the
// linear positions used by ordering checks that must ignore line breaks;
// NewlineBefore records whether a line terminator (or a block comment
// containing one) preceded the token, which the restricted productions and
// semicolon insertion must not ignore.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string          // cooked payload: identifier text, string value, number text, template cooked text
	Raw     string          // raw source: strings keep their quotes, template chunks are interior only
	Sym     interner.Symbol // interned payload for identifiers and string values
	Num     float64         // numeric value for TokenNumber

	NewlineBefore bool
	LegacyOctal   bool // string literal contains a legacy octal or \8/\9 escape
}

// Reserved words. Identifiers that are only contextually special (async,
// let, get, set, of, as, from, static) stay TokenIdent and are recognized by
// their interned symbol.
var keywords = map[string]TokenKind{
	"await":      TokenAwait,
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"yield":      TokenYield,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// IsIdentLike reports whether the token can serve as an identifier name in
// positions where reserved words are allowed (property names, labels after
// dots, import/export aliases).
func (t *Token) IsIdentLike() bool {
	switch t.Kind {
	case TokenIdent, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return t.Kind >= TokenAwait && t.Kind <= TokenYield
}
