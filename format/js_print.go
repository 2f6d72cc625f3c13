package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/interner"
	"github.com/dhamidi/kei/js/parser"
)

// Printer writes a parsed program back out as source. The output is
// canonical rather than faithful: one statement per line, four-space
// indents, comments dropped, parentheses only where the grammar needs
// them. Printing a parsed program and reparsing the result yields a
// tree of the same shape.
type Printer struct {
	w           io.Writer
	in          *interner.Interner
	indent      int
	indentStr   string
	atLineStart bool
}

func NewPrinter(w io.Writer, in *interner.Interner) *Printer {
	return &Printer{
		w:           w,
		in:          in,
		indentStr:   "    ",
		atLineStart: true,
	}
}

func (p *Printer) Print(prog ast.Program) error {
	switch prog := prog.(type) {
	case *ast.Script:
		p.printStmts(prog.Body)
	case *ast.Module:
		p.printStmts(prog.Body)
	}
	return nil
}

func (p *Printer) printStmts(list []ast.Stmt) {
	for _, s := range list {
		p.printStmt(s)
	}
}

func (p *Printer) write(s string) {
	p.w.Write([]byte(s))
}

func (p *Printer) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *Printer) newline() {
	p.write("\n")
	p.atLineStart = true
}

func (p *Printer) name(sym ast.Symbol) string {
	return p.in.Resolve(sym)
}

// PrintSource parses source under the given goal and prints it back in
// canonical form.
func PrintSource(source []byte, sourceType js.SourceType) ([]byte, error) {
	in := interner.New()
	p := parser.New(source, parser.WithInterner(in))

	var prog ast.Program
	var err error
	if sourceType == js.SourceTypeModule {
		prog, err = p.ParseModule()
	} else {
		prog, err = p.ParseScript()
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	pr := NewPrinter(&buf, in)
	if err := pr.Print(prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// quoteString renders s as a double-quoted string literal.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
