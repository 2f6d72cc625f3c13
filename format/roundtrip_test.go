package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/parser"
)

// Printing a program and parsing the output must reproduce a tree of the
// same shape. The comparison counts nodes per kind rather than comparing
// spans, since canonical layout moves everything.
func TestPrintRoundTrip(t *testing.T) {
	scriptSink := strings.Join([]string{
		`var a = 1, b = [1, , 2];`,
		`let { x, y: [z = 3], ...rest } = obj;`,
		`const f = (u, ...vs) => u + vs.length;`,
		`function outer(p = 1) {`,
		`    function inner() {`,
		`        return p;`,
		`    }`,
		`    return inner();`,
		`}`,
		`async function fetchIt(url) {`,
		`    const res = await get(url);`,
		`    return res?.body?.[0];`,
		`}`,
		`function* gen(n) {`,
		`    for (let i = 0; i < n; i++) {`,
		`        yield* sub(i);`,
		`    }`,
		`}`,
		`outer: for (const k in obj) {`,
		`    if (k === "stop") {`,
		`        break outer;`,
		`    } else {`,
		`        continue;`,
		`    }`,
		`}`,
		`for (const v of list) {`,
		`    switch (v) {`,
		`    case 1:`,
		`        touch(v);`,
		`        break;`,
		`    default:`,
		`        log(v);`,
		`    }`,
		`}`,
		`try {`,
		`    risky();`,
		`} catch (err) {`,
		`    handle(err);`,
		`} finally {`,
		`    done();`,
		`}`,
		`do {`,
		`    tick();`,
		`} while (more());`,
		`while (cond()) {`,
		`    step();`,
		`}`,
		`x = test ? { a: 1 } : [2];`,
		`y = new ns.Thing(1, 2);`,
		`z = a ?? (b || c);`,
		`w = (-n) ** 2 ** k;`,
		`p = /ab+c/gi;`,
		`maybe?.(1);`,
		`obj2 = { m() {}, get g() {}, set s(v) {}, async am() {}, *gm() {}, async *agm() {}, [key]: 1, "str": 2, 42: 3, short, ...spread };`,
		`(function() {`,
		`    with (scope) {`,
		`        leak = 1;`,
		`    }`,
		`}());`,
		`;`,
		`debugger;`,
	}, "\n")

	moduleSink := strings.Join([]string{
		`import "side-effect";`,
		`import def from "a";`,
		`import * as ns from "b";`,
		`import d2, { one, two as three } from "c";`,
		`export { one };`,
		`export { two as four } from "c";`,
		`export * from "d";`,
		`export * as all from "e";`,
		`export const exported = def + ns.val;`,
		`export function run() {`,
		`    return three(d2);`,
		`}`,
		`export default function main() {`,
		`    return run();`,
		`}`,
	}, "\n")

	tests := []struct {
		name       string
		src        string
		sourceType js.SourceType
	}{
		{name: "script kitchen sink", src: scriptSink, sourceType: js.SourceTypeScript},
		{name: "module kitchen sink", src: moduleSink, sourceType: js.SourceTypeModule},
		{name: "strict function", src: "\"use strict\";\nfunction f(a, b) {\n    return a + b;\n}\nlet v = f(1, 2);", sourceType: js.SourceTypeScript},
		{name: "templates", src: "tag`q${1 + 2}r`;\nx = `a${b}c${d}e`;\ny = `plain`;", sourceType: js.SourceTypeScript},
		{name: "bare named import canonicalizes away", src: "import {} from \"m\";", sourceType: js.SourceTypeModule},
		{name: "new without arguments", src: "x = new Foo;", sourceType: js.SourceTypeScript},
		{name: "statement level parens", src: "({ a: 1 });\n({ b } = c);\n(function() {})();", sourceType: js.SourceTypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printed, err := PrintSource([]byte(tt.src), tt.sourceType)
			if err != nil {
				t.Fatalf("print: %v", err)
			}
			reprinted, err := PrintSource(printed, tt.sourceType)
			if err != nil {
				t.Fatalf("reparse of printed output failed: %v\noutput:\n%s", err, printed)
			}
			if string(printed) != string(reprinted) {
				t.Errorf("printing is not a fixed point\nfirst:\n%s\nsecond:\n%s", printed, reprinted)
			}

			orig := parseProgram(t, []byte(tt.src), tt.sourceType)
			round := parseProgram(t, printed, tt.sourceType)
			compareNodeCounts(t, countNodeKinds(orig), countNodeKinds(round))
		})
	}
}

func parseProgram(t *testing.T, src []byte, sourceType js.SourceType) ast.Program {
	t.Helper()
	p := parser.New(src)
	var prog ast.Program
	var err error
	if sourceType == js.SourceTypeModule {
		prog, err = p.ParseModule()
	} else {
		prog, err = p.ParseScript()
	}
	if err != nil {
		t.Fatalf("parse: %v\nsource:\n%s", err, src)
	}
	return prog
}

func countNodeKinds(prog ast.Program) map[string]int {
	counts := make(map[string]int)
	ast.Inspect(prog, func(n ast.Node) bool {
		counts[fmt.Sprintf("%T", n)]++
		return true
	})
	return counts
}

func compareNodeCounts(t *testing.T, want, got map[string]int) {
	t.Helper()
	for kind, count := range want {
		if got[kind] != count {
			t.Errorf("node kind %s: got %d, want %d", kind, got[kind], count)
		}
	}
	for kind := range got {
		if _, ok := want[kind]; !ok {
			t.Errorf("unexpected node kind %s (%d occurrences)", kind, got[kind])
		}
	}
}
