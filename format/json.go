package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/kei/js"
)

type JSONEncoder struct {
	w       io.Writer
	summary *js.FileSummary
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(summary *js.FileSummary) error {
	e.summary = summary
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildSummaryData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonSummary struct {
	Path       string         `json:"path,omitempty"`
	SourceType string         `json:"sourceType"`
	Strict     bool           `json:"strict"`
	Imports    []jsonImport   `json:"imports,omitempty"`
	Exports    []jsonExport   `json:"exports,omitempty"`
	Functions  []jsonFunction `json:"functions,omitempty"`
}

type jsonImport struct {
	From      string      `json:"from"`
	Default   string      `json:"default,omitempty"`
	Namespace string      `json:"namespace,omitempty"`
	Named     []jsonNamed `json:"named,omitempty"`
	Span      *jsonSpan   `json:"span,omitempty"`
}

type jsonNamed struct {
	Imported string `json:"imported"`
	Local    string `json:"local,omitempty"`
}

type jsonExport struct {
	Exported string    `json:"exported"`
	Local    string    `json:"local,omitempty"`
	From     string    `json:"from,omitempty"`
	Default  bool      `json:"default,omitempty"`
	Span     *jsonSpan `json:"span,omitempty"`
}

type jsonFunction struct {
	Name            string    `json:"name,omitempty"`
	Kind            string    `json:"kind"`
	Modifiers       []string  `json:"modifiers,omitempty"`
	ParamCount      int       `json:"paramCount"`
	SimpleParams    bool      `json:"simpleParams"`
	DuplicateParams bool      `json:"duplicateParams,omitempty"`
	RestParam       bool      `json:"restParam,omitempty"`
	Doc             string    `json:"doc,omitempty"`
	Span            *jsonSpan `json:"span,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *JSONEncoder) buildSummaryData() jsonSummary {
	s := e.summary
	return jsonSummary{
		Path:       s.Path,
		SourceType: string(s.SourceType),
		Strict:     s.Strict,
		Imports:    e.buildImports(),
		Exports:    e.buildExports(),
		Functions:  e.buildFunctions(),
	}
}

func (e *JSONEncoder) buildImports() []jsonImport {
	imports := e.summary.Imports
	result := make([]jsonImport, len(imports))
	for i, imp := range imports {
		result[i] = jsonImport{
			From:      imp.From,
			Default:   imp.Default,
			Namespace: imp.Namespace,
			Named:     buildNamed(imp.Named),
			Span:      spanData(imp.Span),
		}
	}
	return result
}

func buildNamed(names []js.ImportedName) []jsonNamed {
	result := make([]jsonNamed, len(names))
	for i, n := range names {
		result[i] = jsonNamed{Imported: n.Imported, Local: n.Local}
	}
	return result
}

func (e *JSONEncoder) buildExports() []jsonExport {
	exports := e.summary.Exports
	result := make([]jsonExport, len(exports))
	for i, exp := range exports {
		result[i] = jsonExport{
			Exported: exp.Exported,
			Local:    exp.Local,
			From:     exp.From,
			Default:  exp.IsDefault,
			Span:     spanData(exp.Span),
		}
	}
	return result
}

func (e *JSONEncoder) buildFunctions() []jsonFunction {
	functions := e.summary.Functions
	result := make([]jsonFunction, len(functions))
	for i, fn := range functions {
		result[i] = jsonFunction{
			Name:            fn.Name,
			Kind:            string(fn.Kind),
			Modifiers:       functionModifiers(fn),
			ParamCount:      fn.ParamCount,
			SimpleParams:    fn.SimpleParams,
			DuplicateParams: fn.DuplicateParams,
			RestParam:       fn.HasRestParam,
			Doc:             fn.Doc,
			Span:            spanData(fn.Span),
		}
	}
	return result
}

func functionModifiers(fn js.FunctionSummary) []string {
	var mods []string
	if fn.IsAsync {
		mods = append(mods, "async")
	}
	if fn.IsGenerator {
		mods = append(mods, "generator")
	}
	if fn.IsStrict {
		mods = append(mods, "strict")
	}
	return mods
}

func spanData(span js.Span) *jsonSpan {
	if span.Start.Line == 0 && span.End.Line == 0 {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column},
		End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
	}
}
