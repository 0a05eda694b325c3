package main

import (
	"fmt"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

// tableData is one generated constant block with its name map.
type tableData struct {
	Comment string
	Type    string
	MapName string
	Entries []entryData
}

type entryData struct {
	Ident   string
	Name    string
	Literal string
}

type fileData struct {
	Source  string
	Package string
	Tables  []tableData
}

const fileTmpl = `{{define "file" -}}
// Code generated by mcdiag-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}
{{range .Tables}}
{{template "table" .}}
{{- end}}
{{- end}}`

const tableTmpl = `{{define "table" -}}
// {{.Comment}}
const (
{{- range .Entries}}
	{{.Ident}} {{$.Type}} = {{.Literal}}
{{- end}}
)

var {{.MapName}} = map[{{.Type}}]string{
{{- range .Entries}}
	{{.Ident}}: {{quote .Name}},
{{- end}}
}
{{end}}`

var templates = template.Must(template.New("").Funcs(funcMap).Parse(fileTmpl + tableTmpl))

func newTable(comment, typ, prefix, mapName string, symbols []RawSymbol, digits int) tableData {
	t := tableData{
		Comment: comment,
		Type:    typ,
		MapName: mapName,
		Entries: make([]entryData, 0, len(symbols)),
	}
	for _, s := range symbols {
		t.Entries = append(t.Entries, entryData{
			Ident:   prefix + s.Go,
			Name:    s.Name,
			Literal: fmt.Sprintf("0x%0*x", digits, s.Value),
		})
	}
	return t
}

// Generate renders the Go source for spec. The result is not gofmt-aligned;
// writeFormatted takes care of that.
func Generate(spec *RawSpec, source, pkg string) (string, error) {
	data := fileData{
		Source:  source,
		Package: pkg,
		Tables: []tableData{
			newTable("Magic bytes identifying the frame direction.", "Magic", "Magic", "magicNames", spec.Magics, 2),
			newTable("Command opcodes. Quiet variants carry a Q suffix.", "Opcode", "Op", "opcodeNames", expandQuiet(spec.Opcodes), 2),
			newTable("Response status codes.", "Status", "Status", "statusNames", spec.Statuses, 4),
		},
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "file", data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return b.String(), nil
}
