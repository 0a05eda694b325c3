package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawSpec is the symbol table definition loaded from YAML.
type RawSpec struct {
	Magics   []RawSymbol `yaml:"magics"`
	Opcodes  []RawSymbol `yaml:"opcodes"`
	Statuses []RawSymbol `yaml:"statuses"`
}

// RawSymbol is one named protocol code.
type RawSymbol struct {
	Name  string `yaml:"name"`  // display name, e.g. "KEY_ENOENT"
	Go    string `yaml:"go"`    // identifier suffix, e.g. "KeyENoEnt"
	Value int    `yaml:"value"` // wire value
	Quiet *int   `yaml:"quiet"` // opcodes only: value of the quiet variant
}

// LoadSpec reads and validates a symbol table definition.
func LoadSpec(path string) (*RawSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes and validates a symbol table definition.
func ParseSpec(data []byte) (*RawSpec, error) {
	var spec RawSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	for i := range spec.Magics {
		fillGoName(&spec.Magics[i])
	}
	for i := range spec.Opcodes {
		fillGoName(&spec.Opcodes[i])
	}
	for i := range spec.Statuses {
		fillGoName(&spec.Statuses[i])
	}

	err := errors.Join(
		validateTable("magics", spec.Magics, 0xff, false),
		validateTable("opcodes", expandQuiet(spec.Opcodes), 0xff, true),
		validateTable("statuses", spec.Statuses, 0xffff, false),
	)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// fillGoName derives the identifier suffix from the display name when the
// YAML leaves it out: "NOT_MY_VBUCKET" becomes "NotMyVbucket".
func fillGoName(s *RawSymbol) {
	if s.Go != "" {
		return
	}
	s.Go = goTitleCase(s.Name)
}

// goTitleCase converts an underscore separated name to CamelCase.
func goTitleCase(name string) string {
	var b strings.Builder
	for part := range strings.SplitSeq(strings.ToLower(name), "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// expandQuiet returns the opcode list with every quiet variant inserted
// directly after its base command.
func expandQuiet(opcodes []RawSymbol) []RawSymbol {
	out := make([]RawSymbol, 0, len(opcodes)*2)
	for _, op := range opcodes {
		base := op
		base.Quiet = nil
		out = append(out, base)
		if op.Quiet != nil {
			out = append(out, RawSymbol{
				Name:  op.Name + "Q",
				Go:    op.Go + "Q",
				Value: *op.Quiet,
			})
		}
	}
	return out
}

func validateTable(table string, symbols []RawSymbol, maxValue int, allowQuiet bool) error {
	var errs []error
	names := make(map[string]bool, len(symbols))
	idents := make(map[string]bool, len(symbols))
	values := make(map[int]string, len(symbols))

	for _, s := range symbols {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("%s: entry with value 0x%x has no name", table, s.Value))
			continue
		case s.Value < 0 || s.Value > maxValue:
			errs = append(errs, fmt.Errorf("%s: %s value 0x%x out of range", table, s.Name, s.Value))
		case s.Quiet != nil && !allowQuiet:
			errs = append(errs, fmt.Errorf("%s: %s: quiet variants are only valid for opcodes", table, s.Name))
		}

		if names[s.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate name %s", table, s.Name))
		}
		names[s.Name] = true

		if idents[s.Go] {
			errs = append(errs, fmt.Errorf("%s: duplicate Go name %s", table, s.Go))
		}
		idents[s.Go] = true

		if prev, ok := values[s.Value]; ok {
			errs = append(errs, fmt.Errorf("%s: %s and %s share value 0x%x", table, prev, s.Name, s.Value))
		}
		values[s.Value] = s.Name
	}
	return errors.Join(errs...)
}
