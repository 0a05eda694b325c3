// Command mcdiag-gen generates the protocol symbol tables from YAML.
//
// Usage:
//
//	mcdiag-gen -spec protocol.yaml -output names_gen.go [-package protocol]
//
// It is normally run through go generate in pkg/protocol.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	specPath := flag.String("spec", "", "Path to the symbol table YAML")
	output := flag.String("output", "", "Output path for the generated Go file")
	pkg := flag.String("package", "protocol", "Package name of the generated file")
	flag.Parse()

	if *specPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: mcdiag-gen -spec <path> -output <path> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*specPath, *output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(specPath, output, pkg string) error {
	spec, err := LoadSpec(specPath)
	if err != nil {
		return fmt.Errorf("loading symbols: %w", err)
	}

	code, err := Generate(spec, filepath.Base(specPath), pkg)
	if err != nil {
		return fmt.Errorf("generating %s: %w", filepath.Base(output), err)
	}

	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
