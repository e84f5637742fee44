package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"modeler-api/internal/modeler/assembler"
	"modeler-api/internal/modeler/pipeline"
	"modeler-api/internal/modeler/validator"
)

// ============================================================
// Modeler CLI
// ============================================================

func main() {
	os.Exit(run())
}

func run() int {
	output := flag.String("output", "", "путь выходного файла (по умолчанию stdout)")
	flag.StringVar(output, "o", "", "короткая форма --output")
	pretty := flag.Bool("pretty", false, "форматированный JSON")
	validate := flag.Bool("validate", false, "проверить документ перед выводом")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		return 1
	}
	prompt := flag.Arg(0)

	generator := pipeline.New()
	doc, err := generator.Generate(prompt)
	if err != nil {
		var inconsistency *assembler.InconsistencyError
		if errors.As(err, &inconsistency) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *validate {
		report := validator.Validate(data)
		if !report.Valid {
			fmt.Fprintf(os.Stderr, "Invalid document: %v\n", report.Errors)
			return 2
		}
		fmt.Fprintf(os.Stderr, "Valid document generated\n")
		fmt.Fprintf(os.Stderr, "  - Rooms: %d\n", report.Rooms)
		fmt.Fprintf(os.Stderr, "  - Confidence: %.2f\n", report.Confidence)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
		return 0
	}

	fmt.Println(string(data))
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: modelerctl [flags] "prompt"

Генерирует документ архитектурной сцены из текстового описания.

Examples:
  modelerctl "A 2-bedroom apartment with modern kitchen"
  modelerctl -o scene.json "Scandinavian 1-bedroom, 60 square meters"
  modelerctl --pretty --validate "Industrial loft"

Flags:
`)
	flag.PrintDefaults()
}
