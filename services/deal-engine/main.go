package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/validate"
)

// Thin JSON-in/JSON-out wrapper around the engines, for callers that
// shell out rather than link the packages.
func main() {
	mode := flag.String("mode", "analyze", "Mode: check or analyze")
	dataStr := flag.String("data", "", "JSON payload of partial deal inputs")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var override scenario.Override
	if err := json.Unmarshal([]byte(*dataStr), &override); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}
	in := override.Apply(underwrite.Defaults())

	switch *mode {
	case "check":
		runChecks(in)
	case "analyze":
		runAnalysis(in)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
	}
}

func runChecks(in underwrite.Inputs) {
	issues := validate.CheckInputs(in)
	if len(issues) == 0 {
		fmt.Println("Success: inputs are within expected ranges")
		return
	}
	json.NewEncoder(os.Stdout).Encode(issues)
	if validate.HasErrors(issues) {
		os.Exit(1)
	}
}

func runAnalysis(in underwrite.Inputs) {
	a, err := analysis.NewEngine().Analyze(in)
	if err != nil {
		fmt.Printf("Error analyzing deal: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		fmt.Printf("Error encoding analysis: %v\n", err)
		os.Exit(1)
	}
}
