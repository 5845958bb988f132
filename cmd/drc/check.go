package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/socforge/drc-backend/internal/catalog"
	"github.com/socforge/drc-backend/internal/drc/detection/rules"
	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/service"
)

// RunCheck reads a diagram JSON file, runs the design rule check and prints
// the report. Exit code 1 when the check fails (any critical violation).
func RunCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	cataloguePath := fs.String("catalogue", "", "YAML interface catalogue used as fallback for nodes without embedded interfaces")
	optionalPorts := fs.Bool("optional-ports", false, "also report unconnected optional ports")
	summaryOnly := fs.Bool("summary", false, "print a one-line summary per violation instead of JSON")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("usage: drc check [flags] <diagram.json>")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("read diagram: %v", err)
	}

	var provider catalog.Provider
	if *cataloguePath != "" {
		cat, err := catalog.LoadFile(*cataloguePath)
		if err != nil {
			log.Fatalf("catalogue: %v", err)
		}
		provider = cat
	}

	result, err := service.AnalyzeJSON(context.Background(), raw, provider, rules.Options{
		CheckOptionalPorts: *optionalPorts,
	})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	if *summaryOnly {
		printSummary(result)
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}

	if !result.Passed {
		os.Exit(1)
	}
}

func printSummary(result *domain.DRCResult) {
	for _, v := range result.Violations {
		fmt.Printf("[%s] %s %s: %s\n", v.Severity, v.RuleID, v.Location, v.Description)
	}
	status := "PASSED"
	if !result.Passed {
		status = "FAILED"
	}
	fmt.Printf("%s: %d violations (critical=%d warning=%d info=%d)\n",
		status, result.TotalChecks, result.Summary.Critical, result.Summary.Warning, result.Summary.Info)
}
