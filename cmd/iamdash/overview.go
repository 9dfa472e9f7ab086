package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/marven22/IAM-Dashboard/core/resultstore"
)

type overviewOutput struct {
	OK               bool     `json:"ok"`
	Iterations       int      `json:"iterations"`
	EvolvedContracts int      `json:"evolved_contracts"`
	Warnings         []string `json:"warnings,omitempty"`
}

func runOverview(arguments []string) int {
	flagSet := flag.NewFlagSet("overview", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var from string
	var jsonOutput bool
	flagSet.StringVar(&from, "from", "", "results directory")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		return writeInvalidInput(jsonOutput, err.Error())
	}
	if strings.TrimSpace(from) == "" {
		return writeInvalidInput(jsonOutput, "missing required --from <dir>")
	}

	store, err := resultstore.Open(from)
	if err != nil {
		return writeError(jsonOutput, err)
	}

	output := overviewOutput{
		OK:               true,
		Iterations:       store.Count(),
		EvolvedContracts: len(store.Dashboard().EvolvedContracts),
		Warnings:         store.Warnings(),
	}
	if jsonOutput {
		return writeJSONOutput(output, exitOK)
	}

	fmt.Printf("Total iterations run: %d\n", output.Iterations)
	fmt.Printf("Evolved contracts:    %d\n", output.EvolvedContracts)
	for _, warning := range output.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	return exitOK
}
