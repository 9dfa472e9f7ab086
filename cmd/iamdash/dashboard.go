package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/marven22/IAM-Dashboard/core/cst"
	"github.com/marven22/IAM-Dashboard/core/exports"
	"github.com/marven22/IAM-Dashboard/core/provenance"
	"github.com/marven22/IAM-Dashboard/core/repairimpact"
	"github.com/marven22/IAM-Dashboard/core/resultstore"
)

type repairSection struct {
	Count    int                  `json:"count"`
	Averages repairimpact.Display `json:"averages"`
	Series   []repairimpact.Point `json:"series"`
	Warnings []string             `json:"warnings,omitempty"`
}

type cstSection struct {
	Averages cst.Display    `json:"averages"`
	Series   []cst.RatePair `json:"series"`
}

type dashboardOutput struct {
	OK         bool             `json:"ok"`
	Provenance []provenance.Row `json:"provenance"`
	Repair     *repairSection   `json:"repair,omitempty"`
	CSTSummary *cstSection      `json:"cst_summary,omitempty"`
	Exports    exports.Tally    `json:"exports"`
	Warnings   []string         `json:"warnings,omitempty"`
}

func runDashboard(arguments []string) int {
	flagSet := flag.NewFlagSet("dashboard", flag.ContinueOnError)
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
	dashboard := store.Dashboard()

	output := dashboardOutput{
		OK:         true,
		Provenance: provenance.Classify(dashboard),
		Exports:    exports.TallyOf(dashboard),
		Warnings:   store.Warnings(),
	}
	if summary, ok := repairimpact.Summarize(dashboard.RepairImprovements, dashboard.RepairFailures); ok {
		output.Repair = &repairSection{
			Count:    summary.Count,
			Averages: summary.Display(),
			Series:   summary.Series,
			Warnings: summary.Warnings,
		}
	}
	if summary, ok := cst.Summarize(dashboard.CSTSummary); ok {
		output.CSTSummary = &cstSection{
			Averages: summary.Display(),
			Series:   summary.Series,
		}
	}

	if jsonOutput {
		return writeJSONOutput(output, exitOK)
	}
	printDashboard(output)
	return exitOK
}

func printDashboard(output dashboardOutput) {
	fmt.Println("Contract provenance and promotion status:")
	if len(output.Provenance) == 0 {
		fmt.Println("  No contract metadata available to display provenance.")
	}
	for _, row := range output.Provenance {
		fmt.Printf("  %s: origin=%s status=%s first_iteration=%s\n",
			row.Contract, row.Origin, row.Status, row.FirstIteration)
	}

	fmt.Println("Repair impact:")
	if output.Repair == nil {
		fmt.Println("  No repair data.")
	} else {
		fmt.Printf("  Avg proof score: %.3f -> %.3f (avg delta %.3f) over %d repairs\n",
			output.Repair.Averages.AvgBefore, output.Repair.Averages.AvgAfter,
			output.Repair.Averages.AvgDelta, output.Repair.Count)
		for _, point := range output.Repair.Series {
			fmt.Printf("  iteration %d: %.3f -> %.3f\n", point.Iteration, point.Before, point.After)
		}
		for _, warning := range output.Repair.Warnings {
			fmt.Printf("  warning: %s\n", warning)
		}
	}

	fmt.Println("CST summary:")
	if output.CSTSummary == nil {
		fmt.Println("  No CST summary available.")
	} else {
		fmt.Printf("  Avg violation rate: %.3f -> %.3f (avg reduction %.3f)\n",
			output.CSTSummary.Averages.AvgBefore, output.CSTSummary.Averages.AvgAfter,
			output.CSTSummary.Averages.AvgDelta)
	}

	fmt.Printf("Proof exports: lean unprovable %d, dafny violations %d\n",
		output.Exports.LeanUnprovable, output.Exports.DafnyViolations)

	for _, warning := range output.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}
