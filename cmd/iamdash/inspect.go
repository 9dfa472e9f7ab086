package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/marven22/IAM-Dashboard/core/cst"
	coreerrors "github.com/marven22/IAM-Dashboard/core/errors"
	"github.com/marven22/IAM-Dashboard/core/resultstore"
)

type inspectOutput struct {
	OK                bool                      `json:"ok"`
	Iteration         int                       `json:"iteration"`
	MutationDesc      string                    `json:"mutation_desc"`
	MutationSource    string                    `json:"mutation_source"`
	Contracts         int                       `json:"contracts"`
	StrictFailures    int                       `json:"strict_failures"`
	StrictMode        map[string]string         `json:"strict_mode"`
	ExploratoryMode   map[string]string         `json:"exploratory_mode,omitempty"`
	RepairSuggestions map[string]string         `json:"repair_suggestions,omitempty"`
	CST               *cst.View                 `json:"cst,omitempty"`
	PolicyDigests     resultstore.PolicyDigests `json:"policy_digests"`
	LeanExportBytes   int                       `json:"lean_export_bytes"`
	DafnyExportBytes  int                       `json:"dafny_export_bytes"`
	LLMExplanation    string                    `json:"llm_explanation,omitempty"`
}

func runInspect(arguments []string) int {
	flagSet := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var from string
	var iteration int
	var jsonOutput bool
	flagSet.StringVar(&from, "from", "", "results directory")
	flagSet.IntVar(&iteration, "iteration", -1, "iteration id to inspect")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		return writeInvalidInput(jsonOutput, err.Error())
	}
	if strings.TrimSpace(from) == "" {
		return writeInvalidInput(jsonOutput, "missing required --from <dir>")
	}
	if iteration < 0 {
		return writeInvalidInput(jsonOutput, "missing required --iteration <n>")
	}

	store, err := resultstore.Open(from)
	if err != nil {
		return writeError(jsonOutput, err)
	}

	record, ok := store.Iteration(iteration)
	if !ok {
		return writeError(jsonOutput, coreerrors.Wrap(
			fmt.Errorf("iteration %d not found (loaded: %v)", iteration, store.IterationIDs()),
			coreerrors.CategoryRecordNotFound,
			"iteration_missing",
			"list available iterations with the overview command",
		))
	}

	digests, err := store.PolicyDigests(iteration)
	if err != nil {
		return writeError(jsonOutput, err)
	}
	failures, _ := store.StrictFailureCount(iteration)

	strict := make(map[string]string, len(record.Proof.StrictMode))
	for contract, outcome := range record.Proof.StrictMode {
		strict[contract] = outcome.String()
	}

	output := inspectOutput{
		OK:                true,
		Iteration:         iteration,
		MutationDesc:      record.MutationMeta.Description,
		MutationSource:    record.MutationMeta.Source,
		Contracts:         len(record.Proof.StrictMode),
		StrictFailures:    failures,
		StrictMode:        strict,
		ExploratoryMode:   record.Proof.ExploratoryMode,
		RepairSuggestions: record.Proof.RepairSuggestions,
		PolicyDigests:     digests,
		LeanExportBytes:   len(record.LeanExport),
		DafnyExportBytes:  len(record.DafnyExport),
		LLMExplanation:    record.LLMExplanation,
	}
	if view, ok := cst.IterationView(record.CSTResults); ok {
		display := view.Display()
		output.CST = &display
	}

	if jsonOutput {
		return writeJSONOutput(output, exitOK)
	}
	printInspect(output)
	return exitOK
}

func printInspect(output inspectOutput) {
	fmt.Printf("Iteration %d\n", output.Iteration)
	fmt.Printf("Mutation: %s (%s)\n", output.MutationDesc, output.MutationSource)
	fmt.Printf("Contracts: %d | Failures: %d\n", output.Contracts, output.StrictFailures)

	fmt.Println("Proof results (strict mode):")
	for _, contract := range sortedKeys(output.StrictMode) {
		fmt.Printf("  %s: %s\n", contract, output.StrictMode[contract])
	}

	if len(output.ExploratoryMode) > 0 {
		fmt.Println("Exploratory mode:")
		for _, contract := range sortedKeys(output.ExploratoryMode) {
			fmt.Printf("  %s: %s\n", contract, output.ExploratoryMode[contract])
		}
	}

	if output.CST != nil {
		fmt.Printf("CST violation rate: %.3f -> %.3f (reduction %.3f)\n",
			output.CST.BeforeRate, output.CST.AfterRate, output.CST.Reduction)
	} else {
		fmt.Println("No CST results for this iteration.")
	}

	if len(output.RepairSuggestions) > 0 {
		fmt.Println("Repair suggestions:")
		for _, contract := range sortedKeys(output.RepairSuggestions) {
			fmt.Printf("  %s: %s\n", contract, output.RepairSuggestions[contract])
		}
	} else {
		fmt.Println("No repair suggestions generated in this iteration.")
	}

	fmt.Printf("Policy digests: mutated %s, repaired %s\n", output.PolicyDigests.Mutated, output.PolicyDigests.Repaired)
	fmt.Printf("Proof artifacts: lean %d bytes, dafny %d bytes\n", output.LeanExportBytes, output.DafnyExportBytes)
	if output.LLMExplanation != "" {
		fmt.Printf("Explanation: %s\n", output.LLMExplanation)
	} else {
		fmt.Println("No explanation available.")
	}
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
