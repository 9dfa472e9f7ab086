package results

import "encoding/json"

type IterationRecord struct {
	Iteration      int             `json:"iteration"`
	MutationMeta   MutationMeta    `json:"mutation_meta"`
	MutatedPolicy  json.RawMessage `json:"mutated_policy"`
	Proof          ProofBundle     `json:"proof"`
	RepairedPolicy json.RawMessage `json:"repaired_policy"`
	LeanExport     string          `json:"lean_export"`
	DafnyExport    string          `json:"dafny_export"`
	LLMExplanation string          `json:"llm_explanation,omitempty"`
	CSTResults     *CSTResults     `json:"cst_results,omitempty"`
}

type MutationMeta struct {
	Description string `json:"desc"`
	Source      string `json:"source"`
}

type ProofBundle struct {
	StrictMode        map[string]Outcome `json:"strict_mode"`
	ExploratoryMode   map[string]string  `json:"exploratory_mode"`
	RepairSuggestions map[string]string  `json:"repair_suggestions"`
}

type CSTResults struct {
	Before             CSTSample `json:"before"`
	After              CSTSample `json:"after"`
	ViolationReduction float64   `json:"violation_reduction"`
}

type CSTSample struct {
	ViolationRate float64 `json:"violation_rate"`
}

type DashboardRecord struct {
	EvolvedContracts   []string                `json:"evolved_contracts"`
	CandidateContracts []string                `json:"candidate_contracts"`
	ContractMetadata   map[string]ContractMeta `json:"contract_metadata"`
	RepairImprovements []RepairEntry           `json:"repair_improvements"`
	RepairFailures     []RepairEntry           `json:"repair_failures"`
	CSTSummary         *CSTSummary             `json:"cst_summary,omitempty"`
	LeanUnprovable     int                     `json:"lean_unprovable"`
	DafnyViolations    int                     `json:"dafny_violations"`
}

type ContractMeta struct {
	Origin    string       `json:"origin"`
	Iteration IterationRef `json:"iteration,omitempty"`
}

type CSTSummary struct {
	AvgBefore   *float64  `json:"avg_before"`
	AvgAfter    float64   `json:"avg_after"`
	AvgDelta    float64   `json:"avg_delta"`
	BeforeRates []float64 `json:"before_rates"`
	AfterRates  []float64 `json:"after_rates"`
}

const (
	OriginGPT  = "gpt"
	OriginSeed = "seed"
)
