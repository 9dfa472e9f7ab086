package provenance

import (
	"reflect"
	"sort"
	"testing"

	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
)

func TestClassifyBranchPriority(t *testing.T) {
	dashboard := results.DashboardRecord{
		EvolvedContracts:   []string{"no_wildcard", "seed_and_evolved"},
		CandidateContracts: []string{"containment"},
		ContractMetadata: map[string]results.ContractMeta{
			"no_wildcard":      {Origin: results.OriginGPT, Iteration: results.KnownIteration(2)},
			"seed_and_evolved": {Origin: results.OriginSeed, Iteration: results.KnownIteration(0)},
			"mfa_required":     {Origin: results.OriginSeed},
			"containment":      {Origin: "archive"},
		},
	}

	rows := Classify(dashboard)
	byContract := map[string]Row{}
	for _, row := range rows {
		byContract[row.Contract] = row
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if row := byContract["no_wildcard"]; row.Origin != OriginGPTDiscovered || row.Status != StatusPromoted {
		t.Fatalf("unexpected gpt row: %+v", row)
	}
	// Evolved membership overrides seed origin.
	if row := byContract["seed_and_evolved"]; row.Origin != OriginSeedPreloaded || row.Status != StatusPromoted {
		t.Fatalf("seed contract in evolved set must be promoted: %+v", row)
	}
	if row := byContract["mfa_required"]; row.Origin != OriginSeedPreloaded || row.Status != StatusStable {
		t.Fatalf("unexpected seed row: %+v", row)
	}
	if row := byContract["containment"]; row.Origin != OriginSelfEvolved || row.Status != StatusCandidate {
		t.Fatalf("unexpected other-origin row: %+v", row)
	}
}

func TestClassifyMissingMetadataIsSelfEvolvedCandidate(t *testing.T) {
	dashboard := results.DashboardRecord{
		CandidateContracts: []string{"orphan"},
	}
	rows := Classify(dashboard)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Origin != OriginSelfEvolved || row.Status != StatusCandidate {
		t.Fatalf("unexpected orphan row: %+v", row)
	}
	if _, known := row.FirstIteration.Known(); known {
		t.Fatalf("missing metadata must yield the unknown iteration marker")
	}
}

func TestClassifySortedAndIdempotent(t *testing.T) {
	dashboard := results.DashboardRecord{
		EvolvedContracts:   []string{"zeta", "alpha"},
		CandidateContracts: []string{"mid"},
		ContractMetadata: map[string]results.ContractMeta{
			"beta": {Origin: results.OriginSeed},
		},
	}

	first := Classify(dashboard)
	names := make([]string, len(first))
	for i, row := range first {
		names[i] = row.Contract
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("rows not sorted by contract: %v", names)
	}

	second := Classify(dashboard)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification is not idempotent:\n%v\n%v", first, second)
	}
}

func TestClassifyEmptySources(t *testing.T) {
	rows := Classify(results.DashboardRecord{})
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %v", rows)
	}
}
