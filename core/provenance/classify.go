package provenance

import (
	"sort"

	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
)

type OriginLabel string

const (
	OriginGPTDiscovered OriginLabel = "gpt_discovered"
	OriginSeedPreloaded OriginLabel = "seed_preloaded"
	OriginSelfEvolved   OriginLabel = "self_evolved"
)

type Status string

const (
	StatusPromoted  Status = "promoted"
	StatusStable    Status = "stable"
	StatusCandidate Status = "candidate"
)

type Row struct {
	Contract       string               `json:"contract"`
	Origin         OriginLabel          `json:"origin"`
	Status         Status               `json:"status"`
	FirstIteration results.IterationRef `json:"first_iteration"`
}

// Classify derives one row per contract appearing in evolved_contracts,
// candidate_contracts, or contract_metadata. Rows are sorted by contract
// name. An empty union yields an empty slice; the caller renders that as an
// explicit no-data state rather than an empty table.
func Classify(dashboard results.DashboardRecord) []Row {
	evolved := make(map[string]struct{}, len(dashboard.EvolvedContracts))
	for _, contract := range dashboard.EvolvedContracts {
		evolved[contract] = struct{}{}
	}

	union := map[string]struct{}{}
	for contract := range evolved {
		union[contract] = struct{}{}
	}
	for _, contract := range dashboard.CandidateContracts {
		union[contract] = struct{}{}
	}
	for contract := range dashboard.ContractMetadata {
		union[contract] = struct{}{}
	}

	contracts := make([]string, 0, len(union))
	for contract := range union {
		contracts = append(contracts, contract)
	}
	sort.Strings(contracts)

	rows := make([]Row, 0, len(contracts))
	for _, contract := range contracts {
		meta, hasMeta := dashboard.ContractMetadata[contract]
		origin := ""
		firstIteration := results.UnknownIteration()
		if hasMeta {
			origin = meta.Origin
			firstIteration = meta.Iteration
		}

		label := OriginSelfEvolved
		switch origin {
		case results.OriginGPT:
			label = OriginGPTDiscovered
		case results.OriginSeed:
			label = OriginSeedPreloaded
		}

		// Promotion checks evolved membership before origin: a seed
		// contract that also evolved reports promoted, not stable.
		status := StatusCandidate
		if _, isEvolved := evolved[contract]; isEvolved {
			status = StatusPromoted
		} else if origin == results.OriginSeed {
			status = StatusStable
		}

		rows = append(rows, Row{
			Contract:       contract,
			Origin:         label,
			Status:         status,
			FirstIteration: firstIteration,
		})
	}
	return rows
}
