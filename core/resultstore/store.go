package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	coreerrors "github.com/marven22/IAM-Dashboard/core/errors"
	"github.com/marven22/IAM-Dashboard/core/jcs"
	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
	"github.com/marven22/IAM-Dashboard/core/schema/validate"
)

const (
	iterationPrefix = "iteration_"
	iterationSuffix = ".json"
	dashboardFile   = "final_dashboard.json"
)

// Store holds one run's validated records. It is loaded once per session and
// read-only afterwards; concurrent sessions each open their own Store.
type Store struct {
	iterations map[int]results.IterationRecord
	ids        []int
	dashboard  results.DashboardRecord
	warnings   []string
}

// Open loads every iteration record and the dashboard record under dir.
// A missing dashboard is fatal. A malformed or duplicate iteration file
// aborts that record only: it is skipped with a warning and the remaining
// iterations still load.
func Open(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, coreerrors.Wrap(
			fmt.Errorf("read results directory: %w", err),
			coreerrors.CategoryIOFailure,
			"results_dir_unreadable",
			"check that the results directory exists and is readable",
		)
	}

	store := &Store{iterations: map[int]results.IterationRecord{}}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, iterationPrefix) && strings.HasSuffix(name, iterationSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		record, err := loadIteration(filepath.Join(dir, name))
		if err != nil {
			store.warnings = append(store.warnings, fmt.Sprintf("%s skipped: %v", name, err))
			continue
		}
		if _, exists := store.iterations[record.Iteration]; exists {
			store.warnings = append(store.warnings, fmt.Sprintf("%s skipped: duplicate iteration id %d", name, record.Iteration))
			continue
		}
		store.iterations[record.Iteration] = record
		store.ids = append(store.ids, record.Iteration)
	}
	sort.Ints(store.ids)

	dashboard, err := loadDashboard(filepath.Join(dir, dashboardFile))
	if err != nil {
		return nil, err
	}
	store.dashboard = dashboard

	return store, nil
}

func loadIteration(path string) (results.IterationRecord, error) {
	// #nosec G304 -- path is derived from the explicit results directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return results.IterationRecord{}, coreerrors.Wrap(
			fmt.Errorf("read iteration record: %w", err),
			coreerrors.CategoryIOFailure,
			"iteration_unreadable",
			"check read permissions for the results directory",
		)
	}
	if err := validate.Iteration(data); err != nil {
		return results.IterationRecord{}, malformed(fmt.Errorf("validate iteration record: %w", err), "iteration_malformed")
	}
	var record results.IterationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return results.IterationRecord{}, malformed(fmt.Errorf("parse iteration record: %w", err), "iteration_malformed")
	}
	return record, nil
}

func loadDashboard(path string) (results.DashboardRecord, error) {
	// #nosec G304 -- path is derived from the explicit results directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return results.DashboardRecord{}, coreerrors.Wrap(
				fmt.Errorf("dashboard record %s is missing", dashboardFile),
				coreerrors.CategoryRecordNotFound,
				"dashboard_missing",
				"run the pipeline to produce final_dashboard.json",
			)
		}
		return results.DashboardRecord{}, coreerrors.Wrap(
			fmt.Errorf("read dashboard record: %w", err),
			coreerrors.CategoryIOFailure,
			"dashboard_unreadable",
			"check read permissions for the results directory",
		)
	}
	if err := validate.Dashboard(data); err != nil {
		return results.DashboardRecord{}, malformed(fmt.Errorf("validate dashboard record: %w", err), "dashboard_malformed")
	}
	var record results.DashboardRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return results.DashboardRecord{}, malformed(fmt.Errorf("parse dashboard record: %w", err), "dashboard_malformed")
	}
	if record.CSTSummary != nil && len(record.CSTSummary.BeforeRates) != len(record.CSTSummary.AfterRates) {
		return results.DashboardRecord{}, malformed(
			fmt.Errorf("cst_summary rate series are misaligned: %d before vs %d after",
				len(record.CSTSummary.BeforeRates), len(record.CSTSummary.AfterRates)),
			"dashboard_malformed",
		)
	}
	return record, nil
}

func malformed(cause error, code string) error {
	return coreerrors.Wrap(cause, coreerrors.CategoryMalformedRecord, code, "regenerate the precomputed results")
}

// Iteration returns the record with the given id.
func (s *Store) Iteration(id int) (results.IterationRecord, bool) {
	record, ok := s.iterations[id]
	return record, ok
}

// IterationIDs returns every loaded iteration id in ascending order.
func (s *Store) IterationIDs() []int {
	ids := make([]int, len(s.ids))
	copy(ids, s.ids)
	return ids
}

func (s *Store) Count() int {
	return len(s.ids)
}

func (s *Store) Dashboard() results.DashboardRecord {
	return s.dashboard
}

// Warnings lists iteration files that were skipped at load time.
func (s *Store) Warnings() []string {
	warnings := make([]string, len(s.warnings))
	copy(warnings, s.warnings)
	return warnings
}

// PolicyDigests are RFC 8785 sha256 fingerprints of an iteration's opaque
// policy documents, computed from the preserved raw bytes.
type PolicyDigests struct {
	Mutated  string `json:"mutated"`
	Repaired string `json:"repaired"`
}

func (s *Store) PolicyDigests(id int) (PolicyDigests, error) {
	record, ok := s.iterations[id]
	if !ok {
		return PolicyDigests{}, coreerrors.Wrap(
			fmt.Errorf("iteration %d not loaded", id),
			coreerrors.CategoryRecordNotFound,
			"iteration_missing",
			"list available iterations with the overview command",
		)
	}
	mutated, err := jcs.Digest(record.MutatedPolicy)
	if err != nil {
		return PolicyDigests{}, fmt.Errorf("digest mutated policy: %w", err)
	}
	repaired, err := jcs.Digest(record.RepairedPolicy)
	if err != nil {
		return PolicyDigests{}, fmt.Errorf("digest repaired policy: %w", err)
	}
	return PolicyDigests{Mutated: mutated, Repaired: repaired}, nil
}

// StrictFailureCount counts strict-mode outcomes in the Fail variant for one
// iteration. The prefix parse happened once at load; this never re-reads the
// wire strings.
func (s *Store) StrictFailureCount(id int) (int, bool) {
	record, ok := s.iterations[id]
	if !ok {
		return 0, false
	}
	failures := 0
	for _, outcome := range record.Proof.StrictMode {
		if outcome.Failed() {
			failures++
		}
	}
	return failures, true
}
