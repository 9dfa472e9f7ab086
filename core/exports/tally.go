package exports

import "github.com/marven22/IAM-Dashboard/core/schema/v1/results"

// Tally counts unprovable or violating formal-proof artifacts for a run.
// Both counters are required on the dashboard record and enforced at load;
// zero here is a legitimate result, never a default.
type Tally struct {
	LeanUnprovable  int `json:"lean_unprovable"`
	DafnyViolations int `json:"dafny_violations"`
}

func TallyOf(dashboard results.DashboardRecord) Tally {
	return Tally{
		LeanUnprovable:  dashboard.LeanUnprovable,
		DafnyViolations: dashboard.DafnyViolations,
	}
}

// Clean reports whether every exported proof artifact verified.
func (t Tally) Clean() bool {
	return t.LeanUnprovable == 0 && t.DafnyViolations == 0
}
