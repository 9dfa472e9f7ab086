package results

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	outcomePass       = "PASS"
	outcomeFailPrefix = "FAIL"
)

// Outcome is a strict-mode verification result, parsed once from its
// prefix-encoded wire form: the exact string "PASS", or any string beginning
// with "FAIL" optionally followed by a reason. The original wire string is
// preserved so records re-serialize unchanged.
type Outcome struct {
	raw  string
	pass bool
}

func Pass() Outcome {
	return Outcome{raw: outcomePass, pass: true}
}

func Fail(reason string) Outcome {
	raw := outcomeFailPrefix
	if strings.TrimSpace(reason) != "" {
		raw = outcomeFailPrefix + ": " + reason
	}
	return Outcome{raw: raw}
}

func (o Outcome) Passed() bool {
	return o.pass
}

func (o Outcome) Failed() bool {
	return !o.pass
}

// Reason returns the failure reason appended after the FAIL prefix,
// empty for passes and bare failures.
func (o Outcome) Reason() string {
	if o.pass {
		return ""
	}
	rest := strings.TrimPrefix(o.raw, outcomeFailPrefix)
	rest = strings.TrimPrefix(strings.TrimSpace(rest), ":")
	return strings.TrimSpace(rest)
}

func (o Outcome) String() string {
	return o.raw
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.raw)
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("outcome must be a string: %w", err)
	}
	parsed, err := ParseOutcome(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func ParseOutcome(raw string) (Outcome, error) {
	switch {
	case raw == outcomePass:
		return Outcome{raw: raw, pass: true}, nil
	case strings.HasPrefix(raw, outcomeFailPrefix):
		return Outcome{raw: raw}, nil
	default:
		return Outcome{}, fmt.Errorf("outcome %q is neither PASS nor FAIL-prefixed", raw)
	}
}

// RepairEntry is one repair measurement, wire-encoded as the 4-element array
// [iterationId, beforeScore, afterScore, cstDelta].
type RepairEntry struct {
	Iteration int
	Before    float64
	After     float64
	CSTDelta  float64
}

func (e RepairEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Iteration, e.Before, e.After, e.CSTDelta})
}

func (e *RepairEntry) UnmarshalJSON(data []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("repair entry must be an array of numbers: %w", err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("repair entry must have 4 elements, got %d", len(raw))
	}
	iteration, err := raw[0].Int64()
	if err != nil {
		return fmt.Errorf("repair entry iteration id: %w", err)
	}
	before, err := raw[1].Float64()
	if err != nil {
		return fmt.Errorf("repair entry before score: %w", err)
	}
	after, err := raw[2].Float64()
	if err != nil {
		return fmt.Errorf("repair entry after score: %w", err)
	}
	delta, err := raw[3].Float64()
	if err != nil {
		return fmt.Errorf("repair entry cst delta: %w", err)
	}
	*e = RepairEntry{
		Iteration: int(iteration),
		Before:    before,
		After:     after,
		CSTDelta:  delta,
	}
	return nil
}

// IterationRef is a contract's first-seen iteration: a non-negative integer,
// or the unknown marker (wire form "?", null, or an absent field).
type IterationRef struct {
	known bool
	value int
}

func KnownIteration(value int) IterationRef {
	return IterationRef{known: true, value: value}
}

func UnknownIteration() IterationRef {
	return IterationRef{}
}

func (r IterationRef) Known() (int, bool) {
	return r.value, r.known
}

func (r IterationRef) String() string {
	if !r.known {
		return "?"
	}
	return strconv.Itoa(r.value)
}

func (r IterationRef) MarshalJSON() ([]byte, error) {
	if !r.known {
		return json.Marshal("?")
	}
	return json.Marshal(r.value)
}

func (r *IterationRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `"?"` {
		*r = IterationRef{}
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("iteration ref must be an integer or %q: %w", "?", err)
	}
	value, err := number.Int64()
	if err != nil {
		return fmt.Errorf("iteration ref must be an integer: %w", err)
	}
	*r = IterationRef{known: true, value: int(value)}
	return nil
}
