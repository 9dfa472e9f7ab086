package results

import (
	"encoding/json"
	"testing"
)

func TestParseOutcomeVariants(t *testing.T) {
	pass, err := ParseOutcome("PASS")
	if err != nil {
		t.Fatalf("parse PASS: %v", err)
	}
	if !pass.Passed() || pass.Failed() {
		t.Fatalf("expected pass variant")
	}
	if pass.Reason() != "" {
		t.Fatalf("pass must have no reason, got %q", pass.Reason())
	}

	fail, err := ParseOutcome("FAIL: wildcard resource access")
	if err != nil {
		t.Fatalf("parse FAIL with reason: %v", err)
	}
	if !fail.Failed() {
		t.Fatalf("expected fail variant")
	}
	if fail.Reason() != "wildcard resource access" {
		t.Fatalf("unexpected reason: %q", fail.Reason())
	}

	bare, err := ParseOutcome("FAIL")
	if err != nil {
		t.Fatalf("parse bare FAIL: %v", err)
	}
	if !bare.Failed() || bare.Reason() != "" {
		t.Fatalf("bare FAIL must be a reasonless failure")
	}

	if _, err := ParseOutcome("pass"); err == nil {
		t.Fatalf("lowercase pass must be rejected")
	}
	if _, err := ParseOutcome("FAULT"); err == nil {
		t.Fatalf("non-FAIL prefix must be rejected")
	}
}

func TestOutcomePreservesWireForm(t *testing.T) {
	for _, wire := range []string{`"PASS"`, `"FAIL"`, `"FAIL: mfa missing"`} {
		var outcome Outcome
		if err := json.Unmarshal([]byte(wire), &outcome); err != nil {
			t.Fatalf("unmarshal %s: %v", wire, err)
		}
		encoded, err := json.Marshal(outcome)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(encoded) != wire {
			t.Fatalf("wire form changed: %s -> %s", wire, string(encoded))
		}
	}
}

func TestStrictModeFailureCountUsesPrefix(t *testing.T) {
	raw := []byte(`{"A":"PASS","B":"FAIL: wildcard","C":"FAIL"}`)
	var strict map[string]Outcome
	if err := json.Unmarshal(raw, &strict); err != nil {
		t.Fatalf("unmarshal strict mode: %v", err)
	}
	failures := 0
	for _, outcome := range strict {
		if outcome.Failed() {
			failures++
		}
	}
	if failures != 2 {
		t.Fatalf("expected 2 failures, got %d", failures)
	}
}

func TestRepairEntryDecode(t *testing.T) {
	var entry RepairEntry
	if err := json.Unmarshal([]byte(`[3, 0.5, 0.9, 0.4]`), &entry); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	want := RepairEntry{Iteration: 3, Before: 0.5, After: 0.9, CSTDelta: 0.4}
	if entry != want {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestRepairEntryRejectsBadShapes(t *testing.T) {
	cases := []string{
		`[1, 0.5, 0.9]`,
		`[1, 0.5, 0.9, 0.4, 0]`,
		`["1", 0.5, 0.9, 0.4]`,
		`[1.5, 0.5, 0.9, 0.4]`,
		`{"iteration": 1}`,
	}
	for _, raw := range cases {
		var entry RepairEntry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil {
			t.Fatalf("expected decode error for %s", raw)
		}
	}
}

func TestIterationRefDecode(t *testing.T) {
	var known IterationRef
	if err := json.Unmarshal([]byte(`4`), &known); err != nil {
		t.Fatalf("unmarshal known ref: %v", err)
	}
	if value, ok := known.Known(); !ok || value != 4 {
		t.Fatalf("unexpected known ref: %s", known)
	}

	for _, wire := range []string{`"?"`, `null`} {
		var unknown IterationRef
		if err := json.Unmarshal([]byte(wire), &unknown); err != nil {
			t.Fatalf("unmarshal %s: %v", wire, err)
		}
		if _, ok := unknown.Known(); ok {
			t.Fatalf("expected unknown ref for %s", wire)
		}
		if unknown.String() != "?" {
			t.Fatalf("unexpected unknown marker: %s", unknown)
		}
	}

	var bad IterationRef
	if err := json.Unmarshal([]byte(`"seven"`), &bad); err == nil {
		t.Fatalf("expected error for non-integer ref")
	}
	if err := json.Unmarshal([]byte(`2.5`), &bad); err == nil {
		t.Fatalf("expected error for fractional ref")
	}
}
