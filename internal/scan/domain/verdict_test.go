package domain

import "testing"

func TestVerdict_StringAndParse(t *testing.T) {
	for _, v := range []Verdict{VerdictUnknown, VerdictSafe, VerdictPhishing} {
		got, err := ParseVerdict(" " + v.String() + " ")
		if err != nil {
			t.Fatalf("ParseVerdict(%q) error: %v", v.String(), err)
		}
		if got != v {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}
	if got := Verdict(42).String(); got != "Verdict(42)" {
		t.Errorf("unexpected string for unknown verdict: %q", got)
	}
	if _, err := ParseVerdict("benign"); err == nil {
		t.Error("expected error for unsupported verdict")
	}
}

func TestRule_String(t *testing.T) {
	tests := map[Rule]string{
		RuleNoHostname:       "no_hostname",
		RuleExactMatch:       "exact_match",
		RuleBrandInSubdomain: "brand_in_subdomain",
		RuleNearDuplicate:    "near_duplicate",
		RuleHeuristic:        "heuristic",
		Rule(99):             "Rule(99)",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Rule(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestHeuristicReason(t *testing.T) {
	if got := HeuristicReason(4.5, 2.0); got != "heuristic score 4.50 >= threshold 2.00" {
		t.Errorf("above threshold reason = %q", got)
	}
	if got := HeuristicReason(2.0, 2.0); got != "heuristic score 2.00 >= threshold 2.00" {
		t.Errorf("at threshold reason = %q", got)
	}
	if got := HeuristicReason(0, 2.0); got != "heuristic score 0.00 below threshold 2.00" {
		t.Errorf("below threshold reason = %q", got)
	}
}

func TestDecision_Accessors(t *testing.T) {
	if !(Decision{Verdict: VerdictPhishing}).IsPhishing() {
		t.Error("expected IsPhishing")
	}
	if !(Decision{Verdict: VerdictSafe}).IsSafe() {
		t.Error("expected IsSafe")
	}
	if (Decision{}).IsPhishing() || (Decision{}).IsSafe() {
		t.Error("zero decision should be unknown")
	}
}
