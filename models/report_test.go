package models

import "testing"

func checks(passed ...bool) []CheckResult {
	out := make([]CheckResult, len(passed))
	for i, p := range passed {
		out[i] = CheckResult{Check: "c", Passed: p}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []CheckResult
		want    Summary
	}{
		{"empty report is secure", nil, Summary{0, 0, 0, TierSecure}},
		{"all passed", checks(true, true, true), Summary{3, 3, 0, TierSecure}},
		{"one of four failed", checks(true, true, true, false), Summary{4, 3, 1, TierNeedsAttention}},
		{"exactly half failed", checks(true, false), Summary{2, 1, 1, TierHighRisk}},
		{"majority failed", checks(false, false, true), Summary{3, 1, 2, TierHighRisk}},
		{"all failed", checks(false), Summary{1, 0, 1, TierHighRisk}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.results)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
			if got.Failed != got.Total-got.Passed {
				t.Errorf("failed %d != total %d - passed %d", got.Failed, got.Total, got.Passed)
			}
			if (got.Tier == TierSecure) != (got.Failed == 0) {
				t.Errorf("tier %s inconsistent with failed=%d", got.Tier, got.Failed)
			}
		})
	}
}

func TestSummarizeDoesNotMutate(t *testing.T) {
	in := []CheckResult{{Check: "CSP", Passed: false, Severity: SeverityHigh}, {Check: "HTTPS", Passed: true}}
	Summarize(in)
	if in[0].Check != "CSP" || in[1].Check != "HTTPS" || in[0].Severity != SeverityHigh {
		t.Errorf("input mutated: %+v", in)
	}
}

func TestShowsSeverity(t *testing.T) {
	tests := []struct {
		c    CheckResult
		want bool
	}{
		{CheckResult{Passed: true, Severity: SeverityHigh}, false},
		{CheckResult{Passed: false, Severity: SeverityHigh}, true},
		{CheckResult{Passed: false, Severity: SeverityNone}, false},
		{CheckResult{Passed: false}, false},
	}
	for _, tt := range tests {
		if got := tt.c.ShowsSeverity(); got != tt.want {
			t.Errorf("ShowsSeverity(%+v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2024-05-01T12:30:00.123456", "2024-05-01T12:30:00Z", "2024-05-01T12:30:00+02:00", "2024-05-01 12:30:00"} {
		if _, ok := ParseTimestamp(s); !ok {
			t.Errorf("ParseTimestamp(%q) failed", s)
		}
	}
	if _, ok := ParseTimestamp("yesterday"); ok {
		t.Error("ParseTimestamp(yesterday) should fail")
	}
	if got := DisplayTime("not a time"); got != "not a time" {
		t.Errorf("DisplayTime fallback = %q", got)
	}
}

func TestPaginationState(t *testing.T) {
	p := PaginationState{CurrentPage: 3, PageSize: 10, TotalItems: 25}
	if got := p.TotalPages(); got != 3 {
		t.Fatalf("TotalPages() = %d, want 3", got)
	}
	start, end := p.Bounds()
	if end-start != 5 || start != 20 {
		t.Errorf("page 3 bounds = [%d,%d), want [20,25)", start, end)
	}

	empty := PaginationState{CurrentPage: 4, PageSize: 10}
	if got := empty.TotalPages(); got != 1 {
		t.Errorf("empty TotalPages() = %d, want 1", got)
	}
	if got := empty.Clamp().CurrentPage; got != 1 {
		t.Errorf("empty Clamp() page = %d, want 1", got)
	}
	if got := (PaginationState{CurrentPage: -2, PageSize: 10, TotalItems: 5}).Clamp().CurrentPage; got != 1 {
		t.Errorf("negative page clamped to %d, want 1", got)
	}
}
