package domain

import "testing"

func TestTableNames(t *testing.T) {
	if got := (InsuranceRequest{}).TableName(); got != "insurance_requests" {
		t.Fatalf("InsuranceRequest table = %q", got)
	}
	if got := (Decision{}).TableName(); got != "decisions" {
		t.Fatalf("Decision table = %q", got)
	}
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusApproved, true},
		{StatusRejected, true},
		{"", false},
	}
	for _, tc := range cases {
		r := InsuranceRequest{Status: tc.status}
		if got := r.IsTerminal(); got != tc.want {
			t.Fatalf("IsTerminal(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
