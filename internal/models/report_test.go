package models

import "testing"

func TestReportStatusCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from ReportStatus
		to   ReportStatus
		ok   bool
	}{
		{name: "pending to reviewed", from: ReportStatusPending, to: ReportStatusReviewed, ok: true},
		{name: "pending to resolved", from: ReportStatusPending, to: ReportStatusResolved, ok: true},
		{name: "pending to dismissed", from: ReportStatusPending, to: ReportStatusDismissed, ok: true},
		{name: "reviewed to resolved", from: ReportStatusReviewed, to: ReportStatusResolved, ok: true},
		{name: "reviewed to dismissed", from: ReportStatusReviewed, to: ReportStatusDismissed, ok: true},
		{name: "reviewed back to pending", from: ReportStatusReviewed, to: ReportStatusPending, ok: false},
		{name: "resolved is terminal", from: ReportStatusResolved, to: ReportStatusDismissed, ok: false},
		{name: "dismissed is terminal", from: ReportStatusDismissed, to: ReportStatusResolved, ok: false},
		{name: "resolved to reviewed", from: ReportStatusResolved, to: ReportStatusReviewed, ok: false},
		{name: "no self transition", from: ReportStatusPending, to: ReportStatusPending, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.ok {
				t.Fatalf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
			}
		})
	}
}

func TestReportStatusTerminal(t *testing.T) {
	t.Parallel()

	for _, s := range []ReportStatus{ReportStatusPending, ReportStatusReviewed} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
	for _, s := range []ReportStatus{ReportStatusResolved, ReportStatusDismissed} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
}
