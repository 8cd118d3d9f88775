package model

import "testing"

// TestNextDueDate covers every frequency step, including the month-end
// clamp contract.
func TestNextDueDate(t *testing.T) {
	tests := []struct {
		date string
		freq Frequency
		want string
	}{
		{"2025-01-01", FreqDaily, "2025-01-02"},
		{"2025-01-31", FreqDaily, "2025-02-01"},
		{"2025-01-01", FreqWeekly, "2025-01-08"},
		{"2025-12-29", FreqWeekly, "2026-01-05"},
		{"2025-01-15", FreqMonthly, "2025-02-15"},
		// Month-end additions clamp to the last day of the target month;
		// Jan 31 + monthly must land in February, never March.
		{"2025-01-31", FreqMonthly, "2025-02-28"},
		{"2024-01-31", FreqMonthly, "2024-02-29"}, // leap year
		{"2025-03-31", FreqMonthly, "2025-04-30"},
		{"2025-01-31", FreqQuarterly, "2025-04-30"},
		{"2025-11-30", FreqQuarterly, "2026-02-28"},
		{"2025-06-15", FreqYearly, "2026-06-15"},
		{"2024-02-29", FreqYearly, "2025-02-28"},
	}

	for _, tt := range tests {
		got, err := NextDueDate(tt.date, tt.freq)
		if err != nil {
			t.Fatalf("NextDueDate(%s, %s) failed: %v", tt.date, tt.freq, err)
		}
		if got != tt.want {
			t.Errorf("NextDueDate(%s, %s) = %s, want %s", tt.date, tt.freq, got, tt.want)
		}
	}
}

func TestNextDueDateRejectsOnce(t *testing.T) {
	if _, err := NextDueDate("2025-01-01", FreqOnce); err == nil {
		t.Fatal("expected error advancing a once frequency")
	}
}

func TestNextDueDateRejectsMalformedDate(t *testing.T) {
	if _, err := NextDueDate("January 1", FreqDaily); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
