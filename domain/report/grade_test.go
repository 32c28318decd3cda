package report

import (
	"testing"
)

// TestGradeForBoundaries tests the closed-open banding: a score equal to a
// cutoff earns that grade
func TestGradeForBoundaries(t *testing.T) {
	bands := DefaultGradeBands()

	tests := []struct {
		score    float64
		expected QualityGrade
	}{
		{100, GradeA},
		{90, GradeA},
		{89.99, GradeB},
		{80, GradeB},
		{79.99, GradeC},
		{70, GradeC},
		{69.99, GradeD},
		{60, GradeD},
		{59.99, GradeF},
		{0, GradeF},
	}

	for _, test := range tests {
		if got := bands.GradeFor(test.score); got != test.expected {
			t.Errorf("GradeFor(%v) = %s, want %s", test.score, got, test.expected)
		}
	}
}

// TestGradeForCustomBands tests that recalibrated cutoffs are honored
func TestGradeForCustomBands(t *testing.T) {
	bands := GradeBands{A: 95, B: 85, C: 75, D: 65}

	if got := bands.GradeFor(90); got != GradeB {
		t.Errorf("GradeFor(90) with A cutoff 95 = %s, want %s", got, GradeB)
	}
	if got := bands.GradeFor(95); got != GradeA {
		t.Errorf("GradeFor(95) with A cutoff 95 = %s, want %s", got, GradeA)
	}
}
