package report

// GradeBands maps score cutoffs to letter grades. Bands are closed-open
// intervals: a score equal to a cutoff earns that grade.
type GradeBands struct {
	A float64
	B float64
	C float64
	D float64
}

// DefaultGradeBands returns the standard 90/80/70/60 banding
func DefaultGradeBands() GradeBands {
	return GradeBands{A: 90, B: 80, C: 70, D: 60}
}

// GradeFor bands a quality score into a letter grade
func (b GradeBands) GradeFor(score float64) QualityGrade {
	switch {
	case score >= b.A:
		return GradeA
	case score >= b.B:
		return GradeB
	case score >= b.C:
		return GradeC
	case score >= b.D:
		return GradeD
	default:
		return GradeF
	}
}
