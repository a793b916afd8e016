package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials       int
	ZeroGuestTrials   int
	TotalFillDraws    int
	TotalRejections   int
	RejectionRate     float64 // TotalRejections / TotalFillDraws; 0 when nothing was drawn
	MaxRejections     int     // most rejections in a single trial
	MaxRejectionTrial int     // trial index holding MaxRejections; -1 if none
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{MaxRejectionTrial: -1}
	if st == nil {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	for _, r := range st.Trials {
		if r.Guests == 0 {
			summary.ZeroGuestTrials++
		}
		summary.TotalFillDraws += r.FillDraws
		summary.TotalRejections += r.Rejections
		if r.Rejections > summary.MaxRejections {
			summary.MaxRejections = r.Rejections
			summary.MaxRejectionTrial = r.Trial
		}
	}
	if summary.TotalFillDraws > 0 {
		summary.RejectionRate = float64(summary.TotalRejections) / float64(summary.TotalFillDraws)
	}
	return summary
}
