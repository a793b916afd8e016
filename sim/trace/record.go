// Package trace provides per-trial sampling records for batch diagnostics.
// This package has no dependencies on sim/ or its other sub-packages; it stores pure
// data types.
package trace

// TrialRecord captures the sampling work done for a single simulated party.
type TrialRecord struct {
	Trial      int     // zero-based trial index within the batch
	Lambda     float64 // expected guest count the guest draw used
	Guests     int
	Glasses    int
	FillDraws  int // normal draws made while sampling fill heights (accepted + rejected)
	Rejections int // fill-height draws outside (X2, X4]
}
