package trace

// TraceLevel controls the verbosity of trial tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTrials captures one sampling record per simulated party.
	TraceLevelTrials TraceLevel = "trials"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTrials: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects trial records during one batch run.
type SimulationTrace struct {
	Level  TraceLevel
	Trials []TrialRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can pass the result straight through.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	if level == TraceLevelNone || level == "" {
		return nil
	}
	return &SimulationTrace{
		Level:  level,
		Trials: make([]TrialRecord, 0),
	}
}

// RecordTrial appends a trial record. Safe to call on a nil trace (no-op).
func (st *SimulationTrace) RecordTrial(record TrialRecord) {
	if st == nil {
		return
	}
	st.Trials = append(st.Trials, record)
}
