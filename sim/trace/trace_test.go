package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"trials", true},
		{"", true},
		{"decisions", false},
		{"TRIALS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNewSimulationTrace_NoneIsNil(t *testing.T) {
	if st := NewSimulationTrace(TraceLevelNone); st != nil {
		t.Errorf("expected nil trace for level none, got %+v", st)
	}
	if st := NewSimulationTrace(""); st != nil {
		t.Errorf("expected nil trace for empty level, got %+v", st)
	}
}

func TestRecordTrial_AppendsInOrder(t *testing.T) {
	// GIVEN a trial-level trace
	st := NewSimulationTrace(TraceLevelTrials)

	// WHEN two trials are recorded
	st.RecordTrial(TrialRecord{Trial: 0, Guests: 3})
	st.RecordTrial(TrialRecord{Trial: 1, Guests: 0})

	// THEN both are stored in order
	if len(st.Trials) != 2 {
		t.Fatalf("expected 2 records, got %d", len(st.Trials))
	}
	if st.Trials[0].Trial != 0 || st.Trials[1].Trial != 1 {
		t.Errorf("records out of order: %+v", st.Trials)
	}
}

func TestRecordTrial_NilTraceIsNoop(t *testing.T) {
	var st *SimulationTrace
	st.RecordTrial(TrialRecord{Trial: 0}) // must not panic
}
