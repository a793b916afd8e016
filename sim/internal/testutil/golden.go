// Package testutil provides shared test infrastructure for the champagne simulator.
// It holds the golden dataset types and assertion helpers used across the sim/
// sub-package tests. It deliberately imports none of them, so any package can use it
// from internal tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Glasses map[string]GoldenGlass `json:"glasses"`
	Volumes []GoldenVolumeCase     `json:"volumes"`
	Lambdas []GoldenLambdaCase     `json:"lambdas"`
}

// GoldenGlass is a glass geometry in the dataset's field naming.
type GoldenGlass struct {
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
	X3    float64 `json:"x3"`
	X4    float64 `json:"x4"`
	RFoot float64 `json:"r_foot"`
	RStem float64 `json:"r_stem"`
	RBowl float64 `json:"r_bowl"`
	RRim  float64 `json:"r_rim"`
}

// GoldenVolumeCase is an analytically derived volume between two heights.
// Full-segment values are closed-form; partial-segment values come from a
// high-resolution reference integration of the same profile.
type GoldenVolumeCase struct {
	Glass       string  `json:"glass"`
	Description string  `json:"description"`
	A           float64 `json:"a"`
	B           float64 `json:"b"`
	VolumeCm3   float64 `json:"volume_cm3"`
}

// GoldenLambdaCase is an expected guest rate for one weather triple.
type GoldenLambdaCase struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Lambda      float64 `json:"lambda"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// TestdataPath returns the absolute path of a file under the repo-root testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
