package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseRenderID tests render ID parsing
func TestParseRenderID(t *testing.T) {
	valid := NewRenderID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseRenderID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if !test.hasError && result.String() != test.input {
			t.Errorf("Expected %s, got %s", test.input, result)
		}
	}
}

// TestComputeViewHash tests that view fingerprints ignore row order but not membership
func TestComputeViewHash(t *testing.T) {
	ds := ComputeDatasetHash([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})

	a := ComputeViewHash(ds, []int{0, 1, 5})
	b := ComputeViewHash(ds, []int{5, 0, 1})
	c := ComputeViewHash(ds, []int{0, 1})

	if a != b {
		t.Errorf("Expected order-independent hash, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different row sets to hash differently")
	}

	other := ComputeDatasetHash([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "5"}})
	if ComputeViewHash(other, []int{0, 1, 5}) == a {
		t.Error("Expected different datasets to hash differently")
	}
}

// TestHashShort tests log-friendly truncation
func TestHashShort(t *testing.T) {
	h := NewHash([]byte("hello"))
	if len(h.Short()) != 12 {
		t.Errorf("Expected 12 characters, got %d", len(h.Short()))
	}
	if Hash("abc").Short() != "abc" {
		t.Errorf("Expected short hash to be returned unchanged")
	}
}
