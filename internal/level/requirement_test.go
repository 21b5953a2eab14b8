package level

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		in       string
		expected Requirement
	}{
		{"plate1", PlateRequirement{PlateID: "plate1"}},
		{" plate1 ", PlateRequirement{PlateID: "plate1"}},
		{"plate1,plate2", AllRequirement{PlateIDs: []string{"plate1", "plate2"}}},
		{"a, b, c", AllRequirement{PlateIDs: []string{"a", "b", "c"}}},
		{"plate1|plate2", AnyRequirement{PlateIDs: []string{"plate1", "plate2"}}},
		{"a | b", AnyRequirement{PlateIDs: []string{"a", "b"}}},
		{"timed:5:plate1", TimedRequirement{PlateID: "plate1", Seconds: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRequirement(tc.in)
			if err != nil {
				t.Fatalf("ParseRequirement(%q) error: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ParseRequirement(%q) = %#v, expected %#v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestParseRequirementErrors(t *testing.T) {
	bad := []string{
		"",
		"timed:5",
		"timed:x:plate1",
		"timed:0:plate1",
		"timed:5:",
		"timed:5:a,b",
		"plate1,,plate2",
		"a|",
		"a,b|c",
		"timed:5:a|b",
		"latch:plate1",
	}

	for _, in := range bad {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRequirement(in)
			if !errors.Is(err, ErrBadRequirement) {
				t.Errorf("ParseRequirement(%q) error = %v, expected ErrBadRequirement", in, err)
			}
		})
	}
}

func TestRequirementStringRoundTrip(t *testing.T) {
	for _, in := range []string{"plate1", "plate1,plate2", "plate1|plate2", "timed:5:plate1"} {
		req, err := ParseRequirement(in)
		if err != nil {
			t.Fatalf("ParseRequirement(%q) error: %v", in, err)
		}
		if req.String() != in {
			t.Errorf("String() = %q, expected %q", req.String(), in)
		}
	}
}
