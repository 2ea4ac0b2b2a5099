package valueobjects

import (
	"errors"
	"testing"

	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
)

func TestParseGroupKey(t *testing.T) {
	cases := []struct {
		raw  string
		want GroupKey
	}{
		{"3-A-ADS", GroupKey{Year: "3", Section: "A", Department: "ADS"}},
		{"3-A", GroupKey{Year: "3", Section: "A"}},
		{"3-ADS", GroupKey{Year: "3", Department: "ADS"}},
		{"3", GroupKey{Year: "3"}},
		{" 2-b-it ", GroupKey{Year: "2", Section: "B", Department: "IT"}},
		{"3-f", GroupKey{Year: "3", Section: "F"}},
		{"3-CSE", GroupKey{Year: "3", Department: "CSE"}},
	}
	for _, tc := range cases {
		got, err := ParseGroupKey(tc.raw)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseGroupKeyRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "  ", "3--ADS", "3-A-ADS-EXTRA", "-A"} {
		if _, err := ParseGroupKey(raw); !errors.Is(err, domainerrors.ErrInvalidGroupKey) {
			t.Fatalf("%q: expected ErrInvalidGroupKey, got %v", raw, err)
		}
	}
}

func TestGroupKeyString(t *testing.T) {
	key := GroupKey{Year: "3", Section: "A", Department: "ADS"}
	if key.String() != "3-A-ADS" {
		t.Fatalf("unexpected string %q", key.String())
	}
	if (GroupKey{Year: "3"}).String() != "3" {
		t.Fatal("year-only key should render bare")
	}
	if !(GroupKey{}).IsZero() {
		t.Fatal("empty key should be zero")
	}
}
