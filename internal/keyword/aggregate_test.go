package keyword

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tokens         []string
		target         Type
		wantKeywords   []string
		wantDuplicates int
		wantInvalid    int
	}{
		{
			name:           "mixed notations to phrase",
			tokens:         []string{"running shoes", "[red shoes]", `"blue shoes"`, "running shoes"},
			target:         Phrase,
			wantKeywords:   []string{`"blue shoes"`, `"red shoes"`, `"running shoes"`},
			wantDuplicates: 1,
		},
		{
			name:           "same keyword in every notation to broad",
			tokens:         []string{`"foo"`, "foo (broad)", "[foo]"},
			target:         Broad,
			wantKeywords:   []string{"foo"},
			wantDuplicates: 2,
		},
		{
			name:         "invalid tokens skipped and counted",
			tokens:       []string{"shoes@sale", "boots", "[]", "[a[b]"},
			target:       Exact,
			wantKeywords: []string{"[boots]"},
			wantInvalid:  3,
		},
		{
			name:         "sorted lexicographically",
			tokens:       []string{"b", "C", "a"},
			target:       Broad,
			wantKeywords: []string{"C", "a", "b"},
		},
		{
			name:         "no tokens",
			tokens:       nil,
			target:       Exact,
			wantKeywords: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Aggregate(tt.tokens, tt.target)

			if diff := cmp.Diff(tt.wantKeywords, got.Keywords); diff != "" {
				t.Errorf("keywords mismatch (-want +got):\n%s", diff)
			}
			if got.DuplicateCount != tt.wantDuplicates {
				t.Errorf("DuplicateCount = %d, want %d", got.DuplicateCount, tt.wantDuplicates)
			}
			if got.InvalidCount != tt.wantInvalid {
				t.Errorf("InvalidCount = %d, want %d", got.InvalidCount, tt.wantInvalid)
			}
			if len(got.Records) != len(tt.tokens) {
				t.Errorf("len(Records) = %d, want %d", len(got.Records), len(tt.tokens))
			}
		})
	}
}

func TestAggregate_RecordsInInputOrder(t *testing.T) {
	t.Parallel()

	tokens := []string{"zeta@", "alpha", "[beta]"}
	got := Aggregate(tokens, Broad)

	want := []Record{
		{Original: "zeta@", Detected: Detected{Broad, "zeta@"}, Verdict: Verdict{Kind: InvalidChar, Char: '@'}},
		{Original: "alpha", Detected: Detected{Broad, "alpha"}, Verdict: Verdict{Valid: true}},
		{Original: "[beta]", Detected: Detected{Exact, "beta"}, Verdict: Verdict{Valid: true}},
	}
	if diff := cmp.Diff(want, got.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_DuplicatesEqualValidMinusUnique(t *testing.T) {
	t.Parallel()

	tokens := []string{"a", "[a]", `"a"`, "b", "b (broad)", "c!", "[b]"}
	for _, target := range Types {
		got := Aggregate(tokens, target)
		valid := len(tokens) - got.InvalidCount
		if got.DuplicateCount != valid-len(got.Keywords) {
			t.Errorf("%v: DuplicateCount = %d, want valid(%d) - unique(%d)",
				target, got.DuplicateCount, valid, len(got.Keywords))
		}
	}
}
