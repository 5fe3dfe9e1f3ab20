package keyword

import "sort"

// Record is the per-token validation outcome, kept in input order.
type Record struct {
	Original string
	Detected Detected
	Verdict  Verdict
}

// Outcome holds the converted keywords and counts for one token sequence.
type Outcome struct {
	Keywords       []string // deduplicated, sorted
	Records        []Record // one per token, input order
	DuplicateCount int
	InvalidCount   int
}

// Aggregate detects, validates and converts every token to target.
// Invalid tokens are counted and skipped. A valid token whose converted form
// was already produced counts as a duplicate.
func Aggregate(tokens []string, target Type) Outcome {
	out := Outcome{Records: make([]Record, 0, len(tokens))}
	seen := make(map[string]struct{}, len(tokens))

	for _, tok := range tokens {
		d := Detect(tok)
		v := Validate(d.Bare)
		out.Records = append(out.Records, Record{Original: tok, Detected: d, Verdict: v})

		if !v.Valid {
			out.InvalidCount++
			continue
		}

		converted := Wrap(d.Bare, target)
		if _, dup := seen[converted]; dup {
			out.DuplicateCount++
			continue
		}
		seen[converted] = struct{}{}
	}

	out.Keywords = make([]string, 0, len(seen))
	for kw := range seen {
		out.Keywords = append(out.Keywords, kw)
	}
	sort.Strings(out.Keywords)

	return out
}
