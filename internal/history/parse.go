package history

import (
	"fmt"
	"strings"
)

// ParseError reports a commit segment that does not carry the expected
// number of fields.
type ParseError struct {
	Index   int
	Segment string
	Want    int
	Got     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed commit segment %d: expected %d fields, got %d: %q", e.Index, e.Want, e.Got, e.Segment)
}

// Parse splits raw git log output produced with f back into commits.
// The result is truncated to f.Limit when set.
func (f Format) Parse(raw string) (*Result, error) {
	segments := f.segments(raw)

	if f.Passthrough() {
		blocks := make([]string, len(segments))
		for i, seg := range segments {
			blocks[i] = strings.TrimLeft(seg, "\n")
		}
		return &Result{Blocks: blocks}, nil
	}

	commits := make([]Commit, 0, len(segments))
	for i, seg := range segments {
		parts := strings.SplitN(seg, f.FieldDelim, len(f.Fields))
		if len(parts) < len(f.Fields) {
			return nil, &ParseError{Index: i, Segment: seg, Want: len(f.Fields), Got: len(parts)}
		}

		var c Commit
		for j, field := range f.Fields {
			c.set(field, strings.TrimSpace(parts[j]))
		}
		commits = append(commits, c)
	}

	return &Result{Fields: f.Fields, Commits: commits}, nil
}

// segments splits raw on the record delimiter, drops the empty trailing
// segment left by a final terminator and applies the limit.
func (f Format) segments(raw string) []string {
	segs := strings.Split(raw, f.RecordDelim)
	if n := len(segs); n > 0 && strings.TrimSpace(segs[n-1]) == "" {
		segs = segs[:n-1]
	}
	if f.Limit > 0 && len(segs) > f.Limit {
		segs = segs[:f.Limit]
	}
	return segs
}
