package history

import (
	"strconv"
	"strings"
)

const (
	// FieldDelim separates field values within a commit segment. Its two
	// bytes differ, so a value ending in either byte cannot form a false
	// match with the delimiter that follows it.
	FieldDelim = "\x1e\x1f"

	// RecordDelim terminates each commit segment. git emits it for -z and
	// commit messages cannot contain it.
	RecordDelim = "\x00"

	fieldDelimPlaceholder = "%x1e%x1f"
)

// Format is the contract between the git invocation and the parser: both
// sides must agree on field order and delimiters.
type Format struct {
	// Args is the full git argument list, starting with "log".
	Args        []string
	Fields      []Field
	FieldDelim  string
	RecordDelim string
	Limit       int
}

// BuildFormat derives the git log arguments for opts. With no field
// selected it requests git's default medium format for passthrough.
func BuildFormat(opts Options) Format {
	fields := opts.Fields()
	args := []string{"log", "-z", "--no-color"}

	if len(fields) == 0 {
		args = append(args, "--pretty=medium")
	} else {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f.Placeholder()
		}
		args = append(args, "--pretty=tformat:"+strings.Join(parts, fieldDelimPlaceholder))
		if opts.Date {
			args = append(args, "--date="+opts.dateFormat())
		}
	}

	if opts.Limit > 0 {
		args = append(args, "--max-count="+strconv.Itoa(opts.Limit))
	}

	return Format{
		Args:        args,
		Fields:      fields,
		FieldDelim:  FieldDelim,
		RecordDelim: RecordDelim,
		Limit:       opts.Limit,
	}
}

// Passthrough reports whether the format requests native git output.
func (f Format) Passthrough() bool {
	return len(f.Fields) == 0
}
