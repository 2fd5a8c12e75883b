package history

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultDateFormat is passed to git's --date when no format is configured.
const DefaultDateFormat = "iso-strict"

// ErrUnknownField is returned when a field name does not match any selectable field.
var ErrUnknownField = errors.New("unknown field")

// Options selects which commit fields are emitted and how many commits are
// returned. Field flags are independent; any subset is valid, including none.
type Options struct {
	Hash        bool
	Date        bool
	AuthorName  bool
	AuthorEmail bool
	Subject     bool
	Body        bool

	// Pretty requests git's native formatting. It only takes effect when no
	// field flag is set, which is also the default for an empty selection.
	Pretty bool

	// Limit caps the number of commits. Zero means no limit.
	Limit int

	// DateFormat is any value git accepts for --date. Empty means DefaultDateFormat.
	DateFormat string
}

// Field identifies one selectable commit value.
type Field int

const (
	FieldHash Field = iota
	FieldSubject
	FieldDate
	FieldBody
	FieldAuthorName
	FieldAuthorEmail
)

// FieldOrder is the order fields are requested from git and assigned back
// from its output. It matches the key order of a rendered Commit.
var FieldOrder = []Field{
	FieldHash,
	FieldSubject,
	FieldDate,
	FieldBody,
	FieldAuthorName,
	FieldAuthorEmail,
}

var fieldNames = map[Field]string{
	FieldHash:        "hash",
	FieldSubject:     "subject",
	FieldDate:        "date",
	FieldBody:        "body",
	FieldAuthorName:  "author-name",
	FieldAuthorEmail: "author-email",
}

// placeholders maps fields to git pretty-format placeholders.
var placeholders = map[Field]string{
	FieldHash:        "%H",
	FieldSubject:     "%s",
	FieldDate:        "%ad",
	FieldBody:        "%b",
	FieldAuthorName:  "%an",
	FieldAuthorEmail: "%ae",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Placeholder returns the git pretty-format placeholder for f.
func (f Field) Placeholder() string {
	return placeholders[f]
}

// FieldNames returns the accepted field names in canonical order.
func FieldNames() []string {
	names := make([]string, len(FieldOrder))
	for i, f := range FieldOrder {
		names[i] = f.String()
	}
	return names
}

// ParseField resolves a field name. Kebab, snake and camel case spellings
// of the author fields are accepted.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	switch key {
	case "hash":
		return FieldHash, nil
	case "subject":
		return FieldSubject, nil
	case "date":
		return FieldDate, nil
	case "body":
		return FieldBody, nil
	case "authorname":
		return FieldAuthorName, nil
	case "authoremail":
		return FieldAuthorEmail, nil
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknownField, name, strings.Join(FieldNames(), ", "))
}

// ParseFieldNames builds Options with the named fields selected.
func ParseFieldNames(names []string) (Options, error) {
	var opts Options
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return Options{}, err
		}
		opts.Select(f)
	}
	return opts, nil
}

// Select turns on the flag for f.
func (o *Options) Select(f Field) {
	switch f {
	case FieldHash:
		o.Hash = true
	case FieldSubject:
		o.Subject = true
	case FieldDate:
		o.Date = true
	case FieldBody:
		o.Body = true
	case FieldAuthorName:
		o.AuthorName = true
	case FieldAuthorEmail:
		o.AuthorEmail = true
	}
}

// Has reports whether f is selected.
func (o Options) Has(f Field) bool {
	switch f {
	case FieldHash:
		return o.Hash
	case FieldSubject:
		return o.Subject
	case FieldDate:
		return o.Date
	case FieldBody:
		return o.Body
	case FieldAuthorName:
		return o.AuthorName
	case FieldAuthorEmail:
		return o.AuthorEmail
	}
	return false
}

// Fields returns the selected fields in FieldOrder.
func (o Options) Fields() []Field {
	var fields []Field
	for _, f := range FieldOrder {
		if o.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Passthrough reports whether git's native output is returned instead of
// structured commits.
func (o Options) Passthrough() bool {
	return len(o.Fields()) == 0
}

// Validate rejects option values git would misinterpret.
func (o Options) Validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", o.Limit)
	}
	if strings.ContainsAny(o.DateFormat, "\n\x00") {
		return fmt.Errorf("invalid date format %q", o.DateFormat)
	}
	return nil
}

func (o Options) dateFormat() string {
	if o.DateFormat == "" {
		return DefaultDateFormat
	}
	return o.DateFormat
}
