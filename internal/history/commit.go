package history

// Commit is one structured log entry. A nil field was not selected; a
// selected field with an empty value is a non-nil pointer to "".
// Field declaration order is the rendered key order.
type Commit struct {
	Hash    *string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Subject *string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Date    *string `json:"date,omitempty" yaml:"date,omitempty"`
	Body    *string `json:"body,omitempty" yaml:"body,omitempty"`
	Author  *Author `json:"author,omitempty" yaml:"author,omitempty"`
}

// Author groups the author fields of a Commit.
type Author struct {
	Name  *string `json:"name,omitempty" yaml:"name,omitempty"`
	Email *string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (c *Commit) set(f Field, v string) {
	switch f {
	case FieldHash:
		c.Hash = &v
	case FieldSubject:
		c.Subject = &v
	case FieldDate:
		c.Date = &v
	case FieldBody:
		c.Body = &v
	case FieldAuthorName:
		c.author().Name = &v
	case FieldAuthorEmail:
		c.author().Email = &v
	}
}

func (c *Commit) author() *Author {
	if c.Author == nil {
		c.Author = &Author{}
	}
	return c.Author
}

// Get returns the value of f and whether it was selected.
func (c Commit) Get(f Field) (string, bool) {
	var p *string
	switch f {
	case FieldHash:
		p = c.Hash
	case FieldSubject:
		p = c.Subject
	case FieldDate:
		p = c.Date
	case FieldBody:
		p = c.Body
	case FieldAuthorName:
		if c.Author != nil {
			p = c.Author.Name
		}
	case FieldAuthorEmail:
		if c.Author != nil {
			p = c.Author.Email
		}
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Result is the outcome of a history computation. Exactly one of Commits
// (structured mode) or Blocks (passthrough mode) is meaningful.
type Result struct {
	Fields  []Field
	Commits []Commit
	Blocks  []string
}

// Passthrough reports whether r holds native text blocks.
func (r *Result) Passthrough() bool {
	return len(r.Fields) == 0
}

// Len returns the number of commits in r.
func (r *Result) Len() int {
	if r.Passthrough() {
		return len(r.Blocks)
	}
	return len(r.Commits)
}

// Value returns the renderable payload: []string in passthrough mode,
// []Commit otherwise. Never nil.
func (r *Result) Value() any {
	if r.Passthrough() {
		if r.Blocks == nil {
			return []string{}
		}
		return r.Blocks
	}
	if r.Commits == nil {
		return []Commit{}
	}
	return r.Commits
}
