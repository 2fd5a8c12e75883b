package history

import (
	"github.com/lugassawan/gitlogjson/internal/git"
)

// Compute runs git log in targetPath with the arguments derived from opts
// and parses its output. A git failure is returned unchanged as a
// *git.ProcessError; malformed output yields a *ParseError.
func Compute(r git.Runner, targetPath string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := BuildFormat(opts)
	out, err := r.RunInDir(targetPath, f.Args...)
	if err != nil {
		return nil, err
	}
	return f.Parse(out)
}
