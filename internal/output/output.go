package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Format selects how a history result is rendered.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTable}

// ParseFormat resolves a format name. Empty means FormatJSON.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (must be json, yaml or table)", s)
}

// ErrorEnvelope wraps JSON error output.
type ErrorEnvelope struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// Error code constants.
const (
	ErrGeneral = "GENERAL_ERROR"
	ErrProcess = "PROCESS_ERROR"
	ErrParse   = "PARSE_ERROR"
)

// ErrorCode classifies err for the JSON error envelope.
func ErrorCode(err error) string {
	var perr *git.ProcessError
	if errors.As(err, &perr) {
		return ErrProcess
	}
	var parseErr *history.ParseError
	if errors.As(err, &parseErr) {
		return ErrParse
	}
	return ErrGeneral
}

// ExitCode maps err to a process exit code: 2 for git failures, 3 for
// unparseable git output, 1 otherwise.
func ExitCode(err error) int {
	switch ErrorCode(err) {
	case ErrProcess:
		return 2
	case ErrParse:
		return 3
	default:
		return 1
	}
}

// WriteJSON writes data to w with pretty-printed indentation.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteYAML writes data to w as a YAML document.
func WriteYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSONError writes a JSON error envelope to w.
func WriteJSONError(w io.Writer, version, command string, err error) error {
	env := ErrorEnvelope{
		Version: version,
		Command: command,
		Error:   err.Error(),
		Code:    ErrorCode(err),
	}
	return WriteJSON(w, env)
}

// IsJSON returns true if the --format flag of cmd (or its parents) is json.
// Returns false if the flag is not registered.
func IsJSON(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("format")
	if f == nil {
		f = cmd.InheritedFlags().Lookup("format")
	}
	if f == nil {
		return false
	}
	format, err := ParseFormat(f.Value.String())
	return err == nil && format == FormatJSON
}
