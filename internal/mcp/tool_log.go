package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	argPath        = "path"
	argPretty      = "pretty"
	argHash        = "hash"
	argDate        = "date"
	argAuthorName  = "authorName"
	argAuthorEmail = "authorEmail"
	argSubject     = "subject"
	argBody        = "body"
	argLimit       = "limit"
	argDateFormat  = "dateFormat"
)

// fieldArgs maps boolean tool arguments to the fields they select.
var fieldArgs = map[string]history.Field{
	argHash:        history.FieldHash,
	argDate:        history.FieldDate,
	argAuthorName:  history.FieldAuthorName,
	argAuthorEmail: history.FieldAuthorEmail,
	argSubject:     history.FieldSubject,
	argBody:        history.FieldBody,
}

var knownArgs = []string{
	argPath, argPretty, argHash, argDate, argAuthorName, argAuthorEmail,
	argSubject, argBody, argLimit, argDateFormat,
}

func registerLogTool(s *server.MCPServer, hctx *HandlerContext) {
	tool := mcp.NewTool("git_log",
		mcp.WithDescription("Return the commit history of a git repository as JSON, newest first. "+
			"Each commit contains only the selected fields; author name and email are nested under \"author\". "+
			"With no field selected, git's native log text is returned per commit."),
		mcp.WithString(argPath,
			mcp.Description("Path inside the repository (default: server working directory)"),
		),
		mcp.WithBoolean(argPretty, mcp.Description("Return git's native formatting when no field is selected")),
		mcp.WithBoolean(argHash, mcp.Description("Include the full commit hash")),
		mcp.WithBoolean(argDate, mcp.Description("Include the author date")),
		mcp.WithBoolean(argAuthorName, mcp.Description("Include author.name")),
		mcp.WithBoolean(argAuthorEmail, mcp.Description("Include author.email")),
		mcp.WithBoolean(argSubject, mcp.Description("Include the subject line")),
		mcp.WithBoolean(argBody, mcp.Description("Include the message body")),
		mcp.WithNumber(argLimit, mcp.Description("Maximum number of commits (most recent first)")),
		mcp.WithString(argDateFormat, mcp.Description("git --date format, e.g. iso-strict, short, relative (default from .gitlogjson.toml)")),
	)
	s.AddTool(tool, handleLog(hctx))
}

func handleLog(hctx *HandlerContext) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		opts, err := parseLogArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if opts.DateFormat == "" && hctx.Config != nil {
			opts.DateFormat = hctx.Config.DateFormat
		}

		path := hctx.WorkDir
		if p, ok := args[argPath].(string); ok && p != "" {
			path = p
			if !filepath.IsAbs(p) {
				path = filepath.Join(hctx.WorkDir, p)
			}
		}

		res, err := history.Compute(hctx.Runner, path, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalResult(res.Value())
	}
}

// parseLogArgs converts tool arguments to options. Unknown keys and
// mistyped values are rejected.
func parseLogArgs(args map[string]any) (history.Options, error) {
	var opts history.Options

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		v := args[key]
		if !slices.Contains(knownArgs, key) {
			return opts, fmt.Errorf("unknown argument %q (valid: %s)", key, strings.Join(knownArgs, ", "))
		}

		switch key {
		case argPath, argDateFormat:
			s, ok := v.(string)
			if !ok {
				return opts, fmt.Errorf("argument %q must be a string", key)
			}
			if key == argDateFormat {
				opts.DateFormat = s
			}
		case argLimit:
			n, ok := positiveInt(v)
			if !ok {
				return opts, fmt.Errorf("argument %q must be a positive integer", key)
			}
			opts.Limit = n
		case argPretty:
			b, ok := v.(bool)
			if !ok {
				return opts, fmt.Errorf("argument %q must be a boolean", key)
			}
			opts.Pretty = b
		default:
			b, ok := v.(bool)
			if !ok {
				return opts, fmt.Errorf("argument %q must be a boolean", key)
			}
			if b {
				opts.Select(fieldArgs[key])
			}
		}
	}

	return opts, opts.Validate()
}

// positiveInt accepts JSON numbers (float64) and Go ints with an integral
// value of at least 1.
func positiveInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, n >= 1
	}
	return 0, false
}

func marshalResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
