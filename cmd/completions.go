package cmd

import (
	"strings"

	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/lugassawan/gitlogjson/internal/output"
	"github.com/spf13/cobra"
)

// completeFieldNames completes the last element of a comma-separated
// --fields value, skipping names already listed.
func completeFieldNames(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, partial = toComplete[:i+1], toComplete[i+1:]
	}

	used := map[string]bool{}
	for name := range strings.SplitSeq(prefix, ",") {
		used[strings.TrimSpace(name)] = true
	}

	var names []string
	for _, name := range history.FieldNames() {
		if used[name] || !strings.HasPrefix(name, partial) {
			continue
		}
		names = append(names, prefix+name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFormats completes --format values.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var formats []string
	for _, f := range output.Formats {
		if strings.HasPrefix(string(f), toComplete) {
			formats = append(formats, string(f))
		}
	}
	return formats, cobra.ShellCompDirectiveNoFileComp
}
