package cli

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mithrel/viralscript/pkg/api"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "completion",
		Short:       "Generate shell completion scripts",
		Annotations: map[string]string{skipApp: "true"},
	}
	gen := &cobra.Command{
		Use:       "generate bash|zsh|fish",
		Short:     "Print a completion script for the given shell",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			default:
				return cmd.Root().GenFishCompletion(out, true)
			}
		},
		Annotations: map[string]string{skipApp: "true"},
	}
	cmd.AddCommand(gen)
	return cmd
}

func completeValues(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return scoreCompletions(toComplete, values), cobra.ShellCompDirectiveNoFileComp
	}
}

// scoreCompletions orders candidates by fuzzy match against input.
func scoreCompletions(input string, candidates []string) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(strings.ToLower(input), lowerAll(candidates))
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = candidates[m.Index]
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func registerFormCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("style", completeValues(enumStrings(api.LanguageStyles())))
	_ = cmd.RegisterFlagCompletionFunc("length", completeValues(enumStrings(api.ContentLengths())))
	_ = cmd.RegisterFlagCompletionFunc("hook", completeValues(enumStrings(api.HookTypes())))
}

func registerOutputCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", completeValues([]string{"plain", "pretty", "json", "ndjson", "yaml"}))
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
