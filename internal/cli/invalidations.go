package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"anilink/internal/cache"
)

// InvalidationRow lists what one successful mutation makes stale.
type InvalidationRow struct {
	Mutation string   `json:"mutation" yaml:"mutation"`
	Targets  []string `json:"targets" yaml:"targets"`
}

type InvalidationTable []InvalidationRow

func (t InvalidationTable) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MUTATION\tINVALIDATES")
	for _, row := range t {
		fmt.Fprintf(tw, "%s\t%s\n", row.Mutation, strings.Join(row.Targets, ", "))
	}
	return tw.Flush()
}

// NewInvalidationsCommand creates the invalidations command.
func NewInvalidationsCommand(rootOpts *RootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "invalidations [mutation]",
		Short: "Show which cached collections a mutation invalidates",
		Long: `Show the cache entries each successful mutation marks stale.

Detail entries are shown for the resource id given by --id.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvalidations(rootOpts, args, id, cmd)
		},
	}

	cmd.Flags().StringVar(&id, "id", "{id}", "resource id used for detail entries")

	return cmd
}

func runInvalidations(rootOpts *RootOptions, args []string, id string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	mutations := cache.Mutations
	if len(args) == 1 {
		m := cache.Mutation(strings.ToLower(strings.TrimSpace(args[0])))
		if !slices.Contains(cache.Mutations, m) {
			msg := fmt.Sprintf("unknown mutation %q", args[0])
			if err := formatter.Error(ErrCodeUnknownMutation, msg, cache.Mutations); err != nil {
				return err
			}
			return NewExitError(ExitCommandError, msg)
		}
		mutations = []cache.Mutation{m}
	}

	out := make(InvalidationTable, 0, len(mutations))
	for _, m := range mutations {
		targets := cache.Invalidations(m, id)
		row := InvalidationRow{Mutation: string(m), Targets: make([]string, 0, len(targets))}
		for _, t := range targets {
			row.Targets = append(row.Targets, t.String())
		}
		out = append(out, row)
	}
	formatter.VerboseLog("%d mutation(s)", len(out))
	return formatter.Success(out)
}
