package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"anilink/internal/domain/booking"
)

// TabResult describes where a booking status is listed.
type TabResult struct {
	Status            string `json:"status" yaml:"status"`
	Known             bool   `json:"known" yaml:"known"`
	OwnerTab          string `json:"ownerTab" yaml:"ownerTab"`
	AppointmentStatus string `json:"appointmentStatus" yaml:"appointmentStatus"`
	VetTab            string `json:"vetTab,omitempty" yaml:"vetTab,omitempty"`
	IsPending         bool   `json:"isPending" yaml:"isPending"`
	IsUpcoming        bool   `json:"isUpcoming" yaml:"isUpcoming"`
}

type TabResults []TabResult

func (rs TabResults) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tOWNER TAB\tAPPOINTMENT\tVET TAB")
	for _, r := range rs {
		status := r.Status
		if !r.Known {
			status += " (unmapped)"
		}
		vet := r.VetTab
		if vet == "" {
			vet = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, r.OwnerTab, r.AppointmentStatus, vet)
	}
	return tw.Flush()
}

// NewTabCommand creates the tab command.
func NewTabCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab [status...]",
		Short: "Show the tabs a booking status belongs to",
		Long: `Show the owner tab, appointment label and vet tab for booking statuses.

With no arguments every status the backend is known to send is listed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTab(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runTab(rootOpts *RootOptions, statuses []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if len(statuses) == 0 {
		for _, s := range booking.AllStatuses {
			statuses = append(statuses, string(s))
		}
	}

	out := make(TabResults, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, describeStatus(s))
	}
	return formatter.Success(out)
}

func describeStatus(status string) TabResult {
	vet, _ := booking.VetTabOf(status)
	return TabResult{
		Status:            strings.ToUpper(strings.TrimSpace(status)),
		Known:             booking.IsKnownStatus(status),
		OwnerTab:          string(booking.OwnerTabOf(status)),
		AppointmentStatus: string(booking.AppointmentStatusOf(status)),
		VetTab:            string(vet),
		IsPending:         booking.IsPending(status),
		IsUpcoming:        booking.IsUpcoming(status),
	}
}
