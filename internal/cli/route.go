package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"anilink/internal/domain/notification"
)

// RouteResult is the deep link resolved for one notification.
type RouteResult struct {
	Href     string `json:"href,omitempty" yaml:"href,omitempty"`
	Routable bool   `json:"routable" yaml:"routable"`
	Role     string `json:"role" yaml:"role"`
}

func (r RouteResult) RenderText(w io.Writer) error {
	if !r.Routable {
		_, err := fmt.Fprintln(w, "no destination")
		return err
	}
	_, err := fmt.Fprintln(w, r.Href)
	return err
}

type routeOptions struct {
	entityType string
	entityID   string
	relatedID  string
	actionURL  string
	role       string
	origin     string
}

// NewRouteCommand creates the route command.
func NewRouteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &routeOptions{}

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Resolve the in-app link a notification opens",
		Long: `Resolve the in-app path a notification opens for a viewer role.

A same-origin actionUrl wins; otherwise the entity type and id pick the
destination. Exits 1 when the notification has nowhere to go.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.entityType, "entity-type", "", "entity type (booking|order|case|scan|product|system)")
	cmd.Flags().StringVar(&opts.entityID, "entity-id", "", "entity id")
	cmd.Flags().StringVar(&opts.relatedID, "related-id", "", "related id, used when entity id is empty")
	cmd.Flags().StringVar(&opts.actionURL, "action-url", "", "backend-provided action URL")
	cmd.Flags().StringVar(&opts.role, "role", "OWNER", "viewer role (OWNER|VET|SELLER|ADMIN)")
	cmd.Flags().StringVar(&opts.origin, "origin", os.Getenv("APP_ORIGIN"), "application origin for absolute action URLs")

	return cmd
}

func runRoute(rootOpts *RootOptions, opts *routeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	n := notification.Notification{
		EntityType: opts.entityType,
		EntityID:   opts.entityID,
		RelatedID:  opts.relatedID,
		ActionURL:  opts.actionURL,
	}
	formatter.VerboseLog("routing entity=%q id=%q role=%s origin=%q", n.EntityType, n.TargetID(), opts.role, opts.origin)

	href, ok := notification.NewRouter(opts.origin).Href(n, opts.role)
	if err := formatter.Success(RouteResult{Href: href, Routable: ok, Role: opts.role}); err != nil {
		return err
	}
	if !ok {
		return NewExitError(ExitFailure, "no destination")
	}
	return nil
}
