package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"propertydesk/events"
)

var eventSubjects = map[string]string{
	"lease":       events.SubjectLeaseSubmitted,
	"application": events.SubjectApplicationSubmitted,
}

// NewEventsCommand returns the `events` command, which prints recent
// submissions from the stream. With an embedded server the app must not be
// serving at the same time, since both would open the same store.
func NewEventsCommand(opts events.Options) *cobra.Command {
	var (
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent lease and application submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, ok := eventSubjects[kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (want lease or application)", kind)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			bus, err := events.Start(ctx, opts)
			if err != nil {
				return err
			}
			defer bus.Close()

			envs, err := bus.Read(ctx, subject, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(envs) == 0 {
				fmt.Fprintln(out, "No submissions.")
				return nil
			}
			for _, env := range envs {
				fmt.Fprintf(out, "%s  %s  %s\n", env.SubmittedAt.Format(time.RFC3339), env.RecordID, string(env.Payload))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "lease", "submission kind: lease or application")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of submissions to print")
	return cmd
}
