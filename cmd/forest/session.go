package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/countdown"
)

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus sessions and breaks"}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current session, break state and countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := readContext(cmd.Context(), app)
			defer cancel()
			out, err := app.SessionCLI.Status(ctx, app.Account)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), out)
			return nil
		},
	}

	var activity, minutes string
	start := &cobra.Command{
		Use:   "start --activity <name> --minutes <20-60>",
		Short: "Start a focus session for an ongoing goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.SessionCLI.Start(ctx, app.Account, activity, minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s for %s minutes tx=%s\n", activity, minutes, out.Hash)
			return nil
		},
	}
	start.Flags().StringVar(&activity, "activity", "", "activity type of the goal")
	start.Flags().StringVar(&minutes, "minutes", "25", "session length in minutes")

	var breakMinutes string
	takeBreak := &cobra.Command{
		Use:   "break --minutes <n>",
		Short: "Schedule a local break countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.ScheduleBreak(cmd.Context(), breakMinutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "break until %s\n", formatUnix(out.EndsAt))
			return nil
		},
	}
	takeBreak.Flags().StringVar(&breakMinutes, "minutes", "5", "break length in minutes")

	endBreak := &cobra.Command{
		Use:   "end-break",
		Short: "Record the break on chain so a new session can start",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.SessionCLI.EndBreak(ctx, app.Account)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "break taken tx=%s\n", out.Hash)
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Count down the current session or break",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := readContext(cmd.Context(), app)
			out, err := app.SessionCLI.Status(ctx, app.Account)
			cancel()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !out.HasCountdown {
				_, _ = fmt.Fprintln(w, "nothing to count down")
				return nil
			}
			timer := countdown.New(app.Clock)
			defer timer.Stop()
			first := timer.Set(countdown.At(out.Deadline))
			_, _ = fmt.Fprintf(w, "\r%s ", countdown.Format(first.Remaining))
			for {
				select {
				case <-cmd.Context().Done():
					_, _ = fmt.Fprintf(w, "\nstopped with %s left\n", countdown.Format(timer.Snapshot().Remaining))
					return nil
				case u := <-timer.Updates():
					_, _ = fmt.Fprintf(w, "\r%s ", countdown.Format(u.Remaining))
					if u.Completed {
						_, _ = fmt.Fprintln(w, "\ncountdown complete")
						return nil
					}
				}
			}
		},
	}

	session.AddCommand(status, start, takeBreak, endBreak, watch)
	return session
}

func printStatus(w io.Writer, out sessiondto.StatusOutput) {
	if out.HasActiveSession {
		_, _ = fmt.Fprintf(w, "session: %s until %s\n", out.Session.ActivityType, formatUnix(out.Session.EndTime))
		if out.MatchedGoal != nil {
			_, _ = fmt.Fprintf(w, "goal: %d trees left, ends %s\n", out.MatchedGoal.TreesRemaining, formatUnix(out.MatchedGoal.EndTime))
		}
	} else {
		_, _ = fmt.Fprintln(w, "session: none")
	}
	if out.BreakNeeded {
		_, _ = fmt.Fprintln(w, "break: required before the next session")
	}
	if out.HasCountdown {
		_, _ = fmt.Fprintf(w, "remaining: %s\n", countdown.Format(out.Remaining))
	}
	if len(out.Goals) > 0 {
		_, _ = fmt.Fprintln(w, "available goals:")
		for _, g := range out.Goals {
			_, _ = fmt.Fprintf(w, "  %s\t%d trees left\n", g.ActivityType, g.TreesRemaining)
		}
	}
}
