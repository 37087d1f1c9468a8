package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hara-desu/ForestOnchain/internal/platform/units"
)

func newGoalsCmd(flags *globalFlags) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Staked focus goals"}

	var sessionOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List ongoing goals of the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := readContext(cmd.Context(), app)
			defer cancel()
			out, err := app.GoalCLI.List(ctx, app.Account, sessionOnly)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Goals) == 0 {
				_, _ = fmt.Fprintln(w, "no ongoing goals")
			}
			for _, g := range out.Goals {
				flag := ""
				switch {
				case g.Claimable:
					flag = "\tclaimable"
				case g.Expired:
					flag = "\texpired"
				}
				_, _ = fmt.Fprintf(w, "%s\t%d trees left\tends %s\tstaked %s ETH%s\n",
					g.ActivityType, g.TreesRemaining, formatUnix(g.EndTime), units.FormatEther(g.StakedWei), flag)
			}
			if out.MissingSlots > 0 {
				_, _ = fmt.Fprintf(w, "warning: %d reads were incomplete and shown as zero\n", out.MissingSlots)
			}
			return nil
		},
	}
	list.Flags().BoolVar(&sessionOnly, "session", false, "only goals a session can be started for")

	var activity, days, trees string
	create := &cobra.Command{
		Use:   "create --activity <name> --days <n> --trees <n>",
		Short: "Stake for a new goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.GoalCLI.Create(ctx, app.Account, activity, days, trees)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal created: %s staked %s ETH tx=%s\n", activity, units.FormatEther(out.ValueWei), out.Hash)
			return nil
		},
	}
	create.Flags().StringVar(&activity, "activity", "", "activity type, at most 32 characters")
	create.Flags().StringVar(&days, "days", "", "goal duration in days")
	create.Flags().StringVar(&trees, "trees", "", "number of trees to grow")

	var claimActivity string
	claim := &cobra.Command{
		Use:   "claim --activity <name>",
		Short: "Claim the stake of a completed goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("activity", claimActivity); err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.GoalCLI.Claim(ctx, app.Account, claimActivity)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stake claimed: %s tx=%s\n", claimActivity, out.Hash)
			return nil
		},
	}
	claim.Flags().StringVar(&claimActivity, "activity", "", "activity type of the goal")

	var quoteTrees string
	quote := &cobra.Command{
		Use:   "quote --trees <n>",
		Short: "Show the stake required for a number of trees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := readContext(cmd.Context(), app)
			defer cancel()
			out, err := app.GoalCLI.Quote(ctx, quoteTrees)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cost per tree: %s ETH\nstake: %s ETH\n", units.FormatEther(out.CostPerTreeWei), units.FormatEther(out.StakeWei))
			return nil
		},
	}
	quote.Flags().StringVar(&quoteTrees, "trees", "", "number of trees")

	goals.AddCommand(list, create, claim, quote)
	return goals
}
