package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hara-desu/ForestOnchain/internal/platform/units"
)

func newAdminCmd(flags *globalFlags) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Contract owner controls"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show owner, cost per tree and contract balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := readContext(cmd.Context(), app)
			defer cancel()
			out, err := app.AdminCLI.Show(ctx, app.Account)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "owner: %s\nyou are owner: %t\ncost per tree: %s ETH\nbalance: %s ETH\n",
				out.Owner, out.IsOwner, units.FormatEther(out.CostPerTreeWei), units.FormatEther(out.BalanceWei))
			return nil
		},
	}

	setCost := &cobra.Command{
		Use:   "set-cost <ether>",
		Short: "Change the cost per tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.AdminCLI.SetCost(ctx, app.Account, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cost per tree set to %s ETH tx=%s\n", args[0], out.Hash)
			return nil
		},
	}

	var to, amount string
	withdraw := &cobra.Command{
		Use:   "withdraw --to <address> --amount <ether>",
		Short: "Withdraw contract funds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := writeContext(cmd.Context(), app)
			defer cancel()
			out, err := app.AdminCLI.Withdraw(ctx, app.Account, to, amount)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "withdrew %s ETH to %s tx=%s\n", units.FormatEther(out.ValueWei), to, out.Hash)
			return nil
		},
	}
	withdraw.Flags().StringVar(&to, "to", "", "recipient address")
	withdraw.Flags().StringVar(&amount, "amount", "", "amount in ether")

	admin.AddCommand(show, setCost, withdraw)
	return admin
}
