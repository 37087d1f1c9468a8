package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTxCmd(flags *globalFlags) *cobra.Command {
	txCmd := &cobra.Command{Use: "tx", Short: "Local history of transaction attempts"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent attempts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.JournalCLI.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(w, "no transactions")
				return nil
			}
			for _, e := range out.Entries {
				line := fmt.Sprintf("%s\t%s\t%s\t%s", e.UpdatedAt.Local().Format("2006-01-02 15:04:05"), e.Method, e.State, e.AttemptID)
				if e.Hash != "" {
					line += "\t" + e.Hash
				}
				if e.Message != "" {
					line += "\t" + e.Message
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of attempts")

	txCmd.AddCommand(list)
	return txCmd
}
