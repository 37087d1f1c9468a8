package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hara-desu/ForestOnchain/internal/bootstrap"
	"github.com/hara-desu/ForestOnchain/internal/platform/config"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

type globalFlags struct {
	home    string
	account string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "forest",
		Short:         "Grow a forest by keeping staked focus goals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", defaultHome(), "state directory (config.yaml, forest.db, break.json)")
	root.PersistentFlags().StringVar(&flags.account, "account", "", "sender account, overrides the configured one")

	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newGoalsCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newAdminCmd(flags))
	root.AddCommand(newTxCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func defaultHome() string {
	if home := os.Getenv("FOREST_HOME"); home != "" {
		return home
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".forest"
	}
	return filepath.Join(dir, ".forest")
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.home)
	if err != nil {
		return config.Config{}, err
	}
	if flags.account != "" {
		cfg.Account = flags.account
	}
	return cfg, nil
}

// loadApp wires the application with a logger on stderr. The caller closes
// the returned app.
func loadApp(ctx context.Context, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, logging.New(cfg.LogLevel, os.Stderr))
}

func readContext(ctx context.Context, app *bootstrap.App) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, app.Config.RequestTimeout)
}

func writeContext(ctx context.Context, app *bootstrap.App) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, app.Config.RequestTimeout+app.Config.ConfirmTimeout)
}

func formatUnix(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).Local().Format("2006-01-02 15:04:05")
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect or initialise configuration"}

	var rpcURL, contract string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml into the home directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if rpcURL != "" {
				cfg.RPCURL = rpcURL
			}
			if contract != "" {
				cfg.ContractAddress = contract
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Join(cfg.Home, config.FileName))
			return nil
		},
	}
	initCmd.Flags().StringVar(&rpcURL, "rpc-url", "", "JSON-RPC endpoint of the node")
	initCmd.Flags().StringVar(&contract, "contract", "", "ForestOnchain contract address")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "home: %s\nrpc_url: %s\ncontract_address: %s\naccount: %s\n", cfg.Home, cfg.RPCURL, cfg.ContractAddress, cfg.Account)
			_, _ = fmt.Fprintf(out, "poll_interval: %s\nconfirm_timeout: %s\nrequest_timeout: %s\nlog_level: %s\n", cfg.PollInterval, cfg.ConfirmTimeout, cfg.RequestTimeout, cfg.LogLevel)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the forest terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logFile, err := logging.OpenFile(cfg.LogPath)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()
			app, err := bootstrap.New(cmd.Context(), cfg, logging.New(cfg.LogLevel, logFile))
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}
