package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

type Config struct {
	Home string `yaml:"-"`

	RPCURL          string        `yaml:"rpc_url" env:"FOREST_RPC_URL"`
	ContractAddress string        `yaml:"contract_address" env:"FOREST_CONTRACT_ADDRESS"`
	Account         string        `yaml:"account" env:"FOREST_ACCOUNT"`
	PollInterval    time.Duration `yaml:"poll_interval" env:"FOREST_POLL_INTERVAL"`
	ConfirmTimeout  time.Duration `yaml:"confirm_timeout" env:"FOREST_CONFIRM_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"FOREST_REQUEST_TIMEOUT"`
	LogLevel        string        `yaml:"log_level" env:"FOREST_LOG_LEVEL"`

	DBPath    string `yaml:"-"`
	BreakPath string `yaml:"-"`
	LogPath   string `yaml:"-"`
}

func Default(home string) Config {
	return Config{
		Home:           home,
		RPCURL:         "http://127.0.0.1:8545",
		PollInterval:   2 * time.Second,
		ConfirmTimeout: 2 * time.Minute,
		RequestTimeout: 15 * time.Second,
		LogLevel:       "warn",
		DBPath:         filepath.Join(home, "forest.db"),
		BreakPath:      filepath.Join(home, "break.json"),
		LogPath:        filepath.Join(home, "forest.log"),
	}
}

// Load applies defaults, then <home>/config.yaml when present, then FOREST_*
// environment variables.
func Load(home string) (Config, error) {
	if home == "" {
		return Config{}, fmt.Errorf("home directory is required")
	}
	cfg := Default(home)
	raw, err := os.ReadFile(filepath.Join(home, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", FileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks what every contract operation needs. The account is only
// required for writes and is checked there.
func (c Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("contract_address %q is not a hex address", c.ContractAddress)
	}
	if c.Account != "" && !common.IsHexAddress(c.Account) {
		return fmt.Errorf("account %q is not a hex address", c.Account)
	}
	if c.PollInterval <= 0 || c.ConfirmTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("poll_interval, confirm_timeout and request_timeout must be positive")
	}
	return nil
}

// Save writes the file-backed keys to <home>/config.yaml.
func (c Config) Save() error {
	if err := os.MkdirAll(c.Home, 0o755); err != nil {
		return fmt.Errorf("create home: %w", err)
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(c.Home, FileName), raw, 0o644)
}
