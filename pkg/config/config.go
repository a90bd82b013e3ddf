package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the operator toolkit configuration
type Config struct {
	Ethereum   EthereumConfig   `yaml:"ethereum"`
	Contracts  ContractsConfig  `yaml:"contracts"`
	Artifacts  ArtifactsConfig  `yaml:"artifacts"`
	Airdrop    AirdropConfig    `yaml:"airdrop"`
	Swap       SwapConfig       `yaml:"swap"`
	Database   DatabaseConfig   `yaml:"database"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// EthereumConfig contains Ethereum client settings
type EthereumConfig struct {
	RPCURL         string        `yaml:"rpc_url" validate:"omitempty,url"`
	ChainID        int64         `yaml:"chain_id" validate:"gte=0"`
	PrivateKey     string        `yaml:"private_key"`
	GasLimit       uint64        `yaml:"gas_limit"`
	MaxGasPrice    string        `yaml:"max_gas_price" validate:"omitempty,numeric"`
	ReceiptTimeout time.Duration `yaml:"receipt_timeout" default:"5m"`
	PollInterval   time.Duration `yaml:"poll_interval" default:"2s"`
}

// ContractsConfig holds the addresses of the deployed contracts
type ContractsConfig struct {
	Token        string `yaml:"token" validate:"omitempty,eth_addr"`
	Airdrop      string `yaml:"airdrop" validate:"omitempty,eth_addr"`
	HandlerProxy string `yaml:"handler_proxy" validate:"omitempty,eth_addr"`
	StableSwap   string `yaml:"stable_swap" validate:"omitempty,eth_addr"`
	USDC         string `yaml:"usdc" validate:"omitempty,eth_addr"`
}

// ArtifactsConfig points at compiled Hardhat artifacts used for deployments
type ArtifactsConfig struct {
	Handler      string `yaml:"handler"`
	ProxyHandler string `yaml:"proxy_handler"`
	Proxy        string `yaml:"proxy"`
	// ProxyKind is either "transparent" (upgraded through a ProxyAdmin) or "uups".
	ProxyKind string `yaml:"proxy_kind" default:"transparent" validate:"oneof=transparent uups"`
	// Initializer is the initializer invoked through the proxy constructor.
	Initializer string `yaml:"initializer" default:"initialize"`
}

// AirdropConfig controls how a holder snapshot is turned into distribution batches
type AirdropConfig struct {
	RunName          string   `yaml:"run_name"`
	Snapshot         string   `yaml:"snapshot"`
	SnapshotFormat   string   `yaml:"snapshot_format" default:"auto" validate:"oneof=auto map list"`
	MinBalance       string   `yaml:"min_balance" default:"0" validate:"numeric"`
	MaxBatchSize     int      `yaml:"max_batch_size" default:"100" validate:"gt=0,lte=1000"`
	StartOffset      int      `yaml:"start_offset" validate:"gte=0"`
	Decimals         int32    `yaml:"decimals" default:"18" validate:"gte=0,lte=36"`
	StrictAddresses  bool     `yaml:"strict_addresses"`
	TruncateBalances bool     `yaml:"truncate_balances"`
	Blacklist        []string `yaml:"blacklist" validate:"dive,eth_addr"`
	Mode             string   `yaml:"mode" default:"estimate" validate:"oneof=estimate submit"`
}

// SwapConfig contains the decimal precision of both sides of the stable swap
type SwapConfig struct {
	BTXDecimals  int32 `yaml:"btx_decimals" default:"18" validate:"gte=0,lte=36"`
	USDCDecimals int32 `yaml:"usdc_decimals" default:"6" validate:"gte=0,lte=36"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"btx_ops"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// MonitoringConfig contains metrics endpoint settings
type MonitoringConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr" default:"127.0.0.1:9090"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadEnvFiles loads .env and then .env.local (overriding) into the process environment.
// Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return fmt.Errorf("failed to load env file .env.local: %w", err)
		}
	}
	return nil
}

// Load loads configuration from file, expanding ${VAR} references from the environment
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse parses YAML configuration, applies defaults and validates the result
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks struct constraints and reports the first failing field by its YAML path
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s: failed %q constraint", fe.Namespace(), fe.Tag())
	}
	return err
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
