package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	RegionKey         = "region"
	ProfileKey        = "profile"
	LogLevelKey       = "log_level"
	OutputKey         = "output"
	CacheTokenKey     = "cache_token"
	KeyringServiceKey = "keyring_service"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var supportedOutputs = []string{OutputTable, OutputJSON, OutputYAML}

type Config struct {
	Region         string `mapstructure:"region"`
	Profile        string `mapstructure:"profile"`
	LogLevel       string `mapstructure:"log_level"`
	Output         string `mapstructure:"output"`
	CacheToken     bool   `mapstructure:"cache_token"`
	KeyringService string `mapstructure:"keyring_service"`
	v              *viper.Viper
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault(RegionKey, lib.DefaultRegion)
	v.SetDefault(ProfileKey, "")
	v.SetDefault(LogLevelKey, "warn")
	v.SetDefault(OutputKey, OutputTable)
	v.SetDefault(CacheTokenKey, false)
	v.SetDefault(KeyringServiceKey, lib.DefaultKeyringService)

	v.SetEnvPrefix(lib.EnvKeyPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// the AWS CLI variable is honoured after our own prefixed one
	if err := v.BindEnv(ProfileKey, fmt.Sprintf("%s_PROFILE", lib.EnvKeyPrefix), lib.AwsProfileEnv); err != nil {
		return nil, fmt.Errorf("binding profile env: %w", err)
	}

	return v, nil
}

func newConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.v = v
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Region == "" {
		return fmt.Errorf("%w - region must not be empty", lib.BadUserInputError)
	}
	if !slices.Contains(supportedOutputs, c.Output) {
		return fmt.Errorf("%w - unsupported output %q, supported are %s", lib.BadUserInputError, c.Output, strings.Join(supportedOutputs, ", "))
	}
	return nil
}

func NewConfigFromPath(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return newConfigFromViper(v)
}

func NewConfigFromReader(reader io.Reader) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("reading config from reader: %w", err)
	}

	return newConfigFromViper(v)
}

// LoadConfig reads path when given. Otherwise the file named by AWSECR_CONFIG or
// $HOME/.awsecr.yaml is used if it exists, and defaults plus environment apply if it does not.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return NewConfigFromPath(path)
	}

	if envPath := os.Getenv(lib.ConfigEnv); envPath != "" {
		return NewConfigFromPath(envPath)
	}

	if home, err := os.UserHomeDir(); err == nil {
		defaultPath := filepath.Join(home, lib.DefaultConfigFileName)
		_, err := os.Stat(defaultPath)
		if err == nil {
			slog.Debug("loading config file", "path", defaultPath)
			return NewConfigFromPath(defaultPath)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking config file %s: %w", defaultPath, err)
		}
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return newConfigFromViper(v)
}

// WithFlags returns a copy of the config where explicitly set flags named after
// config keys take precedence over the environment and the config file.
func (c *Config) WithFlags(flags *pflag.FlagSet) (*Config, error) {
	newV, err := newViper()
	if err != nil {
		return nil, err
	}

	if err := newV.MergeConfigMap(c.v.AllSettings()); err != nil {
		return nil, fmt.Errorf("merging config map from global config instance: %w", err)
	}

	for _, key := range []string{RegionKey, ProfileKey, LogLevelKey, OutputKey, CacheTokenKey} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := newV.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}

	return newConfigFromViper(newV)
}
