package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AnotherFullstackDev/awsecr/cmd/awsecr/image"
	"github.com/AnotherFullstackDev/awsecr/cmd/awsecr/repos"
	"github.com/AnotherFullstackDev/awsecr/internal/config"
	"github.com/AnotherFullstackDev/awsecr/internal/factories"
	"github.com/AnotherFullstackDev/awsecr/internal/keyring"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/AnotherFullstackDev/awsecr/internal/placeholders"
	"github.com/AnotherFullstackDev/awsecr/internal/placeholders/git"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/spf13/cobra"
)

func newRootCmd(locator *factories.SharedServicesLocator, out ui.UI) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "awsecr",
		Short:         "awsecr lists and pushes container images of AWS Elastic Container Registry.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err = cfg.WithFlags(cmd.Flags())
			if err != nil {
				return fmt.Errorf("applying flags to config: %w", err)
			}

			logger, err := newLogger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("%w - %w", lib.BadUserInputError, err)
			}
			slog.SetDefault(logger)

			var tokenStorage lib.CredentialsStorage
			if cfg.CacheToken {
				tokenStorage, err = keyring.NewService(cfg.KeyringService)
				if err != nil {
					return fmt.Errorf("opening token keyring: %w", err)
				}
			}

			*locator = *factories.NewSharedServicesLocator(cfg, tokenStorage, placeholders.NewService(git.NewRepositoryInfoService(".")))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", fmt.Sprintf("Config file (default $HOME/%s, or $%s)", lib.DefaultConfigFileName, lib.ConfigEnv))
	flags.String("region", lib.DefaultRegion, "AWS region of the registry")
	flags.String("profile", "", fmt.Sprintf("AWS profile (default $%s)", lib.AwsProfileEnv))
	flags.String("output", config.OutputTable, "Output format: table, json or yaml")
	flags.String("log-level", "warn", fmt.Sprintf("Log level (or $%s)", lib.LogLevelEnv))
	flags.Bool("cache-token", false, "Keep ECR authorization tokens in the OS keyring until they expire")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return fmt.Errorf("%w - %w", lib.BadUserInputError, err)
	})

	rootCmd.AddCommand(
		image.NewImageCmd(locator, out),
		repos.NewReposCmd(locator, out),
	)

	return rootCmd
}

func main() {
	confUI := ui.NewConfUI(ui.NewNoopLogger())

	err := newRootCmd(&factories.SharedServicesLocator{}, confUI).Execute()
	if err != nil {
		confUI.ErrorLinef("Error: %s", err)
	}
	confUI.Flush()

	if err != nil {
		os.Exit(1)
	}
}
