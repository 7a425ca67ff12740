package repos

import (
	"fmt"

	"github.com/AnotherFullstackDev/awsecr/internal/factories"
	"github.com/AnotherFullstackDev/awsecr/internal/report"
	"github.com/spf13/cobra"
)

func NewReposCmd(locator *factories.SharedServicesLocator, ui report.UI) *cobra.Command {
	var filters []string

	reposCmd := &cobra.Command{
		Use:     "repos",
		Short:   "List the ECR repositories of the account",
		Example: `  awsecr repos --filter "team-a/*" --filter "*-api"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			printer, err := report.NewPrinter(ui, locator.Config.Output)
			if err != nil {
				return err
			}

			factory, err := factories.NewServiceFactory(ctx, locator)
			if err != nil {
				return err
			}

			repositoriesService, err := factory.NewRepositoriesService()
			if err != nil {
				return err
			}

			account, err := factory.NewIdentityService().ResolveIdentity(ctx)
			if err != nil {
				return fmt.Errorf("resolving AWS identity: %w", err)
			}

			records, err := repositoriesService.ListRepositories(ctx, account.AccountID, filters)
			if err != nil {
				return fmt.Errorf("listing repositories: %w", err)
			}

			return printer.PrintRepositories(records)
		},
	}

	reposCmd.Flags().StringArrayVar(&filters, "filter", nil, "Only list repositories matching the glob, can be repeated")

	return reposCmd
}
