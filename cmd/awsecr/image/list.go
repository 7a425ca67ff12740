package image

import (
	"context"
	"fmt"

	"github.com/AnotherFullstackDev/awsecr/internal/factories"
	"github.com/AnotherFullstackDev/awsecr/internal/report"
)

func runList(ctx context.Context, locator *factories.SharedServicesLocator, ui report.UI, repository string) error {
	printer, err := report.NewPrinter(ui, locator.Config.Output)
	if err != nil {
		return err
	}

	factory, err := factories.NewServiceFactory(ctx, locator)
	if err != nil {
		return err
	}

	account, err := factory.NewIdentityService().ResolveIdentity(ctx)
	if err != nil {
		return fmt.Errorf("resolving AWS identity: %w", err)
	}

	records, err := factory.NewImagesService().ListImages(ctx, account.AccountID, repository)
	if err != nil {
		return fmt.Errorf("listing images of %s: %w", repository, err)
	}

	return printer.PrintImages(repository, records)
}
