package image

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/AnotherFullstackDev/awsecr/internal/container_registry"
	"github.com/AnotherFullstackDev/awsecr/internal/factories"
	"github.com/AnotherFullstackDev/awsecr/internal/report"
)

func runPush(ctx context.Context, locator *factories.SharedServicesLocator, ui report.UI, repository, localImage string) error {
	factory, err := factories.NewServiceFactory(ctx, locator)
	if err != nil {
		return err
	}

	account, err := factory.NewIdentityService().ResolveIdentity(ctx)
	if err != nil {
		return fmt.Errorf("resolving AWS identity: %w", err)
	}

	pushService, runtime, err := factory.NewPushService()
	if err != nil {
		return err
	}
	defer runtime.Close()

	printer := report.NewPushPrinter(ui, os.Stdout)
	printer.Authenticating(container_registry.RegistryFQDN(account.AccountID, locator.Config.Region))

	stream, err := pushService.Push(ctx, account.AccountID, repository, localImage)
	if err != nil {
		ui.PrintLinef("")
		return fmt.Errorf("pushing %s to %s: %w", localImage, repository, err)
	}
	defer stream.Close()

	printer.Authenticated()
	slog.DebugContext(ctx, "push started", "user", account.UserName, "source", stream.Source, "destination", stream.Destination)

	for event, err := range stream.Events() {
		if err != nil {
			return fmt.Errorf("pushing %s to %s: %w", stream.Source, stream.Destination, err)
		}
		printer.Event(event)
	}

	printer.Finished()
	return nil
}
