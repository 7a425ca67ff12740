package factories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/awsecr/internal/container_image"
	"github.com/AnotherFullstackDev/awsecr/internal/container_registry"
	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
	"github.com/AnotherFullstackDev/awsecr/internal/identity"
	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type ServiceFactory struct {
	locator   *SharedServicesLocator
	awsConfig aws.Config
	ecr       *ecr.Client
}

// NewServiceFactory loads the AWS SDK configuration for the configured region and profile.
func NewServiceFactory(ctx context.Context, locator *SharedServicesLocator) (*ServiceFactory, error) {
	cfg := locator.Config

	options := []func(*aws_config.LoadOptions) error{
		aws_config.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		options = append(options, aws_config.WithSharedConfigProfile(cfg.Profile))
	}

	awsConfig, err := aws_config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	slog.DebugContext(ctx, "loaded AWS config", "region", awsConfig.Region, "profile", cfg.Profile)

	return &ServiceFactory{
		locator:   locator,
		awsConfig: awsConfig,
		ecr:       ecr.NewFromConfig(awsConfig),
	}, nil
}

func (f *ServiceFactory) NewIdentityService() *identity.Service {
	return identity.NewService(sts.NewFromConfig(f.awsConfig))
}

func (f *ServiceFactory) NewImagesService() *container_registry.ImagesService {
	return container_registry.NewImagesService(f.ecr, f.locator.Config.Region)
}

func (f *ServiceFactory) NewRepositoriesService() (*container_registry.RepositoriesService, error) {
	return container_registry.NewRepositoriesService(f.locator.Config.Profile, f.ecr)
}

func (f *ServiceFactory) newTokenCache() *container_registry.TokenCache {
	if !f.locator.Config.CacheToken || f.locator.TokenStorage == nil {
		return nil
	}
	return container_registry.NewTokenCache(f.locator.TokenStorage)
}

// NewPushService connects to the local Docker engine. The returned runtime must be closed by the caller.
func (f *ServiceFactory) NewPushService() (*container_image.PushService, *container_runtime.DockerRuntime, error) {
	runtime, err := container_runtime.NewDockerRuntime()
	if err != nil {
		return nil, nil, err
	}

	authenticator := container_registry.NewAuthenticator(f.ecr, runtime, f.locator.Config.Region, f.newTokenCache())

	return container_image.NewPushService(authenticator, f.locator.PlaceholdersService), runtime, nil
}
