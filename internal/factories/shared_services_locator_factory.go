package factories

import (
	"github.com/AnotherFullstackDev/awsecr/internal/config"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/AnotherFullstackDev/awsecr/internal/placeholders"
)

// SharedServicesLocator holds what every command needs. TokenStorage is nil unless token
// caching is enabled.
type SharedServicesLocator struct {
	Config              *config.Config
	TokenStorage        lib.CredentialsStorage
	PlaceholdersService *placeholders.Service
}

func NewSharedServicesLocator(config *config.Config, tokenStorage lib.CredentialsStorage, placeholders *placeholders.Service) *SharedServicesLocator {
	return &SharedServicesLocator{
		config,
		tokenStorage,
		placeholders,
	}
}

func (l *SharedServicesLocator) WithConfig(config *config.Config) *SharedServicesLocator {
	return &SharedServicesLocator{
		config,
		l.TokenStorage,
		l.PlaceholdersService,
	}
}
