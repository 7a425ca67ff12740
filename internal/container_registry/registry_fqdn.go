package container_registry

import (
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	ecrapi "github.com/awslabs/amazon-ecr-credential-helper/ecr-login/api"
)

// RegistryFQDN returns the per-account registry host, <account_id>.dkr.ecr.<region>.amazonaws.com.
func RegistryFQDN(accountID, region string) string {
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", accountID, region)
}

// ValidateRegistryFQDN checks the host with the ECR credential helper's parser and makes
// sure it addresses the expected account and region.
func ValidateRegistryFQDN(fqdn, accountID, region string) error {
	parsed, err := ecrapi.ExtractRegistry(fqdn)
	if err != nil {
		return fmt.Errorf("%w - %s is not an ECR registry: %w", lib.BadUserInputError, fqdn, err)
	}
	slog.Debug("parsed registry host", "registry", fqdn, "registry_id", parsed.ID, "region", parsed.Region, "fips", parsed.FIPS)

	if parsed.ID != accountID || parsed.Region != region {
		return fmt.Errorf("%w - registry %s does not belong to account %s in %s", lib.BadUserInputError, fqdn, accountID, region)
	}

	return nil
}
