package container_registry

import (
	"testing"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/stretchr/testify/require"
)

func TestRegistryFQDN(t *testing.T) {
	r := require.New(t)

	r.Equal("foo.dkr.ecr.bar.amazonaws.com", RegistryFQDN("foo", "bar"))

	fqdn := RegistryFQDN(testAccountID, "us-east-2")
	r.Equal("012345678910.dkr.ecr.us-east-2.amazonaws.com", fqdn)
	r.Contains(fqdn, testAccountID)
	r.Contains(fqdn, "us-east-2")
	r.Equal(fqdn, RegistryFQDN(testAccountID, "us-east-2"))
}

func TestValidateRegistryFQDN(t *testing.T) {
	r := require.New(t)

	t.Run("must accept a well formed registry", func(t *testing.T) {
		r.NoError(ValidateRegistryFQDN(RegistryFQDN(testAccountID, "us-east-1"), testAccountID, "us-east-1"))
	})

	t.Run("must reject malformed account ids", func(t *testing.T) {
		err := ValidateRegistryFQDN(RegistryFQDN("foo", "us-east-1"), "foo", "us-east-1")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("must reject a registry of another region", func(t *testing.T) {
		err := ValidateRegistryFQDN(RegistryFQDN(testAccountID, "us-east-1"), testAccountID, "eu-west-1")
		r.ErrorIs(err, lib.BadUserInputError)
	})
}
