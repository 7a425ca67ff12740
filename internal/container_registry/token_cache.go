package container_registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
)

const (
	tokenStorageKeyFormat = "ecr_token_%s_%s"
	tokenStorageLabel     = "AWS ECR authorization token"
	// tokens this close to expiry are fetched again
	tokenExpiryMargin = 5 * time.Minute
)

type cachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenCache keeps ECR authorization tokens in a credentials storage until they expire.
type TokenCache struct {
	storage lib.CredentialsStorage
	now     func() time.Time
}

func NewTokenCache(storage lib.CredentialsStorage) *TokenCache {
	return &TokenCache{storage: storage, now: time.Now}
}

func tokenStorageKey(accountID, region string) string {
	return fmt.Sprintf(tokenStorageKeyFormat, accountID, region)
}

func (c *TokenCache) Get(accountID, region string) (RegistryToken, bool, error) {
	raw, err := c.storage.Get(tokenStorageKey(accountID, region))
	if err != nil {
		return RegistryToken{}, false, fmt.Errorf("reading cached token: %w", err)
	}
	if raw == "" {
		return RegistryToken{}, false, nil
	}

	var cached cachedToken
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		slog.Warn("discarding unreadable cached token", "account_id", accountID, "region", region, "error", err)
		return RegistryToken{}, false, nil
	}

	if cached.Token == "" || c.now().Add(tokenExpiryMargin).After(cached.ExpiresAt) {
		return RegistryToken{}, false, nil
	}

	return RegistryToken{
		RawToken:  cached.Token,
		Region:    region,
		ExpiresAt: cached.ExpiresAt,
	}, true, nil
}

func (c *TokenCache) Put(accountID string, token RegistryToken) error {
	if token.ExpiresAt.IsZero() {
		return nil
	}

	raw, err := json.Marshal(cachedToken{Token: token.RawToken, ExpiresAt: token.ExpiresAt})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	err = c.storage.Set(tokenStorageKey(accountID, token.Region), string(raw), lib.KeyExtras{
		Label:       tokenStorageLabel,
		Description: fmt.Sprintf("Registry %s", RegistryFQDN(accountID, token.Region)),
	})
	if err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	return nil
}

func (c *TokenCache) Reset(accountID, region string) error {
	if err := c.storage.Remove(tokenStorageKey(accountID, region)); err != nil {
		return fmt.Errorf("resetting cached token: %w", err)
	}
	return nil
}
