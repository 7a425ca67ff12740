package container_registry

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

type Authenticator struct {
	ecr     ECRClient
	runtime container_runtime.Runtime
	region  string
	cache   *TokenCache
}

// NewAuthenticator creates an authenticator for region. cache may be nil, in which case
// every authentication asks ECR for a fresh token.
func NewAuthenticator(client ECRClient, runtime container_runtime.Runtime, region string, cache *TokenCache) *Authenticator {
	return &Authenticator{
		ecr:     client,
		runtime: runtime,
		region:  region,
		cache:   cache,
	}
}

func (a *Authenticator) Region() string {
	return a.region
}

// Authenticate logs the container runtime in to the account's registry and returns the login
// result together with the now authenticated runtime.
func (a *Authenticator) Authenticate(ctx context.Context, accountID string) (container_runtime.LoginResult, container_runtime.Runtime, error) {
	registry := RegistryFQDN(accountID, a.region)
	if err := ValidateRegistryFQDN(registry, accountID, a.region); err != nil {
		return container_runtime.LoginResult{}, nil, err
	}

	token, fromCache, err := a.token(ctx, accountID)
	if err != nil {
		return container_runtime.LoginResult{}, nil, err
	}

	credentials, err := DecodeCredentials(token.RawToken)
	if err != nil {
		return container_runtime.LoginResult{}, nil, err
	}

	slog.InfoContext(ctx, "logging in to registry", "registry", registry, "username", credentials.Username, "cached_token", fromCache)

	result, err := a.runtime.Login(ctx, credentials.Username, credentials.Password, registry)
	if err != nil {
		if fromCache {
			if resetErr := a.cache.Reset(accountID, a.region); resetErr != nil {
				err = errors.Join(err, resetErr)
			}
		}
		return container_runtime.LoginResult{}, nil, fmt.Errorf("authenticating against %s: %w", registry, err)
	}

	return result, a.runtime, nil
}

func (a *Authenticator) token(ctx context.Context, accountID string) (RegistryToken, bool, error) {
	if a.cache != nil {
		cached, ok, err := a.cache.Get(accountID, a.region)
		if err != nil {
			slog.WarnContext(ctx, "token cache unavailable", "error", err)
		} else if ok {
			slog.DebugContext(ctx, "using cached authorization token", "expires_at", cached.ExpiresAt)
			return cached, true, nil
		}
	}

	token, err := a.GetAuthorizationToken(ctx, accountID)
	if err != nil {
		return RegistryToken{}, false, err
	}

	if a.cache != nil {
		if err := a.cache.Put(accountID, token); err != nil {
			slog.WarnContext(ctx, "could not cache authorization token", "error", err)
		}
	}

	return token, false, nil
}

func (a *Authenticator) GetAuthorizationToken(ctx context.Context, accountID string) (RegistryToken, error) {
	output, err := a.ecr.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{
		RegistryIds: []string{accountID},
	})
	if err != nil {
		return RegistryToken{}, fmt.Errorf("getting authorization token: %w", err)
	}

	if len(output.AuthorizationData) == 0 || output.AuthorizationData[0].AuthorizationToken == nil {
		return RegistryToken{}, lib.NewInvalidPayloadError("authorizationToken", getAuthorizationTokenOperation)
	}

	data := output.AuthorizationData[0]
	return RegistryToken{
		RawToken:  aws.ToString(data.AuthorizationToken),
		Region:    a.region,
		ExpiresAt: aws.ToTime(data.ExpiresAt),
	}, nil
}

// DecodeCredentials turns a base64 "username:password" token into credentials,
// splitting on the first colon.
func DecodeCredentials(token string) (Credentials, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Credentials{}, fmt.Errorf("decoding authorization token: %w", err)
	}
	if !utf8.Valid(decoded) {
		return Credentials{}, errors.New("decoding authorization token: not valid UTF-8")
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return Credentials{}, errors.New("decoding authorization token: missing username:password separator")
	}

	return Credentials{Username: username, Password: password}, nil
}
