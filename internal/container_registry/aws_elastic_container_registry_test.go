package container_registry

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	ring "github.com/99designs/keyring"
	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
	"github.com/AnotherFullstackDev/awsecr/internal/keyring"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/stretchr/testify/require"
)

func tokenClient(token *string, expiresAt time.Time, calls *int) *fakeECRClient {
	return &fakeECRClient{
		GetAuthorizationTokenFn: func(_ context.Context, params *ecr.GetAuthorizationTokenInput, _ ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
			*calls++
			if len(params.RegistryIds) != 1 || params.RegistryIds[0] != testAccountID {
				return nil, errors.New("unexpected registry ids")
			}
			return &ecr.GetAuthorizationTokenOutput{
				AuthorizationData: []types.AuthorizationData{{AuthorizationToken: token, ExpiresAt: aws.Time(expiresAt)}},
			}, nil
		},
	}
}

func TestDecodeCredentials(t *testing.T) {
	r := require.New(t)

	t.Run("must round trip a base64 token", func(t *testing.T) {
		credentials, err := DecodeCredentials(base64.StdEncoding.EncodeToString([]byte("AWS:foobar")))
		r.NoError(err)
		r.Equal(Credentials{Username: "AWS", Password: "foobar"}, credentials)
	})

	t.Run("must split on the first colon only", func(t *testing.T) {
		credentials, err := DecodeCredentials(base64.StdEncoding.EncodeToString([]byte("AWS:foo:bar")))
		r.NoError(err)
		r.Equal("foo:bar", credentials.Password)
	})

	t.Run("must reject malformed tokens", func(t *testing.T) {
		_, err := DecodeCredentials("not base64!")
		r.Error(err)

		_, err = DecodeCredentials(base64.StdEncoding.EncodeToString([]byte("AWSfoobar")))
		r.Error(err)

		_, err = DecodeCredentials(base64.StdEncoding.EncodeToString([]byte{0xff, ':', 0xfe}))
		r.Error(err)

		var payloadErr *lib.InvalidPayloadError
		r.False(errors.As(err, &payloadErr))
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	token := base64.StdEncoding.EncodeToString([]byte("AWS:foobar"))

	t.Run("must login the runtime with the decoded token", func(t *testing.T) {
		r := require.New(t)
		calls := 0
		runtime := &fakeRuntime{}

		result, handle, err := NewAuthenticator(tokenClient(aws.String(token), time.Now().Add(12*time.Hour), &calls), runtime, "us-east-1", nil).
			Authenticate(ctx, testAccountID)
		r.NoError(err)
		r.Equal("Login Succeeded", result.Status)
		r.Same(runtime, handle.(*fakeRuntime))
		r.Equal(1, calls)
		r.Equal([]loginCall{{"AWS", "foobar", "012345678910.dkr.ecr.us-east-1.amazonaws.com"}}, runtime.logins)
	})

	t.Run("empty authorization data must be an invalid payload", func(t *testing.T) {
		r := require.New(t)
		client := &fakeECRClient{
			GetAuthorizationTokenFn: func(context.Context, *ecr.GetAuthorizationTokenInput, ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
				return &ecr.GetAuthorizationTokenOutput{}, nil
			},
		}
		runtime := &fakeRuntime{}

		_, _, err := NewAuthenticator(client, runtime, "us-east-1", nil).Authenticate(ctx, testAccountID)

		var payloadErr *lib.InvalidPayloadError
		r.True(errors.As(err, &payloadErr))
		r.Equal("authorizationToken", payloadErr.MissingKey)
		r.Equal("get_authorization_token", payloadErr.Operation)
		r.Empty(runtime.logins)
	})

	t.Run("missing token field must be an invalid payload", func(t *testing.T) {
		r := require.New(t)
		calls := 0

		_, _, err := NewAuthenticator(tokenClient(nil, time.Now(), &calls), &fakeRuntime{}, "us-east-1", nil).Authenticate(ctx, testAccountID)

		var payloadErr *lib.InvalidPayloadError
		r.True(errors.As(err, &payloadErr))
		r.Equal("get_authorization_token", payloadErr.Operation)
	})

	t.Run("undecodable token must not reach the runtime", func(t *testing.T) {
		r := require.New(t)
		calls := 0
		runtime := &fakeRuntime{}

		_, _, err := NewAuthenticator(tokenClient(aws.String("%%%"), time.Now(), &calls), runtime, "us-east-1", nil).Authenticate(ctx, testAccountID)
		r.Error(err)
		r.Empty(runtime.logins)
	})

	t.Run("runtime login failure must be returned", func(t *testing.T) {
		r := require.New(t)
		calls := 0
		boom := errors.New("denied")
		runtime := &fakeRuntime{
			LoginFn: func(context.Context, string, string, string) (container_runtime.LoginResult, error) {
				return container_runtime.LoginResult{}, boom
			},
		}

		_, handle, err := NewAuthenticator(tokenClient(aws.String(token), time.Now(), &calls), runtime, "us-east-1", nil).Authenticate(ctx, testAccountID)
		r.ErrorIs(err, boom)
		r.Nil(handle)
	})

	t.Run("invalid account must fail before any call", func(t *testing.T) {
		r := require.New(t)
		calls := 0

		_, _, err := NewAuthenticator(tokenClient(aws.String(token), time.Now(), &calls), &fakeRuntime{}, "us-east-1", nil).Authenticate(ctx, "not-an-account")
		r.ErrorIs(err, lib.BadUserInputError)
		r.Zero(calls)
	})

	t.Run("cached token must skip the api", func(t *testing.T) {
		r := require.New(t)
		calls := 0
		cache := NewTokenCache(keyring.NewServiceWithKeyring(ring.NewArrayKeyring(nil)))
		client := tokenClient(aws.String(token), time.Now().Add(12*time.Hour), &calls)

		for range 3 {
			_, _, err := NewAuthenticator(client, &fakeRuntime{}, "us-east-1", cache).Authenticate(ctx, testAccountID)
			r.NoError(err)
		}
		r.Equal(1, calls)
	})

	t.Run("failed login with a cached token must drop it", func(t *testing.T) {
		r := require.New(t)
		calls := 0
		cache := NewTokenCache(keyring.NewServiceWithKeyring(ring.NewArrayKeyring(nil)))
		r.NoError(cache.Put(testAccountID, RegistryToken{RawToken: token, Region: "us-east-1", ExpiresAt: time.Now().Add(time.Hour)}))
		runtime := &fakeRuntime{
			LoginFn: func(context.Context, string, string, string) (container_runtime.LoginResult, error) {
				return container_runtime.LoginResult{}, errors.New("expired")
			},
		}

		_, _, err := NewAuthenticator(tokenClient(aws.String(token), time.Now().Add(time.Hour), &calls), runtime, "us-east-1", cache).Authenticate(ctx, testAccountID)
		r.Error(err)
		r.Zero(calls)

		_, ok, err := cache.Get(testAccountID, "us-east-1")
		r.NoError(err)
		r.False(ok)
	})
}
