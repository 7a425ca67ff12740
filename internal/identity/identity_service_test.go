package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/require"
)

// fakeSTSClient backs GetCallerIdentity with a function field. A nil function panics.
type fakeSTSClient struct {
	GetCallerIdentityFn func(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	calls               int
}

var _ STSClient = (*fakeSTSClient)(nil)

func (f *fakeSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.calls++
	return f.GetCallerIdentityFn(ctx, params, optFns...)
}

func identityResponse(account, callerArn *string) *fakeSTSClient {
	return &fakeSTSClient{
		GetCallerIdentityFn: func(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
			return &sts.GetCallerIdentityOutput{Account: account, Arn: callerArn}, nil
		},
	}
}

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("must return account and second arn segment", func(t *testing.T) {
		r := require.New(t)
		client := identityResponse(aws.String("012345678910"), aws.String("arn:aws:iam::012345678910:user/jdoe"))

		identity, err := NewService(client).ResolveIdentity(ctx)
		r.NoError(err)
		r.Equal(AccountIdentity{AccountID: "012345678910", UserName: "jdoe"}, identity)
		r.Equal(1, client.calls)
	})

	t.Run("must keep only the second segment of longer arns", func(t *testing.T) {
		r := require.New(t)
		client := identityResponse(aws.String("012345678910"), aws.String("arn:aws:sts::012345678910:assumed-role/Admin/jdoe"))

		identity, err := NewService(client).ResolveIdentity(ctx)
		r.NoError(err)
		r.Equal("Admin", identity.UserName)
	})

	cases := []struct {
		name       string
		account    *string
		arn        *string
		missingKey string
	}{
		{name: "missing account", account: nil, arn: aws.String("arn:aws:iam::012345678910:user/jdoe"), missingKey: "Account"},
		{name: "missing arn", account: aws.String("012345678910"), arn: nil, missingKey: "Arn"},
		{name: "arn without user segment", account: aws.String("012345678910"), arn: aws.String("arn:aws:iam::012345678910:root"), missingKey: "Arn"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			_, err := NewService(identityResponse(tc.account, tc.arn)).ResolveIdentity(ctx)

			var payloadErr *lib.InvalidPayloadError
			r.True(errors.As(err, &payloadErr))
			r.Equal(tc.missingKey, payloadErr.MissingKey)
			r.Equal("get_caller_identity", payloadErr.Operation)
		})
	}

	t.Run("must wrap transport errors", func(t *testing.T) {
		r := require.New(t)
		boom := errors.New("expired token")
		client := &fakeSTSClient{
			GetCallerIdentityFn: func(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
				return nil, boom
			},
		}

		_, err := NewService(client).ResolveIdentity(ctx)
		r.ErrorIs(err, boom)
	})
}
