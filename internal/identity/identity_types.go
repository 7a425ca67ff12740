package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const getCallerIdentityOperation = "get_caller_identity"

type AccountIdentity struct {
	AccountID string
	UserName  string
}

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}
