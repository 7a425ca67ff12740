package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Service struct {
	sts STSClient
}

func NewService(client STSClient) *Service {
	return &Service{sts: client}
}

// ResolveIdentity asks STS who the caller is. The user name is the second
// "/"-separated segment of the caller ARN, e.g. "arn:aws:iam::123456789012:user/jdoe".
func (s *Service) ResolveIdentity(ctx context.Context) (AccountIdentity, error) {
	output, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return AccountIdentity{}, fmt.Errorf("getting caller identity: %w", err)
	}

	accountID := aws.ToString(output.Account)
	if accountID == "" {
		return AccountIdentity{}, lib.NewInvalidPayloadError("Account", getCallerIdentityOperation)
	}

	callerArn := aws.ToString(output.Arn)
	if callerArn == "" {
		return AccountIdentity{}, lib.NewInvalidPayloadError("Arn", getCallerIdentityOperation)
	}

	arnParts := strings.Split(callerArn, "/")
	if len(arnParts) < 2 || arnParts[1] == "" {
		return AccountIdentity{}, lib.NewInvalidPayloadError("Arn", getCallerIdentityOperation)
	}

	if parsed, err := arn.Parse(callerArn); err == nil {
		slog.DebugContext(ctx, "resolved caller identity",
			"account_id", accountID,
			"partition", parsed.Partition,
			"service", parsed.Service,
			"resource", parsed.Resource)
	}

	return AccountIdentity{
		AccountID: accountID,
		UserName:  arnParts[1],
	}, nil
}
