package container_registry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

type RepositoriesService struct {
	ecr ECRClient
}

// NewRepositoriesService fails fast when no AWS profile is configured, before any call to AWS is made.
func NewRepositoriesService(profile string, client ECRClient) (*RepositoriesService, error) {
	if profile == "" {
		return nil, fmt.Errorf("%w - missing configuration of awscli (%s environment variable)", lib.MissingConfigurationError, lib.AwsProfileEnv)
	}

	return &RepositoriesService{ecr: client}, nil
}

// ListRepositories returns the account's repositories whose names match one of the glob
// patterns, or all of them when no pattern is given.
func (s *RepositoriesService) ListRepositories(ctx context.Context, accountID string, patterns []string) ([]RepositoryRecord, error) {
	output, err := s.ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RegistryId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("describing repositories: %w", err)
	}

	records := make([]RepositoryRecord, 0, len(output.Repositories))
	for _, repository := range output.Repositories {
		name := aws.ToString(repository.RepositoryName)
		if name == "" {
			return nil, lib.NewInvalidPayloadError("repositoryName", describeRepositoriesOperation)
		}

		ok, err := lib.NameMatchesOneOfPatterns(name, patterns)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		record := RepositoryRecord{
			Name:          name,
			URI:           aws.ToString(repository.RepositoryUri),
			CreatedAt:     aws.ToTime(repository.CreatedAt),
			TagMutability: string(repository.ImageTagMutability),
		}
		if repository.ImageScanningConfiguration != nil {
			record.ScanOnPush = repository.ImageScanningConfiguration.ScanOnPush
		}
		records = append(records, record)
	}

	return records, nil
}

func (r RepositoryRecord) Row() []string {
	return []string{
		r.Name,
		r.URI,
		r.CreatedAt.Format(PushedAtLayout),
		strconv.FormatBool(r.ScanOnPush),
		r.TagMutability,
	}
}

func RepositoryRecordFields() []string {
	return []string{"Repository", "URI", "Created at", "Scan on push", "Tag mutability"}
}

func RepositoryRows(records []RepositoryRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, RepositoryRecordFields())
	for _, record := range records {
		rows = append(rows, record.Row())
	}
	return rows
}
