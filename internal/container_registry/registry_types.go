package container_registry

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

const (
	getAuthorizationTokenOperation = "get_authorization_token"
	describeImagesOperation        = "describe_images"
	describeRepositoriesOperation  = "describe_repositories"
)

// ECRClient contains only the ECR APIs called by this package.
type ECRClient interface {
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
	DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
}

type RegistryToken struct {
	RawToken  string
	Region    string
	ExpiresAt time.Time
}

type Credentials struct {
	Username string
	Password string
}

type ScanStatus string

const (
	ScanStatusInProgress             ScanStatus = "IN_PROGRESS"
	ScanStatusComplete               ScanStatus = "COMPLETE"
	ScanStatusFailed                 ScanStatus = "FAILED"
	ScanStatusUnsupportedImage       ScanStatus = "UNSUPPORTED_IMAGE"
	ScanStatusActive                 ScanStatus = "ACTIVE"
	ScanStatusPending                ScanStatus = "PENDING"
	ScanStatusScanEligibilityExpired ScanStatus = "SCAN_ELIGIBILITY_EXPIRED"
	ScanStatusFindingsUnavailable    ScanStatus = "FINDINGS_UNAVAILABLE"
)

type ImageRecord struct {
	DisplayName        string     `json:"image" yaml:"image"`
	ScanStatus         ScanStatus `json:"scan_status" yaml:"scan_status"`
	SizeBytes          uint64     `json:"size_bytes" yaml:"size_bytes"`
	PushedAt           time.Time  `json:"pushed_at" yaml:"pushed_at"`
	VulnerabilityCount uint32     `json:"vulnerabilities" yaml:"vulnerabilities"`
}

type RepositoryRecord struct {
	Name          string    `json:"name" yaml:"name"`
	URI           string    `json:"uri" yaml:"uri"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	ScanOnPush    bool      `json:"scan_on_push" yaml:"scan_on_push"`
	TagMutability string    `json:"tag_mutability" yaml:"tag_mutability"`
}
