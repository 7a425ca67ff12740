package container_registry

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

const (
	bytesPerMB     = 1024 * 1000
	PushedAtLayout = "2006-01-02 15:04:05 -0700 MST"
)

type ImagesService struct {
	ecr    ECRClient
	region string
}

func NewImagesService(client ECRClient, region string) *ImagesService {
	return &ImagesService{ecr: client, region: region}
}

// ListImages describes the images of repository in the order ECR returns them. Only the
// first page is read.
func (s *ImagesService) ListImages(ctx context.Context, accountID, repository string) ([]ImageRecord, error) {
	registry := RegistryFQDN(accountID, s.region)

	output, err := s.ecr.DescribeImages(ctx, &ecr.DescribeImagesInput{
		RegistryId:     aws.String(accountID),
		RepositoryName: aws.String(repository),
	})
	if err != nil {
		return nil, fmt.Errorf("describing images of %s: %w", repository, err)
	}

	slog.DebugContext(ctx, "described images", "registry", registry, "repository", repository, "count", len(output.ImageDetails))

	records := make([]ImageRecord, 0, len(output.ImageDetails))
	for _, detail := range output.ImageDetails {
		record, err := NewImageRecord(registry, repository, detail)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// NewImageRecord maps one DescribeImages entry. A missing scan findings summary is an
// invalid payload like any other missing field.
func NewImageRecord(registry, repository string, detail types.ImageDetail) (ImageRecord, error) {
	if len(detail.ImageTags) == 0 {
		return ImageRecord{}, lib.NewInvalidPayloadError("imageTags", describeImagesOperation)
	}
	if detail.ImageScanStatus == nil || detail.ImageScanStatus.Status == "" {
		return ImageRecord{}, lib.NewInvalidPayloadError("imageScanStatus", describeImagesOperation)
	}
	if detail.ImageSizeInBytes == nil {
		return ImageRecord{}, lib.NewInvalidPayloadError("imageSizeInBytes", describeImagesOperation)
	}
	if detail.ImagePushedAt == nil {
		return ImageRecord{}, lib.NewInvalidPayloadError("imagePushedAt", describeImagesOperation)
	}
	if detail.ImageScanFindingsSummary == nil || detail.ImageScanFindingsSummary.FindingSeverityCounts == nil {
		return ImageRecord{}, lib.NewInvalidPayloadError("imageScanFindingsSummary", describeImagesOperation)
	}

	var vulnerabilities uint32
	for _, count := range detail.ImageScanFindingsSummary.FindingSeverityCounts {
		vulnerabilities += uint32(count)
	}

	return ImageRecord{
		DisplayName:        fmt.Sprintf("%s/%s:%s", registry, repository, detail.ImageTags[0]),
		ScanStatus:         ScanStatus(detail.ImageScanStatus.Status),
		SizeBytes:          uint64(aws.ToInt64(detail.ImageSizeInBytes)),
		PushedAt:           aws.ToTime(detail.ImagePushedAt),
		VulnerabilityCount: vulnerabilities,
	}, nil
}

func (r ImageRecord) SizeInMB() float64 {
	return float64(r.SizeBytes) / bytesPerMB
}

func (r ImageRecord) Row() []string {
	return []string{
		r.DisplayName,
		string(r.ScanStatus),
		strconv.FormatFloat(r.SizeInMB(), 'f', 2, 64),
		r.PushedAt.Format(PushedAtLayout),
		strconv.FormatUint(uint64(r.VulnerabilityCount), 10),
	}
}

func ImageRecordFields() []string {
	return []string{"Image", "Scan status", "Size (MB)", "Pushed at", "Vulnerabilities"}
}

// ImageRows returns the header row followed by one row per record.
func ImageRows(records []ImageRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, ImageRecordFields())
	for _, record := range records {
		rows = append(rows, record.Row())
	}
	return rows
}

