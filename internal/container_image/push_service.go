package container_image

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/AnotherFullstackDev/awsecr/internal/container_registry"
	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/google/go-containerregistry/pkg/name"
)

type PushService struct {
	authenticator        RegistryAuthenticator
	placeholdersResolver PlaceholdersResolver
}

func NewPushService(authenticator RegistryAuthenticator, resolver PlaceholdersResolver) *PushService {
	return &PushService{
		authenticator:        authenticator,
		placeholdersResolver: resolver,
	}
}

// PushStream is an image push in flight. Events can be ranged over once.
type PushStream struct {
	Login       container_runtime.LoginResult
	Source      string
	Destination string

	body   io.ReadCloser
	events iter.Seq2[ProgressEvent, error]
}

func (s *PushStream) Events() iter.Seq2[ProgressEvent, error] {
	return s.events
}

func (s *PushStream) Close() error {
	return s.body.Close()
}

// Push authenticates against the account's registry, tags localImage into repository and starts
// pushing it. localImage must be name:tag and may contain placeholders.
func (s *PushService) Push(ctx context.Context, accountID, repository, localImage string) (*PushStream, error) {
	login, runtime, err := s.authenticator.Authenticate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	source, err := s.placeholdersResolver.ResolvePlaceholders(localImage)
	if err != nil {
		return nil, fmt.Errorf("resolving placeholders in %s: %w", localImage, err)
	}

	imageName, tag, ok := strings.Cut(source, ":")
	if !ok || imageName == "" || tag == "" {
		return nil, fmt.Errorf("%w - image reference %q must be in the name:tag form", lib.BadUserInputError, source)
	}

	summary, err := runtime.InspectImage(ctx, source)
	if err != nil {
		return nil, err
	}

	registry := container_registry.RegistryFQDN(accountID, s.authenticator.Region())
	destination, err := name.NewTag(fmt.Sprintf("%s/%s:%s", registry, repository, tag), name.StrictValidation)
	if err != nil {
		return nil, fmt.Errorf("%w - invalid destination for repository %q and tag %q: %w", lib.BadUserInputError, repository, tag, err)
	}

	if err := runtime.TagImage(ctx, source, destination.String()); err != nil {
		return nil, err
	}

	platform := summary.Platform()
	slog.InfoContext(ctx, "pushing image to remote registry",
		"source", source,
		"destination", destination.String(),
		"image_id", summary.ID,
		"os", platform.OS,
		"architecture", platform.Architecture)

	body, err := runtime.PushImage(ctx, destination.String())
	if err != nil {
		return nil, err
	}

	return &PushStream{
		Login:       login,
		Source:      source,
		Destination: destination.String(),
		body:        body,
		events:      decodeProgress(body),
	}, nil
}
