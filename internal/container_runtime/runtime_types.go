package container_runtime

import (
	"context"
	"io"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

type LoginResult struct {
	Status        string
	IdentityToken string
}

type ImageSummary struct {
	ID           string
	RepoTags     []string
	Architecture string
	OS           string
	Size         int64
}

func (s ImageSummary) Platform() ocispec.Platform {
	return ocispec.Platform{Architecture: s.Architecture, OS: s.OS}
}

// Runtime is the local container engine. Implementations remember the credentials of the
// last Login per registry and use them for subsequent pushes; they are not safe for
// concurrent pushes.
type Runtime interface {
	Login(ctx context.Context, username, password, serverAddress string) (LoginResult, error)
	InspectImage(ctx context.Context, ref string) (ImageSummary, error)
	TagImage(ctx context.Context, source, target string) error
	// PushImage returns the engine's stream of JSON progress messages. The caller must close it.
	PushImage(ctx context.Context, ref string) (io.ReadCloser, error)
}
