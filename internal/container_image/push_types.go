package container_image

import (
	"context"

	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
)

// ProgressEvent is one displayable step of an image push, either LayerProgress or Tick.
type ProgressEvent interface {
	isProgressEvent()
}

// LayerProgress reports the upload progress of one layer.
type LayerProgress struct {
	LayerID  string
	Progress string
}

// Tick is any other status message of the push.
type Tick struct{}

func (LayerProgress) isProgressEvent() {}
func (Tick) isProgressEvent()          {}

type PlaceholdersResolver interface {
	ResolvePlaceholders(input string) (string, error)
}

type RegistryAuthenticator interface {
	Authenticate(ctx context.Context, accountID string) (container_runtime.LoginResult, container_runtime.Runtime, error)
	Region() string
}
