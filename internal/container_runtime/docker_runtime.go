package container_runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/google/go-containerregistry/pkg/name"
)

type DockerRuntime struct {
	client *client.Client
	auths  map[string]registry.AuthConfig
}

var _ Runtime = (*DockerRuntime)(nil)

func NewDockerRuntime() (*DockerRuntime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	return NewDockerRuntimeWithClient(cli), nil
}

func NewDockerRuntimeWithClient(cli *client.Client) *DockerRuntime {
	return &DockerRuntime{
		client: cli,
		auths:  map[string]registry.AuthConfig{},
	}
}

func (r *DockerRuntime) Close() error {
	return r.client.Close()
}

// Login always re-authenticates against the registry, the daemon does not keep a session for us.
func (r *DockerRuntime) Login(ctx context.Context, username, password, serverAddress string) (LoginResult, error) {
	authConfig := registry.AuthConfig{
		Username:      username,
		Password:      password,
		ServerAddress: serverAddress,
	}

	resp, err := r.client.RegistryLogin(ctx, authConfig)
	if err != nil {
		return LoginResult{}, fmt.Errorf("logging in to %s: %w", serverAddress, err)
	}

	if resp.IdentityToken != "" {
		authConfig.Password = ""
		authConfig.IdentityToken = resp.IdentityToken
	}
	r.auths[serverAddress] = authConfig

	slog.DebugContext(ctx, "logged in to registry", "registry", serverAddress, "status", resp.Status)

	return LoginResult{
		Status:        resp.Status,
		IdentityToken: resp.IdentityToken,
	}, nil
}

func (r *DockerRuntime) InspectImage(ctx context.Context, ref string) (ImageSummary, error) {
	resp, err := r.client.ImageInspect(ctx, ref)
	if err != nil {
		return ImageSummary{}, fmt.Errorf("inspecting image %s: %w", ref, err)
	}

	return ImageSummary{
		ID:           resp.ID,
		RepoTags:     resp.RepoTags,
		Architecture: resp.Architecture,
		OS:           resp.Os,
		Size:         resp.Size,
	}, nil
}

func (r *DockerRuntime) TagImage(ctx context.Context, source, target string) error {
	if err := r.client.ImageTag(ctx, source, target); err != nil {
		return fmt.Errorf("tagging image %s as %s: %w", source, target, err)
	}
	return nil
}

func (r *DockerRuntime) PushImage(ctx context.Context, ref string) (io.ReadCloser, error) {
	parsed, err := name.ParseReference(ref)
	if err != nil {
		return nil, fmt.Errorf("parsing image reference %s: %w", ref, err)
	}

	registryHost := parsed.Context().RegistryStr()
	authConfig, ok := r.auths[registryHost]
	if !ok {
		slog.WarnContext(ctx, "pushing without a prior login", "registry", registryHost)
	}

	encodedAuth, err := registry.EncodeAuthConfig(authConfig)
	if err != nil {
		return nil, fmt.Errorf("encoding registry auth for %s: %w", registryHost, err)
	}

	body, err := r.client.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: encodedAuth})
	if err != nil {
		return nil, fmt.Errorf("pushing image %s: %w", ref, err)
	}

	return body, nil
}
