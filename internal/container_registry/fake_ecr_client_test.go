package container_registry

import (
	"context"
	"io"

	"github.com/AnotherFullstackDev/awsecr/internal/container_runtime"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

const testAccountID = "012345678910"

// fakeECRClient is a fake for the ECRClient interface. Each method is backed by a
// function contained in the struct. Nil functions will cause panics when invoked.
type fakeECRClient struct {
	GetAuthorizationTokenFn func(context.Context, *ecr.GetAuthorizationTokenInput, ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
	DescribeImagesFn        func(context.Context, *ecr.DescribeImagesInput, ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
	DescribeRepositoriesFn  func(context.Context, *ecr.DescribeRepositoriesInput, ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
}

var _ ECRClient = (*fakeECRClient)(nil)

func (f *fakeECRClient) GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
	return f.GetAuthorizationTokenFn(ctx, params, optFns...)
}

func (f *fakeECRClient) DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error) {
	return f.DescribeImagesFn(ctx, params, optFns...)
}

func (f *fakeECRClient) DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	return f.DescribeRepositoriesFn(ctx, params, optFns...)
}

type loginCall struct {
	Username, Password, ServerAddress string
}

// fakeRuntime records logins; the other operations are not used by this package.
type fakeRuntime struct {
	LoginFn func(context.Context, string, string, string) (container_runtime.LoginResult, error)
	logins  []loginCall
}

var _ container_runtime.Runtime = (*fakeRuntime)(nil)

func (f *fakeRuntime) Login(ctx context.Context, username, password, serverAddress string) (container_runtime.LoginResult, error) {
	f.logins = append(f.logins, loginCall{username, password, serverAddress})
	if f.LoginFn != nil {
		return f.LoginFn(ctx, username, password, serverAddress)
	}
	return container_runtime.LoginResult{Status: "Login Succeeded"}, nil
}

func (f *fakeRuntime) InspectImage(context.Context, string) (container_runtime.ImageSummary, error) {
	panic("not used")
}

func (f *fakeRuntime) TagImage(context.Context, string, string) error {
	panic("not used")
}

func (f *fakeRuntime) PushImage(context.Context, string) (io.ReadCloser, error) {
	panic("not used")
}
