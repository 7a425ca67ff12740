package lib

import "fmt"

const (
	EnvKeyPrefix = "AWSECR"
)

var (
	LogLevelEnv = fmt.Sprintf("%s_%s", EnvKeyPrefix, "LOG_LEVEL")
	ConfigEnv   = fmt.Sprintf("%s_%s", EnvKeyPrefix, "CONFIG")
)

var (
	AwsProfileEnv = "AWS_PROFILE"
)

const (
	DefaultRegion         = "us-east-1"
	DefaultKeyringService = "awsecr"
	DefaultConfigFileName = ".awsecr.yaml"
)
