package report

import (
	uitable "github.com/cppforlife/go-cli-ui/ui/table"
)

const (
	imagesTitleFormat   = " Docker images at %s "
	repositoriesTitle   = " All ECR repositories "
	imagesContent       = "images"
	repositoriesContent = "repositories"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// UI is the subset of go-cli-ui used for output.
type UI interface {
	PrintLinef(pattern string, args ...interface{})
	BeginLinef(pattern string, args ...interface{})
	ErrorLinef(pattern string, args ...interface{})
	PrintBlock(block []byte)
	PrintTable(table uitable.Table)
}
