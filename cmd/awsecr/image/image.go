package image

import (
	"fmt"

	"github.com/AnotherFullstackDev/awsecr/internal/factories"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/AnotherFullstackDev/awsecr/internal/report"
	"github.com/spf13/cobra"
)

const missingOperationMessage = "image operation requires --list or --push options"

func NewImageCmd(locator *factories.SharedServicesLocator, ui report.UI) *cobra.Command {
	var listRepository, pushRepository, localImage string

	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "List or push the images of an ECR repository",
		Example: `  awsecr image --list my-service
  awsecr image --push my-service --image my-service:0.1.0
  awsecr image --push my-service --image "my-service:{{ git.short_commit }}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case listRepository != "":
				return runList(cmd.Context(), locator, ui, listRepository)
			case pushRepository != "":
				if localImage == "" {
					return fmt.Errorf("%w - --image is required with --push", lib.BadUserInputError)
				}
				return runPush(cmd.Context(), locator, ui, pushRepository, localImage)
			default:
				_ = cmd.Usage()
				return fmt.Errorf("%w - %s", lib.BadUserInputError, missingOperationMessage)
			}
		},
	}

	flags := imageCmd.Flags()
	flags.StringVar(&listRepository, "list", "", "List the images of the repository")
	flags.StringVar(&pushRepository, "push", "", "Push a local image to the repository")
	flags.StringVar(&localImage, "image", "", "Local image reference in the name:tag form, placeholders allowed")
	imageCmd.MarkFlagsMutuallyExclusive("list", "push")

	return imageCmd
}
