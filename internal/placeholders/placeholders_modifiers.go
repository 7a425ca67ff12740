package placeholders

import (
	"fmt"
	"strings"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
)

func upperModifier(input string, _ []string) (string, error) {
	return strings.ToUpper(input), nil
}

func lowerModifier(input string, _ []string) (string, error) {
	return strings.ToLower(input), nil
}

func trimModifier(input string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return strings.TrimSpace(input), nil
	case 1:
		return strings.Trim(input, args[0]), nil
	default:
		return "", fmt.Errorf("%w - trim expects at most one argument, got %d", lib.BadUserInputError, len(args))
	}
}

func replaceModifier(input string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w - replace expects two arguments, got %d", lib.BadUserInputError, len(args))
	}
	return strings.Replace(input, args[0], args[1], 1), nil
}

func replaceAllModifier(input string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w - replace_all expects two arguments, got %d", lib.BadUserInputError, len(args))
	}
	return strings.ReplaceAll(input, args[0], args[1]), nil
}
