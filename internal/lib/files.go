package lib

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// NameMatchesOneOfPatterns reports whether name matches any of the glob patterns.
// An empty pattern list matches everything.
func NameMatchesOneOfPatterns(name string, patterns []string) (bool, error) {
	if len(patterns) == 0 {
		return true, nil
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			return false, fmt.Errorf("%w - invalid pattern %q", BadUserInputError, pattern)
		}

		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
