package placeholders

import (
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/AnotherFullstackDev/awsecr/internal/placeholders/git"
)

const shortCommitLength = 7

var (
	placeholderRegExp = regexp.MustCompile(`{{\s*([^{}]+?)\s*}}`)
	modifierRegExp    = regexp.MustCompile(`^(\w+)(?:\(([^()]*)\))?$`)
)

// Service expands {{ ... }} placeholders in image references, e.g. "api:{{ git.short_commit }}".
type Service struct {
	gitRepoInfo git.RepositoryInfoService
	now         func() time.Time
	resolvers   map[string]Resolver
	modifiers   map[string]modifierResolver
}

func NewService(gitRepoInfo git.RepositoryInfoService) *Service {
	s := &Service{
		gitRepoInfo: gitRepoInfo,
		now:         time.Now,
	}

	s.resolvers = map[string]Resolver{
		"git.branch":       s.resolveGitBranch,
		"git.commit":       s.resolveGitCommit,
		"git.short_commit": s.resolveGitShortCommit,
		"git.tag":          s.resolveGitTag,
		"time.unix":        s.resolveUnixTimestamp,
		"time.iso8601":     s.resolveISO8601Timestamp,
	}
	s.modifiers = map[string]modifierResolver{
		"upper":       upperModifier,
		"lower":       lowerModifier,
		"trim":        trimModifier,
		"replace":     replaceModifier,
		"replace_all": replaceAllModifier,
	}

	return s
}

// WithResolvers returns a copy of the service that also knows the given placeholders.
func (s *Service) WithResolvers(extra map[string]Resolver) *Service {
	copied := *s
	copied.resolvers = maps.Clone(s.resolvers)
	maps.Copy(copied.resolvers, extra)
	return &copied
}

func extractPlaceholders(value string) ([]placeholder, error) {
	matches := placeholderRegExp.FindAllStringSubmatch(value, -1)
	placeholders := make([]placeholder, 0, len(matches))

	for _, match := range matches {
		raw, inner := match[0], match[1]

		parts := strings.Split(inner, "|")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("%w - empty placeholder %s", lib.BadUserInputError, raw)
		}

		modifiers := make([]modifier, 0, len(parts)-1)
		for _, part := range parts[1:] {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			modifierMatch := modifierRegExp.FindStringSubmatch(part)
			if modifierMatch == nil {
				return nil, fmt.Errorf("%w - invalid modifier %q in placeholder %s", lib.BadUserInputError, part, raw)
			}

			modifiers = append(modifiers, modifier{
				name: modifierMatch[1],
				args: parseModifierArgs(modifierMatch[2]),
			})
		}

		placeholders = append(placeholders, placeholder{raw: raw, name: name, modifiers: modifiers})
	}

	return placeholders, nil
}

func parseModifierArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	args := strings.Split(raw, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
		if unquoted, err := strconv.Unquote(args[i]); err == nil {
			args[i] = unquoted
		} else if len(args[i]) >= 2 && args[i][0] == '\'' && args[i][len(args[i])-1] == '\'' {
			args[i] = args[i][1 : len(args[i])-1]
		}
	}
	return args
}

// ResolvePlaceholders replaces every placeholder of value. Strings without placeholders are
// returned unchanged.
func (s *Service) ResolvePlaceholders(value string) (string, error) {
	placeholders, err := extractPlaceholders(value)
	if err != nil {
		return "", fmt.Errorf("extracting placeholders: %w", err)
	}

	for _, p := range placeholders {
		resolver, ok := s.resolvers[p.name]
		if !ok {
			return "", fmt.Errorf("%w - unknown placeholder %s", lib.BadUserInputError, p.raw)
		}

		resolved, err := resolver()
		if err != nil {
			return "", fmt.Errorf("resolving placeholder %s: %w", p.raw, err)
		}

		for _, m := range p.modifiers {
			apply, ok := s.modifiers[m.name]
			if !ok {
				return "", fmt.Errorf("%w - unknown modifier %s in placeholder %s", lib.BadUserInputError, m.name, p.raw)
			}

			resolved, err = apply(resolved, m.args)
			if err != nil {
				return "", fmt.Errorf("applying modifier %s to placeholder %s: %w", m.name, p.raw, err)
			}
		}

		value = strings.Replace(value, p.raw, resolved, 1)
	}

	return value, nil
}

func (s *Service) resolveGitBranch() (string, error) {
	branch, err := s.gitRepoInfo.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("getting current git branch: %w", err)
	}
	return branch, nil
}

func (s *Service) resolveGitCommit() (string, error) {
	commit, err := s.gitRepoInfo.CurrentCommit()
	if err != nil {
		return "", fmt.Errorf("getting current git commit: %w", err)
	}
	return commit.Hash.String(), nil
}

func (s *Service) resolveGitShortCommit() (string, error) {
	commit, err := s.resolveGitCommit()
	if err != nil {
		return "", err
	}
	return commit[:min(shortCommitLength, len(commit))], nil
}

func (s *Service) resolveGitTag() (string, error) {
	tag, err := s.gitRepoInfo.CurrentTag()
	if err != nil {
		return "", fmt.Errorf("getting current git tag: %w", err)
	}
	if tag == nil {
		return "", fmt.Errorf("%w - no git tag points at the current commit", lib.BadUserInputError)
	}
	return tag.Name().Short(), nil
}

func (s *Service) resolveUnixTimestamp() (string, error) {
	return strconv.FormatInt(s.now().UTC().Unix(), 10), nil
}

// resolveISO8601Timestamp avoids ":" so the value can be used as an image tag.
func (s *Service) resolveISO8601Timestamp() (string, error) {
	return s.now().UTC().Format("20060102T150405Z"), nil
}
