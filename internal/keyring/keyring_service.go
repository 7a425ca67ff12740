package keyring

import (
	"errors"
	"fmt"
	"log"

	ring "github.com/99designs/keyring"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
)

type Service struct {
	ring ring.Keyring
}

func NewService(name string) (*Service, error) {
	opened, err := ring.Open(ring.Config{
		ServiceName:  name,
		KeychainName: "login",
		AllowedBackends: []ring.BackendType{
			ring.SecretServiceBackend,
			ring.KeychainBackend,
			ring.WinCredBackend,
			ring.KeyCtlBackend,
			ring.KWalletBackend,
			ring.PassBackend,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring %q: %w", name, err)
	}

	return NewServiceWithKeyring(opened), nil
}

func MustNewService(name string) *Service {
	svc, err := NewService(name)
	if err != nil {
		log.Fatalf("creating keyring: %s", err)
	}
	return svc
}

// NewServiceWithKeyring wraps an already opened keyring, e.g. ring.NewArrayKeyring in tests.
func NewServiceWithKeyring(r ring.Keyring) *Service {
	return &Service{ring: r}
}

// Get returns an empty string without error when the key is absent.
func (s *Service) Get(key string) (string, error) {
	value, err := s.ring.Get(key)
	if errors.Is(err, ring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting key %q: %w", key, err)
	}
	return string(value.Data), nil
}

// Set stores value under key. Label and description may be shown by the system prompt
// when the item is accessed.
func (s *Service) Set(key, value string, extra lib.KeyExtras) error {
	item := ring.Item{
		Key:  key,
		Data: []byte(value),
	}
	if extra.Label != "" {
		item.Label = extra.Label
	}
	if extra.Description != "" {
		item.Description = extra.Description
	}
	if err := s.ring.Set(item); err != nil {
		return fmt.Errorf("setting key %q: %w", key, err)
	}
	return nil
}

func (s *Service) Remove(key string) error {
	err := s.ring.Remove(key)
	if errors.Is(err, ring.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}
