package lib

// KeyExtras is shown by the OS keyring next to a stored secret.
type KeyExtras struct {
	Label       string
	Description string
}

// CredentialsStorage keeps secrets such as cached registry tokens. Get returns an empty
// string for a missing key, and Remove of a missing key is not an error.
type CredentialsStorage interface {
	Get(key string) (string, error)
	Set(key, value string, extra KeyExtras) error
	Remove(key string) error
}
