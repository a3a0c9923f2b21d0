package keys

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mithrel/viralscript/internal/db"
	"github.com/mithrel/viralscript/pkg/api"
)

// MinKeyLength is the shortest value accepted as a plausible API key.
const MinKeyLength = 20

// CredentialID is the id the credential is stored under in every backend.
const CredentialID = db.KeyCredential

// DefaultEnvVars are consulted in order when no local credential is stored.
var DefaultEnvVars = []string{"VIRALSCRIPT_API_KEY", "GEMINI_API_KEY", "API_KEY"}

// Origin tells where a resolved credential came from.
type Origin int

const (
	OriginNone Origin = iota
	OriginLocal
	OriginEnv
)

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginEnv:
		return "environment"
	default:
		return "none"
	}
}

// Credentials holds the single user-supplied API key. At most one value is
// stored; a stored value overrides any environment-level key.
type Credentials struct {
	store   KeyStore
	envVars []string
	getenv  func(string) string
}

// NewCredentials wraps store. A nil envVars uses DefaultEnvVars.
func NewCredentials(store KeyStore, envVars []string) *Credentials {
	if envVars == nil {
		envVars = DefaultEnvVars
	}
	return &Credentials{store: store, envVars: envVars, getenv: os.Getenv}
}

// WithGetenv swaps the environment lookup; tests use it to avoid touching the process env.
func (c *Credentials) WithGetenv(fn func(string) string) *Credentials {
	c.getenv = fn
	return c
}

// Has reports whether any credential, local or environment, is available.
func (c *Credentials) Has() bool {
	_, _, ok := c.Resolve()
	return ok
}

// Save trims value and stores it, rejecting implausibly short keys.
func (c *Credentials) Save(value string) error {
	v := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(v); n < MinKeyLength {
		return api.NewValidationError("apiKey", "not a plausible key (%d characters, need at least %d)", n, MinKeyLength)
	}
	if err := c.store.Put(CredentialID, v); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Clear removes the stored value. Environment keys are untouched.
func (c *Credentials) Clear() error {
	if err := c.store.Delete(CredentialID); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Resolve returns the key for the next remote call, read fresh every time.
func (c *Credentials) Resolve() (string, Origin, bool) {
	// An unreadable backend is treated like an empty one.
	if v, err := c.store.Get(CredentialID); err == nil && strings.TrimSpace(v) != "" {
		return v, OriginLocal, true
	}
	for _, name := range c.envVars {
		if v := strings.TrimSpace(c.getenv(name)); v != "" {
			return v, OriginEnv, true
		}
	}
	return "", OriginNone, false
}
