package keys

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/mithrel/viralscript/internal/db"
	"github.com/mithrel/viralscript/pkg/api"
)

func noEnv(string) string { return "" }

func TestDBStoreRoundTrip(t *testing.T) {
	store := &DBStore{KV: db.NewMem()}
	value := "secret-value"

	require.NoError(t, store.Put(CredentialID, value))
	got, err := store.Get(CredentialID)
	require.NoError(t, err)
	require.Equal(t, value, got)

	require.NoError(t, store.Delete(CredentialID))
	_, err = store.Get(CredentialID)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := &KeyringStore{Service: "viralscript-test"}

	_, err := store.Get(CredentialID)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, store.Put(CredentialID, "abc"))
	got, err := store.Get(CredentialID)
	require.NoError(t, err)
	require.Equal(t, "abc", got)
	require.NoError(t, store.Delete(CredentialID))
	require.NoError(t, store.Delete(CredentialID))
	require.True(t, KeyringAvailable())
}

func TestSaveRejectsShortValues(t *testing.T) {
	creds := NewCredentials(&DBStore{KV: db.NewMem()}, nil).WithGetenv(noEnv)

	for _, n := range []int{0, 1, 10, 19} {
		err := creds.Save(strings.Repeat("k", n))
		var ve *api.ValidationError
		require.True(t, errors.As(err, &ve), "len %d", n)
		require.Contains(t, ve.Message, "not a plausible key")
		require.False(t, creds.Has())
	}

	// Surrounding whitespace does not count toward the length.
	require.Error(t, creds.Save("   "+strings.Repeat("k", 19)+"\t\n"))

	for _, n := range []int{20, 25, 64} {
		require.NoError(t, creds.Save(strings.Repeat("k", n)), "len %d", n)
	}
}

func TestSaveTrimsAndClear(t *testing.T) {
	creds := NewCredentials(&DBStore{KV: db.NewMem()}, nil).WithGetenv(noEnv)
	key := strings.Repeat("A", 25)

	require.False(t, creds.Has())
	require.NoError(t, creds.Save("  "+key+"\n"))
	got, origin, ok := creds.Resolve()
	require.True(t, ok)
	require.Equal(t, key, got)
	require.Equal(t, OriginLocal, origin)

	require.NoError(t, creds.Clear())
	require.False(t, creds.Has())
	require.NoError(t, creds.Clear())
}

func TestResolvePrefersLocalOverEnv(t *testing.T) {
	env := map[string]string{"GEMINI_API_KEY": "env-key"}
	creds := NewCredentials(&DBStore{KV: db.NewMem()}, nil).WithGetenv(func(k string) string { return env[k] })

	require.True(t, creds.Has())
	got, origin, _ := creds.Resolve()
	require.Equal(t, "env-key", got)
	require.Equal(t, OriginEnv, origin)

	local := strings.Repeat("L", 30)
	require.NoError(t, creds.Save(local))
	got, origin, _ = creds.Resolve()
	require.Equal(t, local, got)
	require.Equal(t, OriginLocal, origin)

	// Updates take effect on the very next resolve.
	env["GEMINI_API_KEY"] = ""
	require.NoError(t, creds.Clear())
	require.False(t, creds.Has())
}

func TestEnvVarOrder(t *testing.T) {
	env := map[string]string{"API_KEY": "generic", "VIRALSCRIPT_API_KEY": "specific"}
	creds := NewCredentials(&DBStore{KV: db.NewMem()}, nil).WithGetenv(func(k string) string { return env[k] })
	got, _, _ := creds.Resolve()
	require.Equal(t, "specific", got)

	creds = NewCredentials(&DBStore{KV: db.NewMem()}, []string{"API_KEY"}).WithGetenv(func(k string) string { return env[k] })
	got, _, _ = creds.Resolve()
	require.Equal(t, "generic", got)
}
