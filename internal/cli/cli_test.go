package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/viralscript/internal/db"
	"github.com/mithrel/viralscript/internal/wire"
	"github.com/mithrel/viralscript/pkg/api"
)

const testKey = "test-key-0123456789abcdef"

// fakeGemini answers script requests (web search on) and bundle requests.
type fakeGemini struct {
	srv      *httptest.Server
	status   int
	lastKey  atomic.Value
	requests atomic.Int32
}

func newFakeGemini(t *testing.T) *fakeGemini {
	t.Helper()
	f := &fakeGemini{status: http.StatusOK}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.lastKey.Store(r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, `{"error":{"code":401,"message":"API key not valid.","status":"UNAUTHENTICATED"}}`)
			return
		}
		var text []byte
		var grounding string
		if strings.Contains(string(body), "googleSearch") {
			text, _ = json.Marshal([]api.GeneratedScript{
				{ID: "s1", Title: "Hook pertama", Content: "**Visual:** close up\n> Narasi", Hashtags: []string{"promo"}},
				{ID: "s2", Title: "Hook kedua", Content: "- poin", Hashtags: []string{"#viral"}},
			})
			grounding = `,"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://shop.example/p","title":"Shop"}}]}`
		} else {
			text, _ = json.Marshal(api.SocialMediaBundle{
				Reels:    "VO text",
				Feed:     api.FeedPost{Title: "Feed", Visual: "flatlay", Caption: "Beli sekarang"},
				Carousel: api.Carousel{Slides: []api.Slide{{Title: "1", Content: "a"}}},
				Threads:  []string{"t1", "t2"},
			})
		}
		quoted, _ := json.Marshal(string(text))
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":`+string(quoted)+`}]}`+grounding+`}],"modelVersion":"fake"}`)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

type cliEnv struct {
	dir    string
	cfg    string
	gemini *fakeGemini
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "share"))
	t.Setenv("VS_CLI_TEST_KEY", "")
	g := newFakeGemini(t)
	cfg := filepath.Join(dir, "config.toml")
	content := `data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"
output = "plain"

[gemini]
base_url = "` + g.srv.URL + `"

[credential]
backend = "db"
env_vars = ["VS_CLI_TEST_KEY"]
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	return &cliEnv{dir: dir, cfg: cfg, gemini: g}
}

func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return e.runCmd(t, NewRootCmd(), stdin, args...)
}

func (e *cliEnv) runCmd(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	full := append([]string{"--config", e.cfg, "--env-file", filepath.Join(e.dir, "missing.env")}, args...)
	cmd.SetArgs(full)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeyLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No API key (backend: db)")

	_, err = env.run(t, "too-short\n", "key", "set")
	require.Error(t, err)

	out, err = env.run(t, testKey+"\n", "key", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "API key saved (db backend)")

	out, err = env.run(t, "", "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "from local")
	assert.NotContains(t, out, testKey)

	out, err = env.run(t, "", "key", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored API key removed.")

	out, err = env.run(t, "", "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No API key")
}

func TestKeyStatusReportsEnvironment(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv("VS_CLI_TEST_KEY", "env-key-abcdefghijklmnop")
	out, err := env.run(t, "", "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "from environment")
}

func TestGenerateRequiresKey(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "generate", "https://shop.example/p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viralscript key set")
	assert.Equal(t, int32(0), env.gemini.requests.Load())
}

func TestGenerateAndBundleJSON(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, testKey, "key", "set", testKey)
	require.NoError(t, err)

	out, err := env.run(t, "", "generate", "https://shop.example/p", "-n", "2", "--hook", "solutions", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, testKey, env.gemini.lastKey.Load())

	var scripts []api.GeneratedScript
	require.NoError(t, json.Unmarshal([]byte(out), &scripts))
	require.Len(t, scripts, 2)
	assert.Equal(t, "Hook pertama", scripts[0].Title)
	require.Len(t, scripts[0].Sources, 1)
	assert.Equal(t, "https://shop.example/p", scripts[0].Sources[0].URI)

	file := filepath.Join(env.dir, "scripts.json")
	require.NoError(t, os.WriteFile(file, []byte(out), 0o600))

	out, err = env.run(t, "", "bundle", "--from", file, "--index", "2", "-o", "json")
	require.NoError(t, err)
	var b api.SocialMediaBundle
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "VO text", b.Reels)
	assert.Equal(t, []string{"t1", "t2"}, b.Threads)

	// stdin, single object
	one, err := json.Marshal(scripts[0])
	require.NoError(t, err)
	out, err = env.run(t, string(one), "bundle", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Beli sekarang")
}

func TestBundleIndexOutOfRange(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, `[{"id":"a","title":"t","content":"c","hashtags":[]}]`, "bundle", "--index", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestGeneratePlainOutput(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "key", "set", testKey)
	require.NoError(t, err)

	out, err := env.run(t, "", "generate", "https://shop.example/p", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Hook pertama")
	assert.Contains(t, out, "Hook kedua")
	assert.NotContains(t, out, "**")
}

func TestGenerateRejectedKey(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "key", "set", testKey)
	require.NoError(t, err)
	env.gemini.status = http.StatusUnauthorized

	_, err = env.run(t, "", "generate", "https://shop.example/p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid.")
	assert.Contains(t, err.Error(), "viralscript key set")
}

func TestGenerateValidation(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "key", "set", testKey)
	require.NoError(t, err)

	_, err = env.run(t, "", "generate", "https://shop.example/p", "--count", "22")
	require.Error(t, err)
	var ve *api.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = env.run(t, "", "generate", "https://shop.example/p", "--hook", "zzzzqqq")
	require.Error(t, err)
	assert.Equal(t, int32(0), env.gemini.requests.Load())
}

func TestThemeCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = env.run(t, "", "theme", "light")
	require.NoError(t, err)
	out, err = env.run(t, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = env.run(t, "", "theme", "sepia")
	require.Error(t, err)
}

func TestConfigGenerate(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "out", "config.toml")

	out, err := env.run(t, "", "config", "generate", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = env.run(t, "", "config", "generate", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config already exists")

	out, err = env.run(t, "", "config", "generate", "-o", path, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "Config already up to date")

	_, err = env.run(t, "", "config", "generate", "-o", path, "--update", "--overwrite")
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "defaults.toml")

	_, err := env.run(t, "", "config", "defaults", "-o", path, "--hook", "solutions")
	require.NoError(t, err)
	_, err = env.run(t, "", "config", "defaults", "-o", path, "--count", "9")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Equal(t, 1, strings.Count(s, "[defaults]"))
	assert.Contains(t, s, `hook = "`+string(api.HookSolutions)+`"`)
	assert.Contains(t, s, "script_count = 9")

	_, err = env.run(t, "", "config", "defaults", "-o", path, "--reset")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "[defaults]")

	_, err = env.run(t, "", "config", "defaults", "-o", path)
	require.Error(t, err)
}

func TestCompletionGenerate(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "", "completion", "generate", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "viralscript")
}

func TestScoreCompletions(t *testing.T) {
	labels := enumStrings(api.HookTypes())
	assert.Equal(t, labels, scoreCompletions("", labels))
	got := scoreCompletions("solusi", labels)
	require.NotEmpty(t, got)
	assert.Equal(t, string(api.HookSolutions), got[0])
}

func TestAppClosedWhenCommandFails(t *testing.T) {
	env := newCLIEnv(t)
	for _, fail := range []bool{true, false} {
		var app *wire.App
		root := NewRootCmd()
		root.AddCommand(&cobra.Command{
			Use: "capture",
			RunE: func(cmd *cobra.Command, args []string) error {
				app = getApp(cmd)
				if fail {
					return errors.New("failed on purpose")
				}
				return nil
			},
		})
		_, err := env.runCmd(t, root, "", "capture")
		assert.Equal(t, fail, err != nil)
		require.NotNil(t, app)

		_, err = app.Store.Prefs.Get(context.Background(), db.KeyTheme)
		require.Error(t, err)
		assert.NotErrorIs(t, err, db.ErrNotFound)
	}
}
