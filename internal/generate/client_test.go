package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mithrel/viralscript/internal/keys"
	"github.com/mithrel/viralscript/internal/llm"
	"github.com/mithrel/viralscript/internal/llm/openaicompat"
	"github.com/mithrel/viralscript/pkg/api"
)

type staticCreds struct {
	key string
}

func (s *staticCreds) Resolve() (string, keys.Origin, bool) {
	if s.key == "" {
		return "", keys.OriginNone, false
	}
	return s.key, keys.OriginLocal, true
}

type fakeProvider struct {
	resp *llm.Response
	err  error
	reqs []llm.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newClient(t *testing.T, creds *staticCreds, p *fakeProvider) (*Client, *[]string) {
	t.Helper()
	var seen []string
	factory := func(key string) (llm.Provider, error) {
		seen = append(seen, key)
		return p, nil
	}
	return New(creds, factory, zaptest.NewLogger(t)), &seen
}

func validForm() api.ScriptFormValues {
	f := api.DefaultForm()
	f.ProductURL = "https://shop.example/p/123"
	f.ScriptCount = 3
	return f
}

const threeScripts = `[
 {"id":"a","title":"A","content":"### 🪝 HOOK\nhi","hashtags":["#a","b","c","d","e"]},
 {"id":"","title":"B","content":"x","hashtags":[]},
 {"id":"c","title":"C","content":"y","hashtags":["z"]}
]`

func TestGenerateScriptsAttachesSourcesToEveryScript(t *testing.T) {
	sources := []api.Source{{Title: "S1", URI: "https://s1"}, {Title: "S2", URI: "https://s2"}}
	p := &fakeProvider{resp: &llm.Response{Text: threeScripts, Sources: sources}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)

	scripts, err := c.GenerateScripts(context.Background(), validForm())
	require.NoError(t, err)
	require.Len(t, scripts, 3)
	for _, s := range scripts {
		assert.Equal(t, sources, s.Sources)
		assert.NotEmpty(t, s.ID)
	}
	assert.Equal(t, "a", scripts[0].ID)
	assert.Equal(t, "c", scripts[2].ID)

	require.Len(t, p.reqs, 1)
	req := p.reqs[0]
	assert.True(t, req.WebSearch)
	assert.Equal(t, llm.TypeArray, req.Schema.Type)
}

func TestGenerateScriptsNoSourcesLeavesNil(t *testing.T) {
	p := &fakeProvider{resp: &llm.Response{Text: threeScripts}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)

	scripts, err := c.GenerateScripts(context.Background(), validForm())
	require.NoError(t, err)
	for _, s := range scripts {
		assert.Nil(t, s.Sources)
	}
}

func TestGenerateScriptsCountNotEnforced(t *testing.T) {
	p := &fakeProvider{resp: &llm.Response{Text: `[{"id":"1","title":"t","content":"c","hashtags":[]}]`}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)

	form := validForm()
	form.ScriptCount = 5
	scripts, err := c.GenerateScripts(context.Background(), form)
	require.NoError(t, err)
	assert.Len(t, scripts, 1)
}

func TestScriptsPromptEmbedsForm(t *testing.T) {
	form := validForm()
	form.ScriptCount = 7
	form.Style = api.StyleStorytelling
	form.Hook = api.HookUnboxing
	prompt := ScriptsPrompt(form)

	assert.Contains(t, prompt, "Buatlah 7 variasi")
	assert.Contains(t, prompt, "tepat 7 objek")
	assert.Contains(t, prompt, form.ProductURL)
	assert.Contains(t, prompt, "Gaya Bahasa: "+string(form.Style))
	assert.Contains(t, prompt, "Estimasi Durasi: "+string(form.Length))
	assert.Contains(t, prompt, "Jenis Hook: "+string(form.Hook))
	assert.Contains(t, prompt, "### 💬 DIALOG / SCRIPT")
}

func TestGenerateScriptsValidatesBeforeNetwork(t *testing.T) {
	p := &fakeProvider{}
	c, seen := newClient(t, &staticCreds{key: "k"}, p)

	form := validForm()
	form.ScriptCount = 0
	_, err := c.GenerateScripts(context.Background(), form)
	var ve *api.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "scriptCount", ve.Field)
	assert.Empty(t, *seen)
	assert.Empty(t, p.reqs)
}

func TestMalformedResponse(t *testing.T) {
	for _, text := range []string{"not json", `{"id":"x"}`, "[{"} {
		p := &fakeProvider{resp: &llm.Response{Text: text}}
		c, _ := newClient(t, &staticCreds{key: "k"}, p)
		_, err := c.GenerateScripts(context.Background(), validForm())
		require.Error(t, err, text)
		assert.True(t, IsKind(err, KindMalformed), text)
	}

	p := &fakeProvider{resp: &llm.Response{Text: "nope"}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)
	_, err := c.GenerateBundle(context.Background(), api.GeneratedScript{Content: "x"})
	assert.True(t, IsKind(err, KindMalformed))
}

func TestOpenAICompatUndecodableReplyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"Sorry, I cannot do that"}}]}`)
	}))
	defer srv.Close()

	c := New(&staticCreds{key: "sk-test-0123456789abcdef"}, openaicompat.NewFactory(openaicompat.WithBaseURL(srv.URL)), zaptest.NewLogger(t))
	_, err := c.GenerateScripts(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMalformed))
	assert.False(t, IsKind(err, KindRemote))
}

func TestCredentialResolvedPerCall(t *testing.T) {
	creds := &staticCreds{key: "first-key"}
	p := &fakeProvider{resp: &llm.Response{Text: `[]`}}
	c, seen := newClient(t, creds, p)

	_, err := c.GenerateScripts(context.Background(), validForm())
	require.NoError(t, err)
	creds.key = "second-key"
	_, err = c.GenerateScripts(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, []string{"first-key", "second-key"}, *seen)
}

func TestMissingCredential(t *testing.T) {
	p := &fakeProvider{}
	c, seen := newClient(t, &staticCreds{}, p)

	_, err := c.GenerateScripts(context.Background(), validForm())
	assert.True(t, IsKind(err, KindCredential))
	assert.ErrorIs(t, err, ErrNoCredential)
	_, err = c.GenerateBundle(context.Background(), api.GeneratedScript{})
	assert.True(t, IsKind(err, KindCredential))
	assert.Empty(t, *seen)
}

func TestBundlePromptEmbedsContentUnmodified(t *testing.T) {
	content := "### 🪝 HOOK\n  Halo   \"kutip\" %d %s\n\n> 👁️ **VISUAL**: kamera\n"
	script := api.GeneratedScript{ID: "s", Content: content}
	p := &fakeProvider{resp: &llm.Response{Text: `{"reels":"r","feed":{"title":"t","visual":"v","caption":"c"},"carousel":{"slides":[{"title":"1","content":"a"}]},"threads":["x","y","z"]}`}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)

	bundle, err := c.GenerateBundle(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "r", bundle.Reels)
	assert.Equal(t, "t", bundle.Feed.Title)
	assert.Len(t, bundle.Carousel.Slides, 1)
	assert.Equal(t, []string{"x", "y", "z"}, bundle.Threads)

	require.Len(t, p.reqs, 1)
	req := p.reqs[0]
	assert.False(t, req.WebSearch)
	assert.Contains(t, req.Prompt, "\""+content+"\"")
	assert.Equal(t, 1, strings.Count(req.Prompt, content))
	assert.Equal(t, llm.TypeObject, req.Schema.Type)
	assert.Equal(t, []string{"reels", "feed", "carousel", "threads"}, req.Schema.Required)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found status", &llm.APIError{HTTPStatus: 404, Status: "NOT_FOUND", Message: "Requested entity was not found."}, KindCredential},
		{"invalid key reason", &llm.APIError{HTTPStatus: 400, Status: "INVALID_ARGUMENT", Reason: "API_KEY_INVALID"}, KindCredential},
		{"unauthorized", &llm.APIError{HTTPStatus: http.StatusUnauthorized}, KindCredential},
		{"forbidden", &llm.APIError{HTTPStatus: http.StatusForbidden, Status: "PERMISSION_DENIED"}, KindCredential},
		{"quota status", &llm.APIError{HTTPStatus: 429, Status: "RESOURCE_EXHAUSTED"}, KindQuota},
		{"quota http", &llm.APIError{HTTPStatus: http.StatusTooManyRequests}, KindQuota},
		{"server", &llm.APIError{HTTPStatus: 500, Status: "INTERNAL"}, KindRemote},
		{"bad request", &llm.APIError{HTTPStatus: 400, Status: "INVALID_ARGUMENT"}, KindRemote},
		{"empty", llm.ErrEmptyResponse, KindMalformed},
		{"undecodable", fmt.Errorf("openai: decode wrapped array: %w", llm.ErrMalformedResponse), KindMalformed},
		{"url", &url.Error{Op: "Post", URL: "https://x", Err: errors.New("connection refused")}, KindTransport},
		{"wrapped url", fmt.Errorf("send: %w", &url.Error{Op: "Post", URL: "https://x", Err: errors.New("eof")}), KindTransport},
		{"canceled", context.Canceled, KindTransport},
		{"other", errors.New("boom"), KindRemote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{err: tc.err}
			c, _ := newClient(t, &staticCreds{key: "k"}, p)
			_, err := c.GenerateScripts(context.Background(), validForm())
			var ge *Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tc.want, ge.Kind)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestProviderMessageCarriedVerbatim(t *testing.T) {
	msg := "Requested entity was not found."
	p := &fakeProvider{err: &llm.APIError{Provider: "gemini", HTTPStatus: 404, Status: "NOT_FOUND", Message: msg}}
	c, _ := newClient(t, &staticCreds{key: "k"}, p)
	_, err := c.GenerateBundle(context.Background(), api.GeneratedScript{Content: "x"})
	require.Error(t, err)
	assert.Equal(t, msg, err.Error())
}
