// Package generate turns form values and scripts into remote generation
// requests and maps the answers back onto the data model.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mithrel/viralscript/internal/keys"
	"github.com/mithrel/viralscript/internal/llm"
	"github.com/mithrel/viralscript/pkg/api"
)

// CredentialSource yields the key for the next call.
type CredentialSource interface {
	Resolve() (string, keys.Origin, bool)
}

// Client builds a fresh provider for every call so a key changed between
// calls is always picked up.
type Client struct {
	creds   CredentialSource
	factory llm.Factory
	log     *zap.Logger
	model   string
}

// New returns a client. A nil logger is replaced by a no-op one.
func New(creds CredentialSource, factory llm.Factory, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{creds: creds, factory: factory, log: log}
}

// WithModel overrides the provider's default model.
func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

func (c *Client) provider() (llm.Provider, error) {
	key, origin, ok := c.creds.Resolve()
	if !ok {
		return nil, credentialError(ErrNoCredential)
	}
	p, err := c.factory(key)
	if err != nil {
		return nil, credentialError(err)
	}
	c.log.Debug("provider ready", zap.String("provider", p.Name()), zap.Stringer("credential", origin))
	return p, nil
}

// GenerateScripts asks for form.ScriptCount variations. The count is not
// enforced on the answer.
func (c *Client) GenerateScripts(ctx context.Context, form api.ScriptFormValues) ([]api.GeneratedScript, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	p, err := c.provider()
	if err != nil {
		return nil, err
	}
	reqID := api.NewID()
	log := c.log.With(zap.String("request", reqID), zap.String("provider", p.Name()))
	log.Info("generating scripts",
		zap.String("product_url", form.ProductURL),
		zap.Int("count", form.ScriptCount),
	)

	resp, err := p.Generate(ctx, llm.Request{
		Model:     c.model,
		Prompt:    ScriptsPrompt(form),
		Schema:    ScriptsSchema(),
		WebSearch: true,
	})
	if err != nil {
		ge := classify(err)
		log.Warn("script generation failed", zap.Stringer("kind", ge.Kind), zap.Error(err))
		return nil, ge
	}

	var scripts []api.GeneratedScript
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text)), &scripts); err != nil {
		log.Warn("malformed script response", zap.Error(err))
		return nil, malformed(err)
	}
	var sources []api.Source
	if len(resp.Sources) > 0 {
		sources = resp.Sources
	}
	for i := range scripts {
		if scripts[i].ID == "" {
			scripts[i].ID = api.NewID()
		}
		scripts[i].Sources = sources
	}
	log.Info("scripts generated",
		zap.Int("received", len(scripts)),
		zap.Int("sources", len(sources)),
		zap.String("model", resp.Model),
	)
	return scripts, nil
}

// GenerateBundle derives the four-artifact bundle from one script. Web
// search is not requested.
func (c *Client) GenerateBundle(ctx context.Context, script api.GeneratedScript) (*api.SocialMediaBundle, error) {
	p, err := c.provider()
	if err != nil {
		return nil, err
	}
	log := c.log.With(zap.String("request", api.NewID()), zap.String("provider", p.Name()))
	log.Info("generating bundle", zap.String("script", script.ID), zap.String("digest", script.Digest()))

	resp, err := p.Generate(ctx, llm.Request{
		Model:  c.model,
		Prompt: BundlePrompt(script),
		Schema: BundleSchema(),
	})
	if err != nil {
		ge := classify(err)
		log.Warn("bundle generation failed", zap.Stringer("kind", ge.Kind), zap.Error(err))
		return nil, ge
	}
	var bundle api.SocialMediaBundle
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text)), &bundle); err != nil {
		log.Warn("malformed bundle response", zap.Error(err))
		return nil, malformed(fmt.Errorf("bundle: %w", err))
	}
	log.Info("bundle generated", zap.Int("slides", len(bundle.Carousel.Slides)), zap.Int("threads", len(bundle.Threads)))
	return &bundle, nil
}
