// Package gemini talks to the Google Generative Language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mithrel/viralscript/internal/llm"
	"github.com/mithrel/viralscript/pkg/api"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
)

// Provider is a single-use Gemini client bound to one API key.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Option customizes a Provider.
type Option func(*Provider)

func WithBaseURL(u string) Option {
	return func(p *Provider) {
		if u != "" {
			p.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithModel(m string) Option {
	return func(p *Provider) {
		if m != "" {
			p.model = m
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.client = c
		}
	}
}

// New returns a provider for apiKey. The default http.Client has no timeout.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key not provided")
	}
	p := &Provider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// NewFactory adapts New to llm.Factory.
func NewFactory(opts ...Option) llm.Factory {
	return func(apiKey string) (llm.Provider, error) {
		return New(apiKey, opts...)
	}
}

func (p *Provider) Name() string { return "gemini" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string      `json:"responseMimeType,omitempty"`
	ResponseSchema   *llm.Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type groundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		FinishReason      string  `json:"finishReason"`
		GroundingMetadata *struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// Generate sends one generateContent call.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
	}
	if req.Schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}
	if req.WebSearch {
		body.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, decodeError(httpResp.StatusCode, raw)
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	var text strings.Builder
	for _, pt := range cand.Content.Parts {
		text.WriteString(pt.Text)
	}
	if text.Len() == 0 {
		return nil, llm.ErrEmptyResponse
	}

	out := &llm.Response{Text: text.String(), Model: model}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if gm := cand.GroundingMetadata; gm != nil {
		for _, ch := range gm.GroundingChunks {
			if ch.Web == nil {
				continue
			}
			out.Sources = append(out.Sources, api.Source{Title: ch.Web.Title, URI: ch.Web.URI})
		}
	}
	return out, nil
}

func decodeError(code int, raw []byte) error {
	apiErr := &llm.APIError{Provider: "gemini", HTTPStatus: code}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		apiErr.Status = env.Error.Status
		apiErr.Message = env.Error.Message
		for _, d := range env.Error.Details {
			if d.Reason != "" {
				apiErr.Reason = d.Reason
				break
			}
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(code)
	}
	return apiErr
}
