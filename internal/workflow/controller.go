// Package workflow owns the application state machine: the credential gate,
// the two generation actions and the active results view.
package workflow

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mithrel/viralscript/internal/generate"
	"github.com/mithrel/viralscript/pkg/api"
)

type View int

const (
	ViewScripts View = iota
	ViewBundle
)

func (v View) String() string {
	if v == ViewBundle {
		return "bundle"
	}
	return "scripts"
}

// Generator performs the remote calls.
type Generator interface {
	GenerateScripts(ctx context.Context, form api.ScriptFormValues) ([]api.GeneratedScript, error)
	GenerateBundle(ctx context.Context, script api.GeneratedScript) (*api.SocialMediaBundle, error)
}

// Credentials is the subset of the credential store the controller drives.
type Credentials interface {
	Has() bool
	Save(value string) error
	Clear() error
}

const (
	msgKeyRejected   = "API key rejected. Enter a valid key to continue."
	msgScriptsFailed = "Something went wrong while generating scripts."
	msgBundleFailed  = "Could not build the social media bundle."
	msgKeyRequired   = "An API key is required before generating."
)

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("generation already in progress")
	// ErrCredentialRequired is wrapped in a credential-kind error while the gate is open.
	ErrCredentialRequired = errors.New(msgKeyRequired)
)

// State is a snapshot of everything the presenters render.
type State struct {
	CredentialGateOpen bool
	GateError          string

	ActiveView        View
	GeneratingScripts bool
	GeneratingBundle  bool

	Scripts []api.GeneratedScript
	Bundle  *api.SocialMediaBundle

	LastError      string
	RequestedCount int
	ResultsFocused bool
}

// Controller serializes state transitions. Begin/Finish pairs are split so a
// UI loop can run the remote call off its own goroutine.
type Controller struct {
	mu    sync.Mutex
	gen   Generator
	creds Credentials
	log   *zap.Logger
	st    State
}

func New(gen Generator, creds Credentials, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{gen: gen, creds: creds, log: log, st: State{RequestedCount: api.DefaultForm().ScriptCount}}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.st
	if c.st.Scripts != nil {
		st.Scripts = append([]api.GeneratedScript(nil), c.st.Scripts...)
	}
	return st
}

// Load opens the gate when no credential is available.
func (c *Controller) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.creds.Has() {
		c.st.CredentialGateOpen = true
		c.log.Info("credential gate opened", zap.String("reason", "no key"))
	}
}

// SubmitCredential saves value. A rejected value keeps the gate open with an
// inline message.
func (c *Controller) SubmitCredential(value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.creds.Save(value); err != nil {
		c.st.CredentialGateOpen = true
		c.st.GateError = err.Error()
		return err
	}
	c.st.CredentialGateOpen = false
	c.st.GateError = ""
	c.log.Info("credential saved")
	return nil
}

// ResetCredential clears the stored key and reopens the gate.
func (c *Controller) ResetCredential() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.creds.Clear()
	c.st.CredentialGateOpen = true
	c.st.GateError = ""
	c.log.Info("credential cleared")
	return err
}

// SetView switches the results view; allowed at any time.
func (c *Controller) SetView(v View) {
	c.mu.Lock()
	c.st.ActiveView = v
	c.mu.Unlock()
}

// ClearFocus acknowledges that the results were brought into view.
func (c *Controller) ClearFocus() {
	c.mu.Lock()
	c.st.ResultsFocused = false
	c.mu.Unlock()
}

func gateClosedErr() error {
	return &generate.Error{Kind: generate.KindCredential, Message: msgKeyRequired, Err: ErrCredentialRequired}
}

// BeginScripts validates form and enters the generating state, discarding
// prior scripts and bundle.
func (c *Controller) BeginScripts(form api.ScriptFormValues) error {
	if err := form.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.GeneratingScripts {
		return ErrBusy
	}
	if c.st.CredentialGateOpen {
		return gateClosedErr()
	}
	c.st.GeneratingScripts = true
	c.st.LastError = ""
	c.st.Scripts = nil
	c.st.Bundle = nil
	c.st.RequestedCount = form.ScriptCount
	c.st.ResultsFocused = false
	return nil
}

// FinishScripts applies the outcome of a script generation.
func (c *Controller) FinishScripts(scripts []api.GeneratedScript, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.GeneratingScripts = false
	if err != nil {
		c.fail(err, msgScriptsFailed)
		return
	}
	if scripts == nil {
		scripts = []api.GeneratedScript{}
	}
	c.st.Scripts = scripts
	c.st.ResultsFocused = true
	c.log.Info("scripts ready", zap.Int("count", len(scripts)))
}

// BeginBundle enters the bundle-generating state. Existing scripts and
// bundle stay visible.
func (c *Controller) BeginBundle(script api.GeneratedScript) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.GeneratingBundle {
		return ErrBusy
	}
	if c.st.CredentialGateOpen {
		return gateClosedErr()
	}
	c.st.GeneratingBundle = true
	c.st.LastError = ""
	c.log.Debug("bundle requested", zap.String("script", script.ID))
	return nil
}

// FinishBundle applies the outcome of a bundle generation.
func (c *Controller) FinishBundle(bundle *api.SocialMediaBundle, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.GeneratingBundle = false
	if err != nil {
		c.fail(err, msgBundleFailed)
		return
	}
	if bundle == nil {
		c.fail(errors.New(msgBundleFailed), msgBundleFailed)
		return
	}
	c.st.Bundle = bundle
	c.st.ActiveView = ViewBundle
}

// fail records err; callers hold mu.
func (c *Controller) fail(err error, fallback string) {
	if generate.IsKind(err, generate.KindCredential) {
		c.st.CredentialGateOpen = true
		c.st.GateError = err.Error()
		c.st.LastError = msgKeyRejected
		c.log.Warn("credential rejected", zap.Error(err))
		return
	}
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	c.st.LastError = msg
	c.log.Warn("generation failed", zap.Error(err))
}

// GenerateScripts runs a full script generation synchronously.
func (c *Controller) GenerateScripts(ctx context.Context, form api.ScriptFormValues) ([]api.GeneratedScript, error) {
	if err := c.BeginScripts(form); err != nil {
		return nil, err
	}
	scripts, err := c.gen.GenerateScripts(ctx, form)
	c.FinishScripts(scripts, err)
	if err != nil {
		return nil, err
	}
	return c.State().Scripts, nil
}

// ProcessBundle runs a full bundle generation synchronously.
func (c *Controller) ProcessBundle(ctx context.Context, script api.GeneratedScript) (*api.SocialMediaBundle, error) {
	if err := c.BeginBundle(script); err != nil {
		return nil, err
	}
	bundle, err := c.gen.GenerateBundle(ctx, script)
	if err == nil && bundle == nil {
		err = errors.New(msgBundleFailed)
	}
	c.FinishBundle(bundle, err)
	if err != nil {
		return nil, err
	}
	return bundle, nil
}
