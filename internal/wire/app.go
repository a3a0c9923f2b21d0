package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/internal/db"
	"github.com/mithrel/viralscript/internal/generate"
	"github.com/mithrel/viralscript/internal/keys"
	"github.com/mithrel/viralscript/internal/llm"
	"github.com/mithrel/viralscript/internal/llm/gemini"
	"github.com/mithrel/viralscript/internal/llm/openaicompat"
	"github.com/mithrel/viralscript/internal/workflow"
	"github.com/mithrel/viralscript/pkg/api"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       *viper.Viper
	Log       *zap.Logger
	Store     *db.Store
	Creds     *keys.Credentials
	Generator *generate.Client
	// Backend is the credential backend actually in use: keyring or db.
	Backend string

	closers []io.Closer
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger, logCloser, err := newLogger(v)
	if err != nil {
		return nil, err
	}
	app := &App{Cfg: v, Log: logger, closers: []io.Closer{logCloser}}

	dbPath := config.ResolveDBPath(v)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, closer, err := db.Open(ctx, "sqlite://"+dbPath)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, closer)

	ks, backend, err := credentialStore(v, store)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Backend = backend
	app.Creds = keys.NewCredentials(ks, v.GetStringSlice("credential.env_vars"))

	factory, err := providerFactory(v)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Generator = generate.New(app.Creds, factory, logger.Named("generate"))

	logger.Debug("app ready",
		zap.String("db", dbPath),
		zap.String("provider", v.GetString("provider")),
		zap.String("credential_backend", backend),
	)
	return app, nil
}

// Controller returns a fresh workflow controller over the app's services.
func (a *App) Controller() *workflow.Controller {
	return workflow.New(a.Generator, a.Creds, a.Log.Named("workflow"))
}

// Theme returns the saved theme, falling back to the configured one.
func (a *App) Theme(ctx context.Context) api.Theme {
	if s, err := a.Store.Prefs.Get(ctx, db.KeyTheme); err == nil {
		if t, ok := api.ParseTheme(s); ok {
			return t
		}
	}
	if t, ok := api.ParseTheme(a.Cfg.GetString("theme")); ok {
		return t
	}
	return api.ThemeDark
}

// SaveTheme persists t in the local store.
func (a *App) SaveTheme(ctx context.Context, t api.Theme) error {
	return a.Store.Prefs.Put(ctx, db.KeyTheme, string(t))
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] == nil {
			continue
		}
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newLogger writes JSON lines to log.file; verbose adds a console sink on stderr.
func newLogger(v *viper.Viper) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = zapcore.InfoLevel
	}
	path := v.GetString("log.file")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level),
	}
	if v.GetBool("verbose") {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...)), f, nil
}

func credentialStore(v *viper.Viper, store *db.Store) (keys.KeyStore, string, error) {
	switch b := v.GetString("credential.backend"); b {
	case "keyring":
		return &keys.KeyringStore{Service: keys.DefaultKeyringService}, "keyring", nil
	case "db":
		return &keys.DBStore{KV: store.Prefs}, "db", nil
	case "auto", "":
		if keys.KeyringAvailable() {
			return &keys.KeyringStore{Service: keys.DefaultKeyringService}, "keyring", nil
		}
		return &keys.DBStore{KV: store.Prefs}, "db", nil
	default:
		return nil, "", fmt.Errorf("unknown credential.backend %q", b)
	}
}

func providerFactory(v *viper.Viper) (llm.Factory, error) {
	switch p := v.GetString("provider"); p {
	case "gemini", "":
		return gemini.NewFactory(
			gemini.WithBaseURL(v.GetString("gemini.base_url")),
			gemini.WithModel(v.GetString("gemini.model")),
		), nil
	case "openai":
		return openaicompat.NewFactory(
			openaicompat.WithBaseURL(v.GetString("openai.base_url")),
			openaicompat.WithModel(v.GetString("openai.model")),
		), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", p)
	}
}
