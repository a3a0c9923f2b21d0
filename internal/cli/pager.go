package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/viralscript/internal/present"
	"github.com/mithrel/viralscript/internal/wire"
	"github.com/mithrel/viralscript/pkg/api"
)

const defaultPager = "less -FRSX"

// outputOptions resolves --output (falling back to the configured default).
func outputOptions(app *wire.App, cmd *cobra.Command, outputMode string, noHeaders bool) (present.Options, error) {
	if outputMode == "" {
		outputMode = app.Cfg.GetString("output")
	}
	mode, ok := present.ParseMode(strings.ToLower(outputMode))
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", outputMode)
	}
	return present.Options{
		Mode:       mode,
		JSONIndent: false, // pretty-print via external tools like jq
		Headers:    !noHeaders,
		Theme:      app.Theme(cmd.Context()),
	}, nil
}

// paged reports whether a mode is meant for humans and may go through $PAGER.
func paged(m present.Mode) bool {
	return m == present.ModePlain || m == present.ModePretty
}

func renderScripts(ctx context.Context, out, errOut io.Writer, scripts []api.GeneratedScript, opts present.Options) error {
	if !paged(opts.Mode) {
		return present.RenderScripts(out, scripts, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderScripts(w, scripts, opts)
	})
}

func renderBundle(ctx context.Context, out, errOut io.Writer, b api.SocialMediaBundle, opts present.Options) error {
	if !paged(opts.Mode) {
		return present.RenderBundle(out, b, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderBundle(w, b, opts)
	})
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
