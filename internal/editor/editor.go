// Package editor round-trips a generated script through $VISUAL/$EDITOR.
package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mithrel/viralscript/pkg/api"
)

const (
	TitlePrefix    = "Title: "
	HashtagsPrefix = "Hashtags: "
)

// ComposeScript creates the text presented to the editor.
func ComposeScript(s api.GeneratedScript) string {
	var b bytes.Buffer
	b.WriteString("# viralscript script\n")
	b.WriteString("# Lines starting with '#' before '---' are ignored.\n")
	b.WriteString("# Edit Title and Hashtags (comma-separated). After '---', the script body.\n")
	b.WriteString(TitlePrefix)
	b.WriteString(s.Title)
	b.WriteString("\n")
	b.WriteString(HashtagsPrefix)
	b.WriteString(strings.Join(s.Hashtags, ", "))
	b.WriteString("\n---\n")
	if s.Content != "" {
		b.WriteString(s.Content)
		if !strings.HasSuffix(s.Content, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ParseEditedScript applies the editor output to s. ID and sources are kept.
func ParseEditedScript(s api.GeneratedScript, text string) api.GeneratedScript {
	out := s
	out.Hashtags = nil
	lines := strings.Split(text, "\n")
	inBody := false
	var body []string
	for _, line := range lines {
		if inBody {
			body = append(body, line)
			continue
		}
		trim := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trim, "#"):
		case strings.HasPrefix(line, strings.TrimSpace(TitlePrefix)):
			out.Title = strings.TrimSpace(strings.TrimPrefix(line, strings.TrimSpace(TitlePrefix)))
		case strings.HasPrefix(line, strings.TrimSpace(HashtagsPrefix)):
			raw := strings.TrimPrefix(line, strings.TrimSpace(HashtagsPrefix))
			for _, t := range strings.Split(raw, ",") {
				if tt := strings.TrimSpace(t); tt != "" {
					out.Hashtags = append(out.Hashtags, tt)
				}
			}
		case trim == "---":
			inBody = true
		}
	}
	out.Content = strings.TrimSpace(strings.Join(body, "\n"))
	if out.Hashtags == nil {
		out.Hashtags = []string{}
	}
	return out
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathForScript returns a private temp file path for a script id.
func PathForScript(id string) (string, error) {
	name := sanitize(id) + ".viralscript.md"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "viralscript", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "viralscript", "edit", name), nil
}

func sanitize(id string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "script"
	}
	return b.String()
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// OpenAt opens the editor at path with initial content and returns final bytes and whether it changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := writeFile0600(path, initial); err != nil {
		return nil, false, err
	}
	defer os.Remove(path)
	// VISUAL/EDITOR may carry flags, so run through a shell.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return nil, false, err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}

// EditScript opens s in the editor and returns the edited copy.
func EditScript(s api.GeneratedScript) (api.GeneratedScript, bool, error) {
	path, err := PathForScript(s.ID)
	if err != nil {
		return s, false, err
	}
	out, changed, err := OpenAt(path, []byte(ComposeScript(s)))
	if err != nil || !changed {
		return s, false, err
	}
	return ParseEditedScript(s, string(out)), true, nil
}
