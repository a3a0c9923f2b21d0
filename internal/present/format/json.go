package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/viralscript/pkg/api"
)

func WriteJSONScripts(w io.Writer, scripts []api.GeneratedScript, indent bool) error {
	if scripts == nil {
		scripts = []api.GeneratedScript{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(scripts)
}

func WriteJSONBundle(w io.Writer, b api.SocialMediaBundle, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(b)
}

// ReadScripts accepts either a JSON array of scripts or a single script object.
func ReadScripts(r io.Reader) ([]api.GeneratedScript, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var many []api.GeneratedScript
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}
	var one api.GeneratedScript
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []api.GeneratedScript{one}, nil
}
