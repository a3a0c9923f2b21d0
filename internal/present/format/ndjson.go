package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/viralscript/pkg/api"
)

// WriteNDJSONScripts writes one script per line.
func WriteNDJSONScripts(w io.Writer, scripts []api.GeneratedScript) error {
	enc := json.NewEncoder(w)
	for _, s := range scripts {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
