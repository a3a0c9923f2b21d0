package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mithrel/viralscript/pkg/api"
)

func WriteYAMLScripts(w io.Writer, scripts []api.GeneratedScript) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scripts); err != nil {
		return err
	}
	return enc.Close()
}

func WriteYAMLBundle(w io.Writer, b api.SocialMediaBundle) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return err
	}
	return enc.Close()
}
