// Package prompts loads the instruction templates the orchestrator embeds in
// every generation request. The shipped defaults are compiled in; a YAML file
// given by path overrides them wholesale. A missing or blank required
// template is a hard configuration error, never silently defaulted.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Set holds the instruction templates for one deployment.
type Set struct {
	Base        string `yaml:"base_instruction"`
	Normal      string `yaml:"normal_mode"`
	Dictionary  string `yaml:"dictionary_mode"`
	FormatRetry string `yaml:"format_retry"`
}

// Load parses the prompt set from path, or from the embedded defaults when
// path is empty.
func Load(path string) (Set, error) {
	raw := defaultYAML
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return Set{}, fmt.Errorf("read prompts file: %w", err)
		}
	}

	var s Set
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Set{}, fmt.Errorf("parse prompts: %w", err)
	}
	if err := s.validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

func (s Set) validate() error {
	for _, f := range []struct {
		name, value string
	}{
		{"base_instruction", s.Base},
		{"normal_mode", s.Normal},
		{"dictionary_mode", s.Dictionary},
		{"format_retry", s.FormatRetry},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("prompts: %s is empty", f.name)
		}
	}
	return nil
}
