package lsp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "ahi.yaml"

// Config describes the languages the server knows about.
//
//	languages:
//	  - name: json
//	    extensions: [".json"]
//	    grammar: grammars/json.ebnf
//	    start: Value
//	    trivia: whitespace
type Config struct {
	Languages []Language `yaml:"languages"`
}

// Language maps file extensions to a grammar and its start production.
type Language struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Grammar    string   `yaml:"grammar"`
	Start      string   `yaml:"start"`
	Trivia     string   `yaml:"trivia,omitempty"`
}

// LoadConfig reads a YAML config file. Grammar paths are resolved relative
// to the directory of the config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Languages {
		if g := cfg.Languages[i].Grammar; !filepath.IsAbs(g) {
			cfg.Languages[i].Grammar = filepath.Join(dir, g)
		}
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	seen := make(map[string]string)
	for i, lang := range cfg.Languages {
		if lang.Name == "" {
			lang.Name = fmt.Sprintf("languages[%d]", i)
		}
		if lang.Grammar == "" {
			return nil, fmt.Errorf("language %s: grammar is required", lang.Name)
		}
		if lang.Start == "" {
			return nil, fmt.Errorf("language %s: start is required", lang.Name)
		}
		if len(lang.Extensions) == 0 {
			return nil, fmt.Errorf("language %s: at least one extension is required", lang.Name)
		}
		for j, ext := range lang.Extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
				cfg.Languages[i].Extensions[j] = ext
			}
			if other, ok := seen[ext]; ok {
				return nil, fmt.Errorf("language %s: extension %s already used by %s", lang.Name, ext, other)
			}
			seen[ext] = lang.Name
		}
	}
	return &cfg, nil
}
