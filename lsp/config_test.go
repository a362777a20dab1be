package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
languages:
  - name: lists
    extensions: [".list", "lst"]
    grammar: list.ebnf
    start: List
  - name: calls
    extensions: [".call"]
    grammar: /abs/call.ebnf
    start: Call
    trivia: trivia
`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if len(cfg.Languages) != 2 {
		t.Fatalf("len(Languages) = %d, want 2", len(cfg.Languages))
	}
	lists := cfg.Languages[0]
	if lists.Name != "lists" || lists.Start != "List" || lists.Grammar != "list.ebnf" {
		t.Errorf("Languages[0] = %+v", lists)
	}
	if got := strings.Join(lists.Extensions, ","); got != ".list,.lst" {
		t.Errorf("Extensions = %s, want .list,.lst", got)
	}
	if cfg.Languages[1].Trivia != "trivia" {
		t.Errorf("Trivia = %q, want trivia", cfg.Languages[1].Trivia)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "languages: [", "parse config"},
		{"no grammar", "languages: [{name: a, extensions: [.a], start: S}]", "grammar is required"},
		{"no start", "languages: [{name: a, extensions: [.a], grammar: g}]", "start is required"},
		{"no extensions", "languages: [{grammar: g, start: S}]", "languages[0]: at least one extension"},
		{"duplicate extension", `languages:
  - {name: a, extensions: [.x], grammar: g, start: S}
  - {name: b, extensions: [x], grammar: g, start: S}`, "extension .x already used by a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseConfig() succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseConfig() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigResolvesGrammarPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	data := "languages:\n  - {name: a, extensions: [.a], grammar: grammars/a.ebnf, start: S}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if want := filepath.Join(dir, "grammars", "a.ebnf"); cfg.Languages[0].Grammar != want {
		t.Errorf("Grammar = %q, want %q", cfg.Languages[0].Grammar, want)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig() succeeded for a missing file")
	}
}
