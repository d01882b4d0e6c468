package appcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.CardsFullpath != "./output" || !c.PrintToCard || c.Sheets != 1 || c.URIScheme != "edge" {
		t.Errorf("Load() = %+v, want defaults", c)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
	"cardsFullpath": "/tmp/cards",
	"printToCard": false,
	"backOffset": {"x": -1.5, "y": 2}
}`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.CardsFullpath != "/tmp/cards" || c.PrintToCard {
		t.Errorf("Load() = %+v", c)
	}
	if c.BackOffset != (Offset{X: -1.5, Y: 2}) {
		t.Errorf("BackOffset = %+v", c.BackOffset)
	}
	if !c.MirrorBack || c.LogLevel != "info" {
		t.Errorf("unset keys lost their defaults: %+v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "app.yaml", `
cardsFullpath: ./batches
discriminator: timestamp
sheets: 3
frontOffset:
  x: 0.75
language: ru
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.CardsFullpath != "./batches" || c.Discriminator != "timestamp" || c.Sheets != 3 || c.Language != "ru" {
		t.Errorf("Load() = %+v", c)
	}
	if c.FrontOffset.X != 0.75 {
		t.Errorf("FrontOffset = %+v", c.FrontOffset)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.json", `{"cardsFullpath": "/from/file"}`)
	t.Setenv("GIFTCARDS_CARDS_FULLPATH", "/from/env")
	t.Setenv("GIFTCARDS_PRINT_TO_CARD", "false")
	t.Setenv("GIFTCARDS_FRONT_OFFSET_Y", "-3")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.CardsFullpath != "/from/env" || c.PrintToCard || c.FrontOffset.Y != -3 {
		t.Errorf("Load() = %+v", c)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"cardsFullpath": `},
		{"zero sheets", `{"sheets": 0}`},
		{"discriminator", `{"discriminator": "uuid"}`},
		{"scheme", `{"uriScheme": "edge://"}`},
		{"language", `{"language": "de"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "config.json", tt.body)); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}
