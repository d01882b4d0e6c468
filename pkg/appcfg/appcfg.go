package appcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. GIFTCARDS_CARDS_FULLPATH
// or GIFTCARDS_BACK_OFFSET_X.
const EnvPrefix = "GIFTCARDS"

// Offset is a printer correction in points.
type Offset struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Config struct {
	CardsFullpath string `json:"cardsFullpath" yaml:"cardsFullpath" split_words:"true"`
	PrintToCard   bool   `json:"printToCard" yaml:"printToCard" split_words:"true"`
	Sheets        int    `json:"sheets" yaml:"sheets" split_words:"true"`
	URIScheme     string `json:"uriScheme" yaml:"uriScheme" split_words:"true"`
	Discriminator string `json:"discriminator" yaml:"discriminator" split_words:"true"` // counter|timestamp

	FrontTemplate string `json:"frontTemplate" yaml:"frontTemplate" split_words:"true"`
	BackTemplate  string `json:"backTemplate" yaml:"backTemplate" split_words:"true"`
	FrontOffset   Offset `json:"frontOffset" yaml:"frontOffset" split_words:"true"`
	BackOffset    Offset `json:"backOffset" yaml:"backOffset" split_words:"true"`
	MirrorBack    bool   `json:"mirrorBack" yaml:"mirrorBack" split_words:"true"`

	Language             string `json:"language" yaml:"language" split_words:"true"` // "en" | "ru"
	LogLevel             string `json:"logLevel" yaml:"logLevel" split_words:"true"`
	LogFile              string `json:"logFile" yaml:"logFile" split_words:"true"`
	HideSecretsInConsole bool   `json:"hideSecretsInConsole" yaml:"hideSecretsInConsole" split_words:"true"`
}

func Default() *Config {
	return &Config{
		CardsFullpath:        "./output",
		PrintToCard:          true,
		Sheets:               1,
		URIScheme:            "edge",
		Discriminator:        "counter",
		MirrorBack:           true,
		Language:             "en",
		LogLevel:             "info",
		HideSecretsInConsole: true,
	}
}

// Load layers defaults, the file at path (a missing file is not an error)
// and GIFTCARDS_* environment variables.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := c.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open app config %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("decode app config %q: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.CardsFullpath) == "":
		return errors.New("cardsFullpath is empty")
	case c.Sheets < 1:
		return fmt.Errorf("sheets must be >= 1, got %d", c.Sheets)
	case c.URIScheme == "" || strings.ContainsAny(c.URIScheme, ":/ "):
		return fmt.Errorf("bad uriScheme %q", c.URIScheme)
	case c.Discriminator != "counter" && c.Discriminator != "timestamp":
		return fmt.Errorf("discriminator must be counter or timestamp, got %q", c.Discriminator)
	case c.Language != "en" && c.Language != "ru":
		return fmt.Errorf("language must be en or ru, got %q", c.Language)
	}
	return nil
}
