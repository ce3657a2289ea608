package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	// Deprels maps a dependent's UPOS to the relation written with a new head.
	Deprels           map[string]string `toml:"deprels"`
	WarnNonProjective *bool             `toml:"warn-nonprojective"`
	Debug             bool              `toml:"debug"`
}

type PromptOptions struct {
	Prefix         string `toml:"prefix"`
	MaxSuggestions uint16 `toml:"max-suggestions"`
	HistorySize    int    `toml:"history-size"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Prompt PromptOptions `toml:"prompt"`
}

// WarnsNonProjective reports whether non-projective punctuation is flagged.
func (c Config) WarnsNonProjective() bool {
	return c.Editor.WarnNonProjective == nil || *c.Editor.WarnNonProjective
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Deprels: map[string]string{
				"PUNCT": "punct",
				"CCONJ": "cc",
				"SCONJ": "mark",
				"DET":   "det",
			},
		},
		Prompt: PromptOptions{
			Prefix:         "depedit> ",
			MaxSuggestions: 8,
			HistorySize:    200,
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	for k, v := range userCfg.Editor.Deprels {
		if v == "" {
			delete(cfg.Editor.Deprels, k)
			continue
		}
		cfg.Editor.Deprels[k] = v
	}
	if userCfg.Editor.WarnNonProjective != nil {
		cfg.Editor.WarnNonProjective = userCfg.Editor.WarnNonProjective
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Prompt.Prefix != "" {
		cfg.Prompt.Prefix = userCfg.Prompt.Prefix
	}
	if userCfg.Prompt.MaxSuggestions > 0 {
		cfg.Prompt.MaxSuggestions = userCfg.Prompt.MaxSuggestions
	}
	if userCfg.Prompt.HistorySize > 0 {
		cfg.Prompt.HistorySize = userCfg.Prompt.HistorySize
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("DEPEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "depedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "depedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
