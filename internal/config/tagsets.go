package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tagsets lists the labels accepted in the UPOS and DEPREL columns.
type Tagsets struct {
	UPOS    []string `toml:"upos"`
	Deprels []string `toml:"deprels"`
}

// DefaultTagsets returns the Universal Dependencies v2 label sets.
func DefaultTagsets() Tagsets {
	return Tagsets{
		UPOS: []string{
			"ADJ", "ADP", "ADV", "AUX", "CCONJ", "DET", "INTJ", "NOUN", "NUM",
			"PART", "PRON", "PROPN", "PUNCT", "SCONJ", "SYM", "VERB", "X",
		},
		Deprels: []string{
			"acl", "advcl", "advmod", "amod", "appos", "aux", "case", "cc",
			"ccomp", "clf", "compound", "conj", "cop", "csubj", "dep", "det",
			"discourse", "dislocated", "expl", "fixed", "flat", "goeswith",
			"iobj", "list", "mark", "nmod", "nsubj", "nummod", "obj", "obl",
			"orphan", "parataxis", "punct", "reparandum", "root", "vocative",
			"xcomp",
		},
	}
}

// HasUPOS reports whether tag is a known part-of-speech tag.
func (t Tagsets) HasUPOS(tag string) bool {
	return slices.Contains(t.UPOS, tag)
}

// HasDeprel reports whether rel is known. A subtyped relation such as
// nmod:poss is checked by its universal part.
func (t Tagsets) HasDeprel(rel string) bool {
	base, _, _ := strings.Cut(rel, ":")
	return slices.Contains(t.Deprels, rel) || slices.Contains(t.Deprels, base)
}

// LoadTagsets reads tagsets.toml from the config dir. A missing file or an
// empty list keeps the defaults.
func LoadTagsets() (Tagsets, error) {
	sets := DefaultTagsets()
	path, err := TagsetsPath()
	if err != nil {
		return sets, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sets, nil
		}
		return sets, err
	}

	var user Tagsets
	if _, err := toml.Decode(string(data), &user); err != nil {
		return sets, err
	}
	if len(user.UPOS) > 0 {
		sets.UPOS = user.UPOS
	}
	if len(user.Deprels) > 0 {
		sets.Deprels = user.Deprels
	}
	return sets, nil
}

func TagsetsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tagsets.toml"), nil
}
