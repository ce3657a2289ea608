package config

import (
	"path/filepath"
	"testing"
)

func TestTagsetsContains(t *testing.T) {
	sets := DefaultTagsets()

	if !sets.HasUPOS("PROPN") {
		t.Fatalf("HasUPOS(PROPN) = false")
	}
	if sets.HasUPOS("propn") {
		t.Fatalf("HasUPOS is case-insensitive")
	}
	if !sets.HasDeprel("nmod:poss") {
		t.Fatalf("HasDeprel(nmod:poss) = false, want subtype accepted")
	}
	if sets.HasDeprel("subj") {
		t.Fatalf("HasDeprel(subj) = true")
	}
}

func TestLoadTagsets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEPEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "tagsets.toml"), `
upos = ["N", "V"]
`)

	sets, err := LoadTagsets()
	if err != nil {
		t.Fatalf("LoadTagsets error: %v", err)
	}
	if len(sets.UPOS) != 2 || !sets.HasUPOS("N") {
		t.Fatalf("UPOS = %v, want [N V]", sets.UPOS)
	}
	if !sets.HasDeprel("obj") {
		t.Fatalf("deprels lost their defaults")
	}
}

func TestLoadTagsetsMissing(t *testing.T) {
	t.Setenv("DEPEDIT_CONFIG_HOME", t.TempDir())

	sets, err := LoadTagsets()
	if err != nil {
		t.Fatalf("LoadTagsets error: %v", err)
	}
	if len(sets.UPOS) != 17 {
		t.Fatalf("UPOS len = %d, want 17", len(sets.UPOS))
	}
}
