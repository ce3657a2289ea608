// Package treebank holds the sentences of one CoNLL-U file.
package treebank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kobzarvs/depedit/internal/conllu"
	"github.com/kobzarvs/depedit/internal/logger"
)

var ErrRange = errors.New("sentence index out of range")

// Treebank is a file split into sentence blocks.
type Treebank struct {
	path   string
	blocks []string
	dirty  bool
}

// Open reads the file at path.
func Open(path string) (*Treebank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tb := &Treebank{path: path, blocks: conllu.Split(string(data))}
	logger.Info("treebank opened", "path", path, "sentences", len(tb.blocks))
	return tb, nil
}

func (tb *Treebank) Path() string { return tb.path }
func (tb *Treebank) Len() int     { return len(tb.blocks) }
func (tb *Treebank) Dirty() bool  { return tb.dirty }

// Sentence returns the text of sentence i.
func (tb *Treebank) Sentence(i int) (string, error) {
	if i < 0 || i >= len(tb.blocks) {
		return "", fmt.Errorf("%w: %d of %d", ErrRange, i, len(tb.blocks))
	}
	return tb.blocks[i], nil
}

// Set replaces the text of sentence i.
func (tb *Treebank) Set(i int, text string) error {
	if i < 0 || i >= len(tb.blocks) {
		return fmt.Errorf("%w: %d of %d", ErrRange, i, len(tb.blocks))
	}
	if tb.blocks[i] == text {
		return nil
	}
	tb.blocks[i] = text
	tb.dirty = true
	return nil
}

// Save writes every sentence back. The file is replaced atomically.
func (tb *Treebank) Save() error {
	tmp, err := os.CreateTemp(filepath.Dir(tb.path), "."+filepath.Base(tb.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(conllu.Join(tb.blocks)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(tb.path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode().Perm())
	}
	if err := os.Rename(tmp.Name(), tb.path); err != nil {
		return err
	}
	tb.dirty = false
	logger.Info("treebank saved", "path", tb.path, "sentences", len(tb.blocks))
	return nil
}
