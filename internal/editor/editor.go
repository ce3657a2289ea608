// Package editor runs edits against the serial text of one sentence and
// records them on the history stack.
package editor

import (
	"fmt"

	"github.com/kobzarvs/depedit/internal/edit"
	"github.com/kobzarvs/depedit/internal/history"
	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/sentence"
)

// Format converts between serial text and the sentence model.
type Format interface {
	Parse(text string) (*sentence.Sentence, error)
	Format(s *sentence.Sentence) string
}

// Document is the committed text of the sentence under edit.
type Document struct {
	Text   string
	Format Format
}

func (d *Document) parse() (*sentence.Sentence, error) {
	return d.Format.Parse(d.Text)
}

func (d *Document) commit(s *sentence.Sentence) {
	d.Text = d.Format.Format(s)
}

// rewrite applies recorded field changes to the committed text.
func (d *Document) rewrite(changes []edit.Change, fn func(*sentence.Sentence, []edit.Change) (*sentence.Sentence, error)) error {
	s, err := d.parse()
	if err != nil {
		return err
	}
	out, err := fn(s, changes)
	if err != nil {
		return err
	}
	d.commit(out)
	return nil
}

// Options tune the editor.
type Options struct {
	// Deprels maps a dependent's UPOS to the relation written with a new
	// head. nil means edit.DefaultDeprels.
	Deprels map[string]string

	// SuppressNonProjective hides the warning for punctuation attached
	// across another arc.
	SuppressNonProjective bool
}

// Editor applies edits to a Document.
type Editor struct {
	doc     Document
	history *history.Stack
	opts    Options
}

// New returns an editor over text. The text must parse.
func New(text string, format Format, opts Options) (*Editor, error) {
	e := &Editor{
		doc:     Document{Format: format},
		history: history.New(),
		opts:    opts,
	}
	if err := e.Load(text); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces the document and clears the history.
func (e *Editor) Load(text string) error {
	if _, err := e.doc.Format.Parse(text); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	e.doc.Text = text
	e.history.Clear()
	return nil
}

// Text returns the committed text.
func (e *Editor) Text() string {
	return e.doc.Text
}

// Sentence parses the committed text.
func (e *Editor) Sentence() (*sentence.Sentence, error) {
	return e.doc.parse()
}

// OnChange registers fn to run after every edit, undo and redo.
func (e *Editor) OnChange(fn func()) {
	e.history.SetListener(fn)
}

func (e *Editor) Undo() error   { return e.history.Undo() }
func (e *Editor) Redo() error   { return e.history.Redo() }
func (e *Editor) HasUndo() bool { return e.history.HasUndo() }
func (e *Editor) HasRedo() bool { return e.history.HasRedo() }

// WriteArc attaches dep to headID.
func (e *Editor) WriteArc(dep sentence.Address, headID int) (edit.Warning, error) {
	res, err := e.attr("head", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.SetHead(s, dep, headID, e.opts.Deprels)
	})
	if err != nil || e.opts.SuppressNonProjective {
		return edit.NoWarning, err
	}
	return res.Warning, nil
}

// RemoveArcs unsets head and deprel of every address as one undo step.
func (e *Editor) RemoveArcs(addrs []sentence.Address) error {
	_, err := e.attr("unlink", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.ClearRelation(s, addrs)
	})
	return err
}

// SetRoot makes addr the root.
func (e *Editor) SetRoot(addr sentence.Address) error {
	_, err := e.attr("root", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.SetRoot(s, addr)
	})
	return err
}

// WriteAttr writes one field.
func (e *Editor) WriteAttr(addr sentence.Address, attr sentence.Attr, value string) error {
	_, err := e.attr("set", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.SetAttribute(s, addr, attr, value)
	})
	return err
}

// WriteForm writes the form of addr, splitting the token when raw holds a
// space.
func (e *Editor) WriteForm(addr sentence.Address, raw string) error {
	s, err := e.doc.parse()
	if err != nil {
		return err
	}
	res, err := edit.SplitToken(s, addr, raw)
	if err != nil {
		return err
	}
	if len(res.Changes) > 0 {
		e.record(res)
		return nil
	}
	e.structural("split", s, res, func(s *sentence.Sentence) (edit.Result, error) {
		return edit.SplitToken(s, addr, raw)
	})
	return nil
}

// Merge joins the token at addr with its neighbor on side.
func (e *Editor) Merge(addr sentence.Address, side edit.Side, mode edit.Mode) error {
	return e.apply("merge", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.MergeAdjacent(s, addr, side, mode)
	})
}

// RemoveSupertoken dissolves the multiword group at top-level position outer.
func (e *Editor) RemoveSupertoken(outer int) error {
	return e.apply("unsuper", func(s *sentence.Sentence) (edit.Result, error) {
		return edit.RemoveSupertoken(s, outer)
	})
}

type op func(*sentence.Sentence) (edit.Result, error)

// attr runs a field edit and records its changes.
func (e *Editor) attr(name string, fn op) (edit.Result, error) {
	s, err := e.doc.parse()
	if err != nil {
		return edit.Result{}, err
	}
	res, err := fn(s)
	if err != nil {
		logger.Debug("edit rejected", "op", name, "error", err)
		return res, err
	}
	e.record(res)
	return res, nil
}

// record commits a field edit. Writes that leave every value as it was do
// not reach the history.
func (e *Editor) record(res edit.Result) {
	var changes []edit.Change
	for _, ch := range res.Changes {
		if ch.Old != ch.New {
			changes = append(changes, ch)
		}
	}
	if len(changes) == 0 {
		return
	}
	e.doc.commit(res.Sentence)
	e.history.Add(history.Entry{
		UndoFunc: func() error { return e.doc.rewrite(changes, edit.Revert) },
		RedoFunc: func() error { return e.doc.rewrite(changes, edit.Replay) },
	})
}

// apply runs a structural edit.
func (e *Editor) apply(name string, fn op) error {
	s, err := e.doc.parse()
	if err != nil {
		return err
	}
	res, err := fn(s)
	if err != nil {
		logger.Debug("edit rejected", "op", name, "error", err)
		return err
	}
	e.structural(name, s, res, fn)
	return nil
}

func (e *Editor) structural(name string, before *sentence.Sentence, res edit.Result, fn op) {
	e.doc.commit(res.Sentence)
	e.history.Add(&structCommand{doc: &e.doc, name: name, before: before.Clone(), redo: fn})
}

// structCommand restores the prior sentence on undo and reruns the edit on
// redo.
type structCommand struct {
	doc    *Document
	name   string
	before *sentence.Sentence
	redo   op
}

func (c *structCommand) Undo() error {
	c.doc.commit(c.before)
	return nil
}

func (c *structCommand) Redo() error {
	s, err := c.doc.parse()
	if err != nil {
		return err
	}
	res, err := c.redo(s)
	if err != nil {
		return fmt.Errorf("redo %s: %w", c.name, err)
	}
	c.doc.commit(res.Sentence)
	return nil
}
