// Package edit applies single semantic edits to a sentence. Every function
// leaves its input untouched and returns a new sentence together with what
// is needed to reverse the edit.
package edit

import (
	"fmt"
	"strconv"

	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/projective"
	"github.com/kobzarvs/depedit/internal/sentence"
)

var (
	ErrNotFound     = sentence.ErrNotFound
	ErrUnsupported  = sentence.ErrUnsupported
	ErrInconsistent = sentence.ErrInconsistent
)

// Warning is an advisory condition raised by an edit that still committed.
type Warning int

const (
	NoWarning Warning = iota
	WarnNonProjectivePunct
)

func (w Warning) String() string {
	switch w {
	case WarnNonProjectivePunct:
		return "non-projective punctuation"
	}
	return ""
}

// DefaultDeprels maps a dependent's UPOS to the relation written along with
// a new head.
var DefaultDeprels = map[string]string{
	"PUNCT": "punct",
	"CCONJ": "cc",
	"SCONJ": "mark",
	"DET":   "det",
}

// Change is one field write.
type Change struct {
	Addr sentence.Address
	Attr sentence.Attr
	Old  string
	New  string
}

// Result is the outcome of a successful edit.
type Result struct {
	Sentence *sentence.Sentence
	Changes  []Change
	Warning  Warning
}

// Previous returns the value overwritten by the first change.
func (r Result) Previous() string {
	if len(r.Changes) == 0 {
		return ""
	}
	return r.Changes[0].Old
}

// SetAttribute writes value into attr of the addressed token.
func SetAttribute(s *sentence.Sentence, addr sentence.Address, attr sentence.Attr, value string) (Result, error) {
	c := s.Clone()
	t, err := c.Token(addr)
	if err != nil {
		return Result{Sentence: s}, err
	}
	old, err := t.Get(attr)
	if err != nil {
		return Result{Sentence: s}, err
	}
	if err := t.Set(attr, value); err != nil {
		return Result{Sentence: s}, err
	}
	if attr == sentence.AttrHead && t.HasHead() {
		if t.Head == t.ID {
			return Result{Sentence: s}, fmt.Errorf("%w: token %d cannot govern itself", ErrUnsupported, t.ID)
		}
		if t.Head > len(c.Words()) {
			return Result{Sentence: s}, fmt.Errorf("%w: head %d", ErrNotFound, t.Head)
		}
	}
	logger.Debug("set attribute", "addr", addr.String(), "attr", string(attr), "old", old, "new", value)
	return Result{
		Sentence: c,
		Changes:  []Change{{Addr: addr, Attr: attr, Old: old, New: value}},
	}, nil
}

// SetHead attaches the addressed token to headID. When the token's UPOS has
// an entry in rules its deprel is written as a second change; nil rules
// means DefaultDeprels. Punctuation attached across another arc raises
// WarnNonProjectivePunct.
func SetHead(s *sentence.Sentence, addr sentence.Address, headID int, rules map[string]string) (Result, error) {
	if rules == nil {
		rules = DefaultDeprels
	}
	res, err := SetAttribute(s, addr, sentence.AttrHead, strconv.Itoa(headID))
	if err != nil {
		return res, err
	}
	t, err := res.Sentence.Token(addr)
	if err != nil {
		return Result{Sentence: s}, err
	}
	if rel, ok := rules[t.UPOS]; ok {
		rr, err := SetAttribute(res.Sentence, addr, sentence.AttrDeprel, rel)
		if err != nil {
			return Result{Sentence: s}, err
		}
		res.Sentence = rr.Sentence
		res.Changes = append(res.Changes, rr.Changes...)
		t, _ = res.Sentence.Token(addr)
	}
	if t.UPOS == "PUNCT" && !projective.IsProjective(res.Sentence.Words(), []int{t.ID}) {
		logger.Warn("non-projective punctuation", "token", t.ID, "head", headID)
		res.Warning = WarnNonProjectivePunct
	}
	return res, nil
}

// SetRoot makes the addressed token the sentence root.
func SetRoot(s *sentence.Sentence, addr sentence.Address) (Result, error) {
	return writeAll(s, []sentence.Address{addr}, map[sentence.Attr]string{
		sentence.AttrHead:   "0",
		sentence.AttrDeprel: "root",
	})
}

// ClearRelation unsets head and deprel of every addressed token. Either all
// tokens are cleared or none is.
func ClearRelation(s *sentence.Sentence, addrs []sentence.Address) (Result, error) {
	return writeAll(s, addrs, map[sentence.Attr]string{
		sentence.AttrHead:   "",
		sentence.AttrDeprel: "",
	})
}

// writeAll writes head then deprel for each address, in order.
func writeAll(s *sentence.Sentence, addrs []sentence.Address, values map[sentence.Attr]string) (Result, error) {
	res := Result{Sentence: s}
	for _, addr := range addrs {
		for _, attr := range []sentence.Attr{sentence.AttrHead, sentence.AttrDeprel} {
			v, ok := values[attr]
			if !ok {
				continue
			}
			rr, err := SetAttribute(res.Sentence, addr, attr, v)
			if err != nil {
				return Result{Sentence: s}, err
			}
			res.Sentence = rr.Sentence
			res.Changes = append(res.Changes, rr.Changes...)
		}
	}
	return res, nil
}

// Revert writes the old value of every change, last change first. Recorded
// values go back verbatim, so a head that was already out of range when the
// sentence was loaded is restored as it was.
func Revert(s *sentence.Sentence, changes []Change) (*sentence.Sentence, error) {
	c := s.Clone()
	for i := len(changes) - 1; i >= 0; i-- {
		if err := restore(c, changes[i].Addr, changes[i].Attr, changes[i].Old); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Replay writes the new value of every change, in order.
func Replay(s *sentence.Sentence, changes []Change) (*sentence.Sentence, error) {
	c := s.Clone()
	for _, ch := range changes {
		if err := restore(c, ch.Addr, ch.Attr, ch.New); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func restore(s *sentence.Sentence, addr sentence.Address, attr sentence.Attr, value string) error {
	t, err := s.Token(addr)
	if err != nil {
		return err
	}
	return t.Set(attr, value)
}
