// Package sentence holds the in-memory model of one dependency-annotated
// sentence: plain tokens, multiword groups and passthrough comments.
package sentence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoHead marks a token whose governor has not been assigned. Zero is the root.
const NoHead = -1

var (
	// ErrNotFound indicates that an address or id does not name a token.
	ErrNotFound = errors.New("no matching element")

	// ErrUnsupported indicates an edit that cannot be applied in this context.
	ErrUnsupported = errors.New("operation not supported in this context")

	// ErrInconsistent indicates a broken id or group invariant.
	ErrInconsistent = errors.New("structural inconsistency")

	// ErrUnknownAttr indicates an attribute name outside the ten CoNLL-U columns.
	ErrUnknownAttr = errors.New("unknown attribute")
)

// Attr names an editable token field.
type Attr string

const (
	AttrForm   Attr = "form"
	AttrLemma  Attr = "lemma"
	AttrUPOS   Attr = "upostag"
	AttrXPOS   Attr = "xpostag"
	AttrFeats  Attr = "feats"
	AttrHead   Attr = "head"
	AttrDeprel Attr = "deprel"
	AttrDeps   Attr = "deps"
	AttrMisc   Attr = "misc"
)

// Attrs lists the editable attributes in column order.
func Attrs() []Attr {
	return []Attr{AttrForm, AttrLemma, AttrUPOS, AttrXPOS, AttrFeats, AttrHead, AttrDeprel, AttrDeps, AttrMisc}
}

// ParseAttr maps a user supplied name to an Attr.
func ParseAttr(name string) (Attr, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "upos":
		return AttrUPOS, nil
	case "xpos":
		return AttrXPOS, nil
	}
	for _, a := range Attrs() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAttr, name)
}

// Element is one slot of the top-level sequence: either *Token or
// *MultiwordToken.
type Element interface {
	element()
}

// Token is a syntactic word.
type Token struct {
	ID     int
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  string
	Head   int
	Deprel string
	Deps   string
	Misc   string

	// Comments are the comment lines written directly above the row.
	Comments []string
}

// MultiwordToken groups the words of a contracted surface span.
type MultiwordToken struct {
	Form     string
	Misc     string
	Tokens   []*Token
	Comments []string
}

func (*Token) element()          {}
func (*MultiwordToken) element() {}

// HasHead reports whether the token has a governor (including the root).
func (t *Token) HasHead() bool {
	return t.Head != NoHead
}

// Get returns the string value of attr. Unset heads read as "".
func (t *Token) Get(attr Attr) (string, error) {
	switch attr {
	case AttrForm:
		return t.Form, nil
	case AttrLemma:
		return t.Lemma, nil
	case AttrUPOS:
		return t.UPOS, nil
	case AttrXPOS:
		return t.XPOS, nil
	case AttrFeats:
		return t.Feats, nil
	case AttrHead:
		if !t.HasHead() {
			return "", nil
		}
		return strconv.Itoa(t.Head), nil
	case AttrDeprel:
		return t.Deprel, nil
	case AttrDeps:
		return t.Deps, nil
	case AttrMisc:
		return t.Misc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAttr, attr)
}

// Set writes value into attr. For the head, "" and "_" unset it.
func (t *Token) Set(attr Attr, value string) error {
	switch attr {
	case AttrForm:
		t.Form = value
	case AttrLemma:
		t.Lemma = value
	case AttrUPOS:
		t.UPOS = value
	case AttrXPOS:
		t.XPOS = value
	case AttrFeats:
		t.Feats = value
	case AttrHead:
		if value == "" || value == "_" {
			t.Head = NoHead
			return nil
		}
		h, err := strconv.Atoi(value)
		if err != nil || h < 0 {
			return fmt.Errorf("invalid head %q", value)
		}
		t.Head = h
	case AttrDeprel:
		t.Deprel = value
	case AttrDeps:
		t.Deps = value
	case AttrMisc:
		t.Misc = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttr, attr)
	}
	return nil
}

// Span returns the first and last ids covered by the group.
func (m *MultiwordToken) Span() (int, int) {
	if len(m.Tokens) == 0 {
		return 0, 0
	}
	return m.Tokens[0].ID, m.Tokens[len(m.Tokens)-1].ID
}

// Address locates exactly one token. Inner is -1 for top-level tokens.
type Address struct {
	Subtoken bool
	Outer    int
	Inner    int
}

// TopLevel addresses the token at position outer of the top-level sequence.
func TopLevel(outer int) Address {
	return Address{Outer: outer, Inner: -1}
}

// Sub addresses child inner of the multiword group at position outer.
func Sub(outer, inner int) Address {
	return Address{Subtoken: true, Outer: outer, Inner: inner}
}

func (a Address) String() string {
	if a.Subtoken {
		return fmt.Sprintf("%d.%d", a.Outer, a.Inner)
	}
	return strconv.Itoa(a.Outer)
}

// Sentence is the ordered top-level sequence plus the comment lines above
// the first row and below the last one. Comments between rows belong to the
// row that follows them.
type Sentence struct {
	Comments []string
	Elements []Element
	Trailer  []string
}

// Len returns the number of top-level slots.
func (s *Sentence) Len() int {
	return len(s.Elements)
}

// Token resolves addr. The returned pointer aliases s.
func (s *Sentence) Token(addr Address) (*Token, error) {
	if addr.Outer < 0 || addr.Outer >= len(s.Elements) {
		return nil, fmt.Errorf("%w: address %s", ErrNotFound, addr)
	}
	switch el := s.Elements[addr.Outer].(type) {
	case *Token:
		if addr.Subtoken {
			return nil, fmt.Errorf("%w: address %s is not a multiword group", ErrNotFound, addr)
		}
		return el, nil
	case *MultiwordToken:
		if !addr.Subtoken || addr.Inner < 0 || addr.Inner >= len(el.Tokens) {
			return nil, fmt.Errorf("%w: address %s", ErrNotFound, addr)
		}
		return el.Tokens[addr.Inner], nil
	default:
		return nil, fmt.Errorf("%w: unknown element %T", ErrInconsistent, el)
	}
}

// Words returns every token, children of multiword groups included, in
// textual order. The pointers alias s.
func (s *Sentence) Words() []*Token {
	words := make([]*Token, 0, len(s.Elements))
	for _, el := range s.Elements {
		switch el := el.(type) {
		case *Token:
			words = append(words, el)
		case *MultiwordToken:
			words = append(words, el.Tokens...)
		}
	}
	return words
}

// Clone returns a deep copy.
func (s *Sentence) Clone() *Sentence {
	c := &Sentence{}
	c.Comments = lines(s.Comments)
	c.Trailer = lines(s.Trailer)
	if s.Elements != nil {
		c.Elements = make([]Element, len(s.Elements))
	}
	for i, el := range s.Elements {
		switch el := el.(type) {
		case *Token:
			c.Elements[i] = el.clone()
		case *MultiwordToken:
			m := &MultiwordToken{Form: el.Form, Misc: el.Misc, Tokens: make([]*Token, len(el.Tokens)), Comments: lines(el.Comments)}
			for j, sub := range el.Tokens {
				m.Tokens[j] = sub.clone()
			}
			c.Elements[i] = m
		}
	}
	return c
}

func (t *Token) clone() *Token {
	c := *t
	c.Comments = lines(t.Comments)
	return &c
}

// lines copies a comment block, keeping nil as nil.
func lines(src []string) []string {
	if src == nil {
		return nil
	}
	return append([]string(nil), src...)
}

// MoveComments hands the comment lines of from over to the front of to.
func MoveComments(to, from *[]string) {
	if len(*from) == 0 {
		return
	}
	*to = append(lines(*from), *to...)
	*from = nil
}

// Validate checks that ids run 1..N without gaps or duplicates in textual
// order, that heads name existing tokens and that every multiword group has
// at least two children.
func (s *Sentence) Validate() error {
	words := s.Words()
	for i, w := range words {
		if w.ID != i+1 {
			return fmt.Errorf("%w: token %d has id %d", ErrInconsistent, i+1, w.ID)
		}
	}
	for _, w := range words {
		if w.Head != NoHead && (w.Head < 0 || w.Head > len(words)) {
			return fmt.Errorf("%w: token %d has head %d outside 0..%d", ErrInconsistent, w.ID, w.Head, len(words))
		}
	}
	for i, el := range s.Elements {
		if m, ok := el.(*MultiwordToken); ok && len(m.Tokens) < 2 {
			return fmt.Errorf("%w: multiword group at %d has %d children", ErrInconsistent, i, len(m.Tokens))
		}
	}
	return nil
}

// Dissolve replaces every multiword group with fewer than two children by
// its children, in place.
func (s *Sentence) Dissolve() {
	out := s.Elements[:0:0]
	for _, el := range s.Elements {
		if m, ok := el.(*MultiwordToken); ok && len(m.Tokens) < 2 {
			for _, t := range m.Tokens {
				MoveComments(&t.Comments, &m.Comments)
				out = append(out, t)
			}
			continue
		}
		out = append(out, el)
	}
	s.Elements = out
}

// Text joins the surface forms of the top-level sequence with spaces.
func (s *Sentence) Text() string {
	forms := make([]string, 0, len(s.Elements))
	for _, el := range s.Elements {
		switch el := el.(type) {
		case *Token:
			forms = append(forms, el.Form)
		case *MultiwordToken:
			forms = append(forms, el.Form)
		}
	}
	return strings.Join(forms, " ")
}
