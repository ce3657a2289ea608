package edit

import (
	"fmt"
	"strings"

	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/sentence"
)

// Side selects the neighbor of a merge.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ParseSide accepts "left" or "right".
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(v) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown side %q", v)
}

// Mode selects what a merge produces.
type Mode int

const (
	// Subtoken fuses the two words into one.
	Subtoken Mode = iota
	// Supertoken wraps the two words into a multiword group.
	Supertoken
)

func (m Mode) String() string {
	if m == Subtoken {
		return "subtoken"
	}
	return "supertoken"
}

// ParseMode accepts "subtoken"/"word" or "supertoken"/"super".
func ParseMode(v string) (Mode, error) {
	switch strings.ToLower(v) {
	case "subtoken", "word", "":
		return Subtoken, nil
	case "supertoken", "super":
		return Supertoken, nil
	}
	return Subtoken, fmt.Errorf("unknown merge mode %q", v)
}

// MergeAdjacent merges the addressed top-level token with its neighbor on
// side. Subtoken mode keeps one word with the concatenated form and
// renumbers; Supertoken mode groups both words under a new multiword token
// and keeps their ids.
func MergeAdjacent(s *sentence.Sentence, addr sentence.Address, side Side, mode Mode) (Result, error) {
	if addr.Subtoken {
		return Result{Sentence: s}, fmt.Errorf("%w: merging subtokens", ErrUnsupported)
	}
	if addr.Outer < 0 || addr.Outer >= s.Len() {
		return Result{Sentence: s}, fmt.Errorf("%w: address %s", ErrNotFound, addr)
	}
	other := addr.Outer + 1
	if side == Left {
		other = addr.Outer - 1
	}
	if other < 0 || other >= s.Len() {
		logger.Info("merge: no neighbor", "addr", addr.String(), "side", side.String())
		return Result{Sentence: s}, fmt.Errorf("%w: no token on the %s", ErrUnsupported, side)
	}

	c := s.Clone()
	main, ok := c.Elements[addr.Outer].(*sentence.Token)
	if !ok {
		return Result{Sentence: s}, fmt.Errorf("%w: merging a multiword group", ErrUnsupported)
	}
	nb, ok := c.Elements[other].(*sentence.Token)
	if !ok {
		return Result{Sentence: s}, fmt.Errorf("%w: merging into a multiword group", ErrUnsupported)
	}

	form := main.Form + nb.Form
	if side == Left {
		form = nb.Form + main.Form
	}

	switch mode {
	case Subtoken:
		before := index(c)
		main.Form = form
		if side == Left {
			sentence.MoveComments(&main.Comments, &nb.Comments)
		} else {
			main.Comments = append(main.Comments, nb.Comments...)
		}
		if main.Head == nb.ID {
			main.Head = nb.Head
			if main.Head == main.ID {
				main.Head = sentence.NoHead
			}
		}
		c.Elements = append(c.Elements[:other], c.Elements[other+1:]...)
		if err := reassign(c, before, map[*sentence.Token]*sentence.Token{nb: main}); err != nil {
			return abort(s, "merge", err)
		}
	case Supertoken:
		lo := min(addr.Outer, other)
		group := &sentence.MultiwordToken{
			Form:   form,
			Tokens: []*sentence.Token{c.Elements[lo].(*sentence.Token), c.Elements[lo+1].(*sentence.Token)},
		}
		sentence.MoveComments(&group.Comments, &group.Tokens[0].Comments)
		elems := make([]sentence.Element, 0, len(c.Elements)-1)
		elems = append(elems, c.Elements[:lo]...)
		elems = append(elems, group)
		elems = append(elems, c.Elements[lo+2:]...)
		c.Elements = elems
	default:
		return Result{Sentence: s}, fmt.Errorf("%w: merge mode %d", ErrUnsupported, mode)
	}

	if err := c.Validate(); err != nil {
		return abort(s, "merge", err)
	}
	logger.Debug("merged", "addr", addr.String(), "side", side.String(), "mode", mode.String(), "form", form)
	return Result{Sentence: c}, nil
}

// SplitToken retokenizes the addressed token at the first space of raw.
// The first piece stays in place; the rest becomes a new token right after
// it, inside the same multiword group when the address is a subtoken. Text
// without a space is a plain form write.
func SplitToken(s *sentence.Sentence, addr sentence.Address, raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	first, rest, ok := strings.Cut(raw, " ")
	rest = strings.TrimSpace(rest)
	if !ok || rest == "" {
		return SetAttribute(s, addr, sentence.AttrForm, raw)
	}

	c := s.Clone()
	t, err := c.Token(addr)
	if err != nil {
		return Result{Sentence: s}, err
	}
	before := index(c)
	t.Form = first
	nt := &sentence.Token{ID: t.ID, Form: rest, Head: sentence.NoHead}

	switch el := c.Elements[addr.Outer].(type) {
	case *sentence.Token:
		c.Elements = insert(c.Elements, addr.Outer+1, sentence.Element(nt))
	case *sentence.MultiwordToken:
		el.Tokens = insert(el.Tokens, addr.Inner+1, nt)
	}
	if err := reassign(c, before, nil); err != nil {
		return abort(s, "split", err)
	}
	if err := c.Validate(); err != nil {
		return abort(s, "split", err)
	}
	logger.Debug("split", "addr", addr.String(), "first", first, "rest", rest)
	return Result{Sentence: c}, nil
}

// RemoveSupertoken dissolves the multiword group at outer, splicing its
// words back into the top-level sequence with their ids unchanged.
func RemoveSupertoken(s *sentence.Sentence, outer int) (Result, error) {
	if outer < 0 || outer >= s.Len() {
		return Result{Sentence: s}, fmt.Errorf("%w: position %d", ErrNotFound, outer)
	}
	c := s.Clone()
	group, ok := c.Elements[outer].(*sentence.MultiwordToken)
	if !ok {
		return Result{Sentence: s}, fmt.Errorf("%w: position %d is not a multiword group", ErrUnsupported, outer)
	}
	elems := make([]sentence.Element, 0, len(c.Elements)+len(group.Tokens)-1)
	elems = append(elems, c.Elements[:outer]...)
	if len(group.Tokens) > 0 {
		sentence.MoveComments(&group.Tokens[0].Comments, &group.Comments)
	}
	for _, t := range group.Tokens {
		elems = append(elems, t)
	}
	elems = append(elems, c.Elements[outer+1:]...)
	c.Elements = elems
	if err := c.Validate(); err != nil {
		return abort(s, "remove supertoken", err)
	}
	logger.Debug("removed supertoken", "outer", outer)
	return Result{Sentence: c}, nil
}

// index maps the current ids of s to their tokens.
func index(s *sentence.Sentence) map[int]*sentence.Token {
	words := s.Words()
	m := make(map[int]*sentence.Token, len(words))
	for _, w := range words {
		if _, dup := m[w.ID]; !dup {
			m[w.ID] = w
		}
	}
	return m
}

// reassign numbers the words of s 1..N in textual order and rewrites every
// head through before, the id table taken prior to the splice, so that it
// keeps naming the same token. absorbed redirects tokens that were removed.
func reassign(s *sentence.Sentence, before map[int]*sentence.Token, absorbed map[*sentence.Token]*sentence.Token) error {
	words := s.Words()
	ids := make(map[*sentence.Token]int, len(words))
	for i, w := range words {
		ids[w] = i + 1
	}
	heads := make([]int, len(words))
	for i, w := range words {
		heads[i] = w.Head
		if w.Head <= 0 {
			continue
		}
		target, ok := before[w.Head]
		if !ok {
			return fmt.Errorf("%w: token %d points at unknown head %d", ErrInconsistent, w.ID, w.Head)
		}
		if to, ok := absorbed[target]; ok {
			target = to
		}
		id, ok := ids[target]
		if !ok {
			return fmt.Errorf("%w: head %d of token %d was removed", ErrInconsistent, w.Head, w.ID)
		}
		heads[i] = id
	}
	for i, w := range words {
		w.ID = i + 1
		w.Head = heads[i]
		if w.Head == w.ID {
			w.Head = sentence.NoHead
		}
	}
	return nil
}

// abort logs an invariant violation and hands back the untouched sentence.
func abort(s *sentence.Sentence, op string, err error) (Result, error) {
	logger.Error("edit aborted: invariant violated", "op", op, "error", err)
	return Result{Sentence: s}, fmt.Errorf("%s: %w", op, err)
}

func insert[T any](xs []T, i int, v T) []T {
	xs = append(xs, v)
	copy(xs[i+1:], xs[i:])
	xs[i] = v
	return xs
}
