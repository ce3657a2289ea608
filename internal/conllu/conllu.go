// Package conllu reads and writes sentences in the CoNLL-U format.
// See https://universaldependencies.org/format.html
package conllu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kobzarvs/depedit/internal/sentence"
)

const (
	fieldSeparator = "\t"
	numFields      = 10
	empty          = "_"
)

var (
	// ErrFormat indicates a malformed row.
	ErrFormat = errors.New("malformed CoNLL-U")

	// ErrEmptyNode indicates a decimal id row; empty nodes are not editable.
	ErrEmptyNode = errors.New("empty nodes are not supported")
)

// Codec adapts the package functions to the editor's format interface.
type Codec struct{}

func (Codec) Parse(text string) (*sentence.Sentence, error) { return Parse(text) }
func (Codec) Format(s *sentence.Sentence) string            { return Format(s) }

// Parse reads one sentence. Comment lines stay where they were: above the
// first row they head the sentence, between rows they belong to the next
// row, after the last row they close the sentence. Multiword range rows open
// a group that collects the following word rows.
func Parse(text string) (*sentence.Sentence, error) {
	s := &sentence.Sentence{}
	var (
		group     *sentence.MultiwordToken
		remaining int
		pending   []string
	)
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if len(s.Elements) == 0 {
				s.Comments = append(s.Comments, line)
			} else {
				pending = append(pending, line)
			}
			continue
		}
		fields := strings.Split(line, fieldSeparator)
		if len(fields) != numFields {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrFormat, n+1, len(fields), numFields)
		}
		id := fields[0]
		switch {
		case strings.Contains(id, "."):
			return nil, fmt.Errorf("%w: line %d (%s)", ErrEmptyNode, n+1, id)
		case strings.Contains(id, "-"):
			if remaining > 0 {
				return nil, fmt.Errorf("%w: line %d opens a range inside another", ErrFormat, n+1)
			}
			count, err := parseRange(id)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, n+1, err)
			}
			group = &sentence.MultiwordToken{Form: fields[1], Misc: value(fields[9]), Comments: pending}
			pending = nil
			remaining = count
			s.Elements = append(s.Elements, group)
		default:
			t, err := parseRow(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, n+1, err)
			}
			t.Comments, pending = pending, nil
			if remaining > 0 {
				group.Tokens = append(group.Tokens, t)
				remaining--
				continue
			}
			s.Elements = append(s.Elements, t)
		}
	}
	if remaining > 0 {
		return nil, fmt.Errorf("%w: range %q ends early", ErrFormat, group.Form)
	}
	s.Trailer = pending
	s.Dissolve()
	return s, nil
}

func parseRange(id string) (int, error) {
	lo, hi, _ := strings.Cut(id, "-")
	a, err := strconv.Atoi(lo)
	if err != nil {
		return 0, fmt.Errorf("range %q", id)
	}
	b, err := strconv.Atoi(hi)
	if err != nil || b < a {
		return 0, fmt.Errorf("range %q", id)
	}
	return b - a + 1, nil
}

func parseRow(fields []string) (*sentence.Token, error) {
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id %q", fields[0])
	}
	t := &sentence.Token{
		ID:     id,
		Form:   fields[1],
		Lemma:  value(fields[2]),
		UPOS:   value(fields[3]),
		XPOS:   value(fields[4]),
		Feats:  value(fields[5]),
		Head:   sentence.NoHead,
		Deprel: value(fields[7]),
		Deps:   value(fields[8]),
		Misc:   value(fields[9]),
	}
	if h := fields[6]; h != empty && h != "" {
		if t.Head, err = strconv.Atoi(h); err != nil {
			return nil, fmt.Errorf("head %q", h)
		}
	}
	return t, nil
}

func value(field string) string {
	if field == empty {
		return ""
	}
	return field
}

func cell(v string) string {
	if v == "" {
		return empty
	}
	return v
}

// Format writes s as CoNLL-U rows, each terminated by a newline.
func Format(s *sentence.Sentence) string {
	var b strings.Builder
	writeComments(&b, s.Comments)
	for _, el := range s.Elements {
		switch el := el.(type) {
		case *sentence.Token:
			writeRow(&b, el)
		case *sentence.MultiwordToken:
			writeComments(&b, el.Comments)
			lo, hi := el.Span()
			row := []string{fmt.Sprintf("%d-%d", lo, hi), cell(el.Form), empty, empty, empty, empty, empty, empty, empty, cell(el.Misc)}
			b.WriteString(strings.Join(row, fieldSeparator))
			b.WriteByte('\n')
			for _, t := range el.Tokens {
				writeRow(&b, t)
			}
		}
	}
	writeComments(&b, s.Trailer)
	return b.String()
}

func writeComments(b *strings.Builder, lines []string) {
	for _, c := range lines {
		b.WriteString(c)
		b.WriteByte('\n')
	}
}

func writeRow(b *strings.Builder, t *sentence.Token) {
	writeComments(b, t.Comments)
	head := empty
	if t.HasHead() {
		head = strconv.Itoa(t.Head)
	}
	row := []string{
		strconv.Itoa(t.ID),
		cell(t.Form),
		cell(t.Lemma),
		cell(t.UPOS),
		cell(t.XPOS),
		cell(t.Feats),
		head,
		cell(t.Deprel),
		cell(t.Deps),
		cell(t.Misc),
	}
	b.WriteString(strings.Join(row, fieldSeparator))
	b.WriteByte('\n')
}

// Split cuts a multi-sentence document into sentence blocks at blank lines.
func Split(text string) []string {
	var (
		blocks []string
		cur    []string
	)
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n")+"\n")
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}

// Join is the inverse of Split.
func Join(blocks []string) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(strings.TrimRight(block, "\n"))
		b.WriteString("\n\n")
	}
	return b.String()
}
