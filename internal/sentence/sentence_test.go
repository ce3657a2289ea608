package sentence

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tok(id int, form string, head int) *Token {
	return &Token{ID: id, Form: form, Head: head}
}

func sample() *Sentence {
	return &Sentence{
		Comments: []string{"# text = I don't know"},
		Elements: []Element{
			tok(1, "I", 4),
			&MultiwordToken{Form: "don't", Tokens: []*Token{tok(2, "do", 4), tok(3, "n't", 4)}},
			tok(4, "know", 0),
		},
	}
}

func TestTokenGetSet(t *testing.T) {
	tk := tok(1, "dog", NoHead)
	if got, _ := tk.Get(AttrHead); got != "" {
		t.Fatalf("unset head = %q, want empty", got)
	}
	if err := tk.Set(AttrHead, "3"); err != nil {
		t.Fatalf("Set head: %v", err)
	}
	if tk.Head != 3 {
		t.Fatalf("head = %d, want 3", tk.Head)
	}
	if err := tk.Set(AttrHead, "_"); err != nil || tk.HasHead() {
		t.Fatalf("Set head _ err=%v hasHead=%v", err, tk.HasHead())
	}
	if err := tk.Set(AttrHead, "x"); err == nil {
		t.Fatalf("Set head x: want error")
	}
	if err := tk.Set(Attr("color"), "red"); !errors.Is(err, ErrUnknownAttr) {
		t.Fatalf("Set color err = %v, want ErrUnknownAttr", err)
	}
	for _, a := range Attrs() {
		if a == AttrHead {
			continue
		}
		if err := tk.Set(a, "v-"+string(a)); err != nil {
			t.Fatalf("Set %s: %v", a, err)
		}
		if got, _ := tk.Get(a); got != "v-"+string(a) {
			t.Fatalf("Get %s = %q", a, got)
		}
	}
}

func TestParseAttr(t *testing.T) {
	for in, want := range map[string]Attr{"upos": AttrUPOS, "DEPREL": AttrDeprel, " form ": AttrForm, "xpostag": AttrXPOS} {
		got, err := ParseAttr(in)
		if err != nil || got != want {
			t.Fatalf("ParseAttr(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseAttr("id"); !errors.Is(err, ErrUnknownAttr) {
		t.Fatalf("ParseAttr(id) err = %v", err)
	}
}

func TestTokenByAddress(t *testing.T) {
	s := sample()
	cases := []struct {
		addr Address
		form string
	}{
		{TopLevel(0), "I"},
		{Sub(1, 0), "do"},
		{Sub(1, 1), "n't"},
		{TopLevel(2), "know"},
	}
	for _, c := range cases {
		got, err := s.Token(c.addr)
		if err != nil {
			t.Fatalf("Token(%s): %v", c.addr, err)
		}
		if got.Form != c.form {
			t.Fatalf("Token(%s).Form = %q, want %q", c.addr, got.Form, c.form)
		}
	}
	for _, addr := range []Address{TopLevel(1), TopLevel(3), TopLevel(-1), Sub(0, 0), Sub(1, 2)} {
		if _, err := s.Token(addr); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Token(%s) err = %v, want ErrNotFound", addr, err)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := sample()
	c := s.Clone()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}
	c.Elements[1].(*MultiwordToken).Tokens[0].Form = "did"
	c.Comments[0] = "# changed"
	if s.Elements[1].(*MultiwordToken).Tokens[0].Form != "do" {
		t.Fatalf("clone shares subtokens with original")
	}
	if s.Comments[0] != "# text = I don't know" {
		t.Fatalf("clone shares comments with original")
	}
}

func TestValidate(t *testing.T) {
	if err := sample().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	gap := sample()
	gap.Elements[2].(*Token).ID = 5
	if err := gap.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("gap err = %v", err)
	}

	dup := sample()
	dup.Elements[1].(*MultiwordToken).Tokens[1].ID = 2
	if err := dup.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("duplicate err = %v", err)
	}

	badHead := sample()
	badHead.Elements[0].(*Token).Head = 9
	if err := badHead.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("head err = %v", err)
	}

	single := &Sentence{Elements: []Element{&MultiwordToken{Form: "x", Tokens: []*Token{tok(1, "x", 0)}}}}
	if err := single.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("single-child group err = %v", err)
	}
}

func TestDissolve(t *testing.T) {
	s := &Sentence{Elements: []Element{
		&MultiwordToken{Form: "x", Tokens: []*Token{tok(1, "x", 0)}},
		&MultiwordToken{Form: "yz", Tokens: []*Token{tok(2, "y", 1), tok(3, "z", 1)}},
	}}
	s.Dissolve()
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if _, ok := s.Elements[0].(*Token); !ok {
		t.Fatalf("element 0 = %T, want *Token", s.Elements[0])
	}
	if _, ok := s.Elements[1].(*MultiwordToken); !ok {
		t.Fatalf("element 1 = %T, want *MultiwordToken", s.Elements[1])
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestWordsAndText(t *testing.T) {
	s := sample()
	words := s.Words()
	if len(words) != 4 {
		t.Fatalf("words = %d, want 4", len(words))
	}
	if words[2].Form != "n't" {
		t.Fatalf("words[2] = %q", words[2].Form)
	}
	if got := s.Text(); got != "I don't know" {
		t.Fatalf("Text = %q", got)
	}
	if lo, hi := s.Elements[1].(*MultiwordToken).Span(); lo != 2 || hi != 3 {
		t.Fatalf("Span = %d-%d, want 2-3", lo, hi)
	}
}
