package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/depedit/internal/config"
	"github.com/kobzarvs/depedit/internal/edit"
	"github.com/kobzarvs/depedit/internal/sentence"
	"github.com/kobzarvs/depedit/internal/session"
)

const first = "# text = He left , quickly\n" +
	"1\tHe\the\tPRON\t_\t_\t3\tnsubj\t_\t_\n" +
	"2\t,\t,\tPUNCT\t_\t_\t_\t_\t_\t_\n" +
	"3\tleft\tleave\tVERB\t_\t_\t0\troot\t_\t_\n" +
	"4\tquickly\tquickly\tADV\t_\t_\t3\tadvmod\t_\t_\n"

const second = "# text = I don't know\n" +
	"1\tI\tI\tPRON\t_\t_\t4\tnsubj\t_\t_\n" +
	"2-3\tdon't\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"2\tdo\tdo\tAUX\t_\t_\t4\taux\t_\t_\n" +
	"3\tn't\tnot\tPART\t_\t_\t4\tadvmod\t_\t_\n" +
	"4\tknow\tknow\tVERB\t_\t_\t0\troot\t_\t_\n"

func writeTreebank(t *testing.T, blocks ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tb.conllu")
	if err := os.WriteFile(path, []byte(strings.Join(blocks, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func newApp(t *testing.T, start int) (*App, *bytes.Buffer, string) {
	t.Helper()
	path := writeTreebank(t, first, second)
	out := &bytes.Buffer{}
	a, err := New(path, Options{
		Config:   config.Default(),
		Tagsets:  config.DefaultTagsets(),
		Sentence: start,
		Out:      out,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, out, path
}

func current(t *testing.T, a *App) *sentence.Sentence {
	t.Helper()
	s, err := a.ed.Sentence()
	if err != nil {
		t.Fatalf("Sentence: %v", err)
	}
	return s
}

func TestHeadCommandWarnsAndUndoes(t *testing.T) {
	a, out, _ := newApp(t, 0)
	if err := a.Execute("head 2 4"); err != nil {
		t.Fatalf("head: %v", err)
	}
	if !strings.Contains(out.String(), "warning: non-projective punctuation") {
		t.Fatalf("missing warning in output:\n%s", out)
	}
	if !a.tb.Dirty() {
		t.Fatalf("treebank not marked dirty")
	}
	if got, _ := a.tb.Sentence(0); got != a.ed.Text() {
		t.Fatalf("treebank out of sync")
	}
	if err := a.Execute("undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, _ := a.tb.Sentence(0); got != first {
		t.Fatalf("undo did not reach the treebank:\n%s", got)
	}
	out.Reset()
	if err := a.Execute("undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to undo") {
		t.Fatalf("output = %q", out)
	}
}

func TestNavigationResetsHistory(t *testing.T) {
	a, _, _ := newApp(t, 0)
	if err := a.Execute("root 4"); err != nil {
		t.Fatalf("root: %v", err)
	}
	if err := a.Execute("next"); err != nil {
		t.Fatalf("next: %v", err)
	}
	if a.index != 1 || a.ed.HasUndo() {
		t.Fatalf("index = %d, HasUndo = %v", a.index, a.ed.HasUndo())
	}
	if got, _ := a.tb.Sentence(1); got != second {
		t.Fatalf("switching rewrote sentence 2:\n%s", got)
	}
	if err := a.Execute("next"); err == nil {
		t.Fatalf("next past the end succeeded")
	}
	if err := a.Execute("goto 1"); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if tk := current(t, a).Words()[3]; tk.Head != 0 || tk.Deprel != "root" {
		t.Fatalf("edit on sentence 1 lost: %+v", tk)
	}
	if err := a.Execute("goto x"); err == nil {
		t.Fatalf("goto x succeeded")
	}
}

func TestQuitAndWrite(t *testing.T) {
	a, _, path := newApp(t, 0)
	if err := a.Execute("quit"); !errors.Is(err, errQuit) {
		t.Fatalf("clean quit err = %v", err)
	}
	if err := a.Execute("set 1 lemma him"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := a.Execute("quit"); !errors.Is(err, errUnsaved) {
		t.Fatalf("dirty quit err = %v", err)
	}
	if err := a.Execute("write"); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "1\tHe\thim\tPRON") {
		t.Fatalf("file not updated:\n%s", data)
	}
	if err := a.Execute("quit"); !errors.Is(err, errQuit) {
		t.Fatalf("quit after write err = %v", err)
	}
	if err := a.Execute("quit!"); !errors.Is(err, errQuit) {
		t.Fatalf("quit! err = %v", err)
	}
}

func TestNodeReferences(t *testing.T) {
	a, _, _ := newApp(t, 1)
	if err := a.Execute("set nf3 lemma no"); err != nil {
		t.Fatalf("set nf3: %v", err)
	}
	group := current(t, a).Elements[1].(*sentence.MultiwordToken)
	if group.Tokens[1].Lemma != "no" {
		t.Fatalf("group child not edited: %+v", group.Tokens[1])
	}
	if err := a.Execute("head nf1 nf2"); err != nil {
		t.Fatalf("head by node: %v", err)
	}
	if tk := current(t, a).Words()[0]; tk.Head != 2 {
		t.Fatalf("head = %d, want 2", tk.Head)
	}
	if err := a.Execute("root nf9"); err == nil {
		t.Fatalf("unknown node resolved")
	}
}

func TestStructuralCommands(t *testing.T) {
	a, _, _ := newApp(t, 1)
	if err := a.Execute("unsuper 1"); !errors.Is(err, edit.ErrUnsupported) {
		t.Fatalf("unsuper plain token err = %v", err)
	}
	if err := a.Execute("unsuper 2"); err != nil {
		t.Fatalf("unsuper: %v", err)
	}
	if n := current(t, a).Len(); n != 4 {
		t.Fatalf("len = %d, want 4", n)
	}
	if err := a.Execute("merge 2 right super"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, ok := current(t, a).Elements[1].(*sentence.MultiwordToken); !ok {
		t.Fatalf("group not restored")
	}
	if err := a.Execute("form 4 kn ow"); err != nil {
		t.Fatalf("form: %v", err)
	}
	if words := current(t, a).Words(); len(words) != 5 || words[4].Form != "ow" {
		t.Fatalf("split failed: %d words", len(words))
	}
	if err := a.Execute("merge 4 right word"); err != nil {
		t.Fatalf("merge word: %v", err)
	}
	if got, _ := a.tb.Sentence(1); got != second {
		t.Fatalf("round trip changed the sentence:\n%s", got)
	}
}

func TestUsageErrors(t *testing.T) {
	a, out, _ := newApp(t, 0)
	for _, line := range []string{"head 1", "root", "unlink", "set 1 lemma", "form 1", "merge 1", "merge 2 up", "unsuper", "set 1 color red", "head 9 1", "dance"} {
		if err := a.Execute(line); err == nil {
			t.Fatalf("%q succeeded", line)
		}
	}
	if a.ed.HasUndo() || a.tb.Dirty() {
		t.Fatalf("failed commands changed the document")
	}
	out.Reset()
	if err := a.Execute("set 2 upos PUNCTUATION"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(out.String(), `warning: unknown UPOS "PUNCTUATION"`) {
		t.Fatalf("no label warning:\n%s", out)
	}
}

func TestShow(t *testing.T) {
	a, out, _ := newApp(t, 1)
	out.Reset()
	if err := a.Execute("show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	got := out.String()
	for _, want := range []string{"[2/2]", "# text = I don't know", "st1", "2-3", "nf3", "advmod"} {
		if !strings.Contains(got, want) {
			t.Fatalf("show output lacks %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "non-projective") {
		t.Fatalf("projective sentence flagged:\n%s", got)
	}
}

func TestSessionRestoresSentence(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := writeTreebank(t, first, second)

	sm, err := session.NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	a, err := New(path, Options{Config: config.Default(), Sentence: 1, Session: sm, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	sm, err = session.NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	b, err := New(path, Options{Config: config.Default(), Sentence: -1, Session: sm, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	if b.index != 1 {
		t.Fatalf("index = %d, want 1", b.index)
	}
}
