package app

import (
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"

	"github.com/kobzarvs/depedit/internal/config"
	"github.com/kobzarvs/depedit/internal/conllu"
	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/projective"
	"github.com/kobzarvs/depedit/internal/treebank"
)

// Issue is one problem found by Check.
type Issue struct {
	Sentence int // 1-based
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("sentence %d: %s", i.Sentence, i.Message)
}

// Check inspects every sentence of tb: parse errors, id density, multiword
// groups, labels outside tags and crossing arcs. With progress set a bar
// is drawn while it runs.
func Check(tb *treebank.Treebank, tags config.Tagsets, progress bool) []Issue {
	var bar *uiprogress.Bar
	if progress {
		uiprogress.Start()
		bar = uiprogress.AddBar(tb.Len())
		bar.AppendCompleted()
		bar.PrependElapsed()
		defer uiprogress.Stop()
	}

	var issues []Issue
	for i := 0; i < tb.Len(); i++ {
		issues = append(issues, checkSentence(tb, i, tags)...)
		if bar != nil {
			bar.Incr()
		}
	}
	logger.Info("check done", "path", tb.Path(), "sentences", tb.Len(), "issues", len(issues))
	return issues
}

func checkSentence(tb *treebank.Treebank, i int, tags config.Tagsets) []Issue {
	text, err := tb.Sentence(i)
	if err != nil {
		return []Issue{{Sentence: i + 1, Message: err.Error()}}
	}
	s, err := conllu.Parse(text)
	if err != nil {
		return []Issue{{Sentence: i + 1, Message: err.Error()}}
	}

	var issues []Issue
	add := func(format string, args ...any) {
		issues = append(issues, Issue{Sentence: i + 1, Message: fmt.Sprintf(format, args...)})
	}
	if err := s.Validate(); err != nil {
		add("%s", err)
	}
	words := s.Words()
	for _, t := range words {
		if t.UPOS != "" && !tags.HasUPOS(t.UPOS) {
			add("token %d: unknown UPOS %q", t.ID, t.UPOS)
		}
		if t.Deprel != "" && !tags.HasDeprel(t.Deprel) {
			add("token %d: unknown deprel %q", t.ID, t.Deprel)
		}
	}
	for _, id := range projective.NonProjective(words) {
		add("token %d: non-projective arc", id)
	}
	return issues
}

// Report writes issues to w, one per line, and a summary.
func Report(w io.Writer, issues []Issue, sentences int) {
	for _, is := range issues {
		fmt.Fprintln(w, is)
	}
	fmt.Fprintf(w, "%d sentences, %d issues\n", sentences, len(issues))
}
