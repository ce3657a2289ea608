package app

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kobzarvs/depedit/internal/locator"
	"github.com/kobzarvs/depedit/internal/projective"
	"github.com/kobzarvs/depedit/internal/sentence"
)

// show prints the current sentence as a table.
func (a *App) show() {
	s, err := a.ed.Sentence()
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}
	fmt.Fprintf(a.out, "[%d/%d]", a.index+1, a.tb.Len())
	if a.tb.Dirty() {
		fmt.Fprint(a.out, " (modified)")
	}
	fmt.Fprintln(a.out)
	for _, c := range s.Comments {
		fmt.Fprintln(a.out, c)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tID\tFORM\tLEMMA\tUPOS\tHEAD\tDEPREL")
	for i, el := range s.Elements {
		switch el := el.(type) {
		case *sentence.Token:
			row(w, el)
		case *sentence.MultiwordToken:
			lo, hi := el.Span()
			fmt.Fprintf(w, "%s%d\t%d-%d\t%s\t\t\t\t\n", locator.PrefixSupertoken, i, lo, hi, el.Form)
			for _, t := range el.Tokens {
				row(w, t)
			}
		}
	}
	w.Flush()

	if a.cfg.WarnsNonProjective() {
		if ids := projective.NonProjective(s.Words()); len(ids) > 0 {
			strs := make([]string, len(ids))
			for i, id := range ids {
				strs[i] = strconv.Itoa(id)
			}
			fmt.Fprintf(a.out, "non-projective: %s\n", strings.Join(strs, " "))
		}
	}
}

func row(w *tabwriter.Writer, t *sentence.Token) {
	head := "_"
	if t.HasHead() {
		head = strconv.Itoa(t.Head)
	}
	fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
		locator.NodeID(t.ID), t.ID, t.Form, dash(t.Lemma), dash(t.UPOS), head, dash(t.Deprel))
}

func dash(v string) string {
	if v == "" {
		return "_"
	}
	return v
}
