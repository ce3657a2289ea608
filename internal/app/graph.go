package app

import (
	"strconv"
	"strings"

	"github.com/kobzarvs/depedit/internal/locator"
	"github.com/kobzarvs/depedit/internal/sentence"
)

const prefixWord = "tk"

// graph is the node layout shown by the show command. A word outside any
// group is a bare form node; a multiword group st<pos> holds one tk<id>
// compound per word, each wrapping that word's form node.
type graph struct {
	parent   map[string]string
	children map[string][]string
}

func newGraph(s *sentence.Sentence) *graph {
	g := &graph{parent: map[string]string{}, children: map[string][]string{}}
	for i, el := range s.Elements {
		m, ok := el.(*sentence.MultiwordToken)
		if !ok {
			continue
		}
		st := locator.PrefixSupertoken + strconv.Itoa(i)
		for _, t := range m.Tokens {
			word := prefixWord + strconv.Itoa(t.ID)
			form := locator.NodeID(t.ID)
			g.parent[form] = word
			g.parent[word] = st
			g.children[st] = append(g.children[st], word)
			g.children[word] = []string{form}
		}
	}
	return g
}

func (g *graph) Parent(id string) (string, bool) {
	p, ok := g.parent[id]
	return p, ok
}

func (g *graph) Children(id string) []string {
	return g.children[id]
}

// resolve turns a token reference into an address. A reference is either a
// numeric token id or a node id as printed by show.
func resolve(s *sentence.Sentence, ref string) (sentence.Address, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return locator.ByID(s, id)
	}
	return locator.Locate(newGraph(s), strings.ToLower(ref), s)
}
