package app

import (
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/kobzarvs/depedit/internal/sentence"
)

func (a *App) completer() prompt.Completer {
	return func(in prompt.Document) []prompt.Suggest {
		return a.suggest(in.TextBeforeCursor())
	}
}

// suggest completes the word being typed at the end of before.
func (a *App) suggest(before string) []prompt.Suggest {
	if strings.TrimSpace(before) == "" {
		return nil
	}
	words := strings.Split(before, " ")
	current := words[len(words)-1]
	pos := len(words) - 1

	if pos == 0 {
		return prompt.FilterHasPrefix(commands, current, true)
	}

	var choices []prompt.Suggest
	switch words[0] {
	case "set":
		switch pos {
		case 2:
			for _, attr := range sentence.Attrs() {
				choices = append(choices, prompt.Suggest{Text: string(attr)})
			}
		case 3:
			choices = a.labels(words[2])
		}
	case "merge":
		switch pos {
		case 2:
			choices = []prompt.Suggest{{Text: "left"}, {Text: "right"}}
		case 3:
			choices = []prompt.Suggest{
				{Text: "word", Description: "fuse into one word"},
				{Text: "super", Description: "group under a multiword token"},
			}
		}
	}
	return prompt.FilterHasPrefix(choices, current, false)
}

// labels returns the tagset values for attr, if it has one.
func (a *App) labels(name string) []prompt.Suggest {
	attr, err := sentence.ParseAttr(name)
	if err != nil {
		return nil
	}
	var values []string
	switch attr {
	case sentence.AttrUPOS:
		values = a.tags.UPOS
	case sentence.AttrDeprel:
		values = a.tags.Deprels
	}
	out := make([]prompt.Suggest, 0, len(values))
	for _, v := range values {
		out = append(out, prompt.Suggest{Text: v})
	}
	return out
}
