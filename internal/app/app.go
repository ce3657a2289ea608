package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/kobzarvs/depedit/internal/config"
	"github.com/kobzarvs/depedit/internal/conllu"
	"github.com/kobzarvs/depedit/internal/editor"
	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/session"
	"github.com/kobzarvs/depedit/internal/treebank"
)

// errQuit ends the prompt loop.
var errQuit = errors.New("quit")

// App is the interactive editing session over one treebank file.
type App struct {
	cfg     config.Config
	tags    config.Tagsets
	tb      *treebank.Treebank
	ed      *editor.Editor
	index   int
	session *session.Manager
	out     io.Writer
}

// Options configure New.
type Options struct {
	Config  config.Config
	Tagsets config.Tagsets

	// Sentence is the index to start at; negative means the index saved in
	// the session, or 0.
	Sentence int
	Session  *session.Manager
	Out      io.Writer
}

// New opens path for editing.
func New(path string, opts Options) (*App, error) {
	tb, err := treebank.Open(path)
	if err != nil {
		return nil, err
	}
	if tb.Len() == 0 {
		return nil, fmt.Errorf("%s: no sentences", path)
	}
	a := &App{
		cfg:     opts.Config,
		tags:    opts.Tagsets,
		tb:      tb,
		session: opts.Session,
		out:     opts.Out,
	}

	start := opts.Sentence
	if start < 0 {
		start = 0
		if a.session != nil {
			if st, ok := a.session.GetFileState(a.key()); ok {
				start = st.Sentence
			}
		}
	}
	if start >= tb.Len() {
		start = tb.Len() - 1
	}

	text, err := tb.Sentence(start)
	if err != nil {
		return nil, err
	}
	a.ed, err = editor.New(text, conllu.Codec{}, editor.Options{
		Deprels:               a.cfg.Editor.Deprels,
		SuppressNonProjective: !a.cfg.WarnsNonProjective(),
	})
	if err != nil {
		return nil, fmt.Errorf("sentence %d: %w", start+1, err)
	}
	a.ed.OnChange(a.sync)
	a.index = start
	a.remember()
	return a, nil
}

// Run reads commands until quit.
func (a *App) Run() error {
	fmt.Fprintln(a.out, "Tab: complete, help: commands, quit: leave")
	a.show()

	var history []string
	for {
		in := prompt.Input(a.cfg.Prompt.Prefix, a.completer(),
			prompt.OptionTitle("depedit "+filepath.Base(a.tb.Path())),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(a.cfg.Prompt.MaxSuggestions),
			prompt.OptionHistory(history),
		)
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		history = append(history, in)
		if n := a.cfg.Prompt.HistorySize; n > 0 && len(history) > n {
			history = history[len(history)-n:]
		}

		err := a.Execute(in)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			logger.Debug("command failed", "input", in, "error", err)
			fmt.Fprintf(a.out, "error: %s\n", err)
		}
	}
}

// Close saves the session state.
func (a *App) Close() error {
	if a.session == nil {
		return nil
	}
	return a.session.Stop()
}

// sync copies the editor text into the treebank after every change.
func (a *App) sync() {
	if err := a.tb.Set(a.index, a.ed.Text()); err != nil {
		logger.Error("sync sentence", "index", a.index, "error", err)
	}
}

// open switches to sentence i. History does not survive the switch.
func (a *App) open(i int) error {
	text, err := a.tb.Sentence(i)
	if err != nil {
		return err
	}
	prev := a.index
	a.index = i
	if err := a.ed.Load(text); err != nil {
		a.index = prev
		return fmt.Errorf("sentence %d: %w", i+1, err)
	}
	a.remember()
	return nil
}

func (a *App) remember() {
	if a.session != nil {
		a.session.SetSentence(a.key(), a.index)
	}
}

func (a *App) key() string {
	if abs, err := filepath.Abs(a.tb.Path()); err == nil {
		return abs
	}
	return a.tb.Path()
}
