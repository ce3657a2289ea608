package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/kobzarvs/depedit/internal/edit"
	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/sentence"
)

var errUnsaved = errors.New("unsaved changes (write first, or quit! to discard them)")

var commands = []prompt.Suggest{
	{Text: "show", Description: "print the sentence"},
	{Text: "head", Description: "head DEP HEAD: attach DEP to HEAD"},
	{Text: "root", Description: "root ID: make ID the root"},
	{Text: "unlink", Description: "unlink ID...: remove the incoming arcs"},
	{Text: "set", Description: "set ID ATTR VALUE: write one column"},
	{Text: "form", Description: "form ID TEXT: write the form, a space splits the token"},
	{Text: "merge", Description: "merge ID left|right [word|super]"},
	{Text: "unsuper", Description: "unsuper ID: dissolve the multiword token holding ID"},
	{Text: "undo", Description: "undo the last edit"},
	{Text: "redo", Description: "redo the last undone edit"},
	{Text: "next", Description: "go to the next sentence"},
	{Text: "prev", Description: "go to the previous sentence"},
	{Text: "goto", Description: "goto N: go to sentence N"},
	{Text: "write", Description: "save the file"},
	{Text: "help", Description: "list commands"},
	{Text: "quit", Description: "leave (quit! discards unsaved changes)"},
}

// Execute runs one command line.
func (a *App) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	logger.Debug("command", "name", name, "args", args)

	switch name {
	case "show":
		a.show()
		return nil
	case "help":
		for _, c := range commands {
			fmt.Fprintf(a.out, "  %-8s %s\n", c.Text, c.Description)
		}
		return nil
	case "head", "root", "unlink", "set", "form", "merge", "unsuper":
		if err := a.edit(name, args); err != nil {
			return err
		}
		a.show()
		return nil
	case "undo":
		if !a.ed.HasUndo() {
			fmt.Fprintln(a.out, "nothing to undo")
			return nil
		}
		if err := a.ed.Undo(); err != nil {
			return err
		}
		a.show()
		return nil
	case "redo":
		if !a.ed.HasRedo() {
			fmt.Fprintln(a.out, "nothing to redo")
			return nil
		}
		if err := a.ed.Redo(); err != nil {
			return err
		}
		a.show()
		return nil
	case "next", "prev", "goto":
		i, err := a.target(name, args)
		if err != nil {
			return err
		}
		if err := a.open(i); err != nil {
			return err
		}
		a.show()
		return nil
	case "write", "w":
		if err := a.tb.Save(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "wrote %d sentences to %s\n", a.tb.Len(), a.tb.Path())
		return nil
	case "quit", "q":
		if a.tb.Dirty() {
			return errUnsaved
		}
		return errQuit
	case "quit!", "q!":
		return errQuit
	}
	return fmt.Errorf("unknown command %q (try help)", name)
}

// edit runs one of the editing commands against the current sentence.
func (a *App) edit(name string, args []string) error {
	s, err := a.ed.Sentence()
	if err != nil {
		return err
	}

	switch name {
	case "head":
		if len(args) != 2 {
			return usage("head DEP HEAD")
		}
		dep, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		head, err := headID(s, args[1])
		if err != nil {
			return err
		}
		w, err := a.ed.WriteArc(dep, head)
		if err != nil {
			return err
		}
		if w != edit.NoWarning {
			fmt.Fprintf(a.out, "warning: %s\n", w)
		}
		return nil

	case "root":
		if len(args) != 1 {
			return usage("root ID")
		}
		addr, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		return a.ed.SetRoot(addr)

	case "unlink":
		if len(args) == 0 {
			return usage("unlink ID...")
		}
		addrs := make([]sentence.Address, 0, len(args))
		for _, ref := range args {
			addr, err := resolve(s, ref)
			if err != nil {
				return err
			}
			addrs = append(addrs, addr)
		}
		return a.ed.RemoveArcs(addrs)

	case "set":
		if len(args) < 3 {
			return usage("set ID ATTR VALUE")
		}
		addr, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		attr, err := sentence.ParseAttr(args[1])
		if err != nil {
			return err
		}
		value := strings.Join(args[2:], " ")
		a.checkLabel(attr, value)
		return a.ed.WriteAttr(addr, attr, value)

	case "form":
		if len(args) < 2 {
			return usage("form ID TEXT")
		}
		addr, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		return a.ed.WriteForm(addr, strings.Join(args[1:], " "))

	case "merge":
		if len(args) < 2 || len(args) > 3 {
			return usage("merge ID left|right [word|super]")
		}
		addr, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		side, err := edit.ParseSide(args[1])
		if err != nil {
			return err
		}
		var mode edit.Mode
		if len(args) == 3 {
			if mode, err = edit.ParseMode(args[2]); err != nil {
				return err
			}
		}
		return a.ed.Merge(addr, side, mode)

	case "unsuper":
		if len(args) != 1 {
			return usage("unsuper ID")
		}
		addr, err := resolve(s, args[0])
		if err != nil {
			return err
		}
		if !addr.Subtoken {
			return fmt.Errorf("%w: %s is not inside a multiword token", edit.ErrUnsupported, args[0])
		}
		return a.ed.RemoveSupertoken(addr.Outer)
	}
	return fmt.Errorf("unknown command %q", name)
}

// checkLabel prints a warning for a label outside the configured tagsets.
func (a *App) checkLabel(attr sentence.Attr, value string) {
	switch {
	case attr == sentence.AttrUPOS && value != "" && !a.tags.HasUPOS(value):
		fmt.Fprintf(a.out, "warning: unknown UPOS %q\n", value)
	case attr == sentence.AttrDeprel && value != "" && !a.tags.HasDeprel(value):
		fmt.Fprintf(a.out, "warning: unknown deprel %q\n", value)
	}
}

// target computes the sentence index for next, prev and goto.
func (a *App) target(name string, args []string) (int, error) {
	i := a.index
	switch name {
	case "next":
		i++
	case "prev":
		i--
	case "goto":
		if len(args) != 1 {
			return 0, usage("goto N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, usage("goto N")
		}
		i = n - 1
	}
	if i < 0 || i >= a.tb.Len() {
		return 0, fmt.Errorf("no sentence %d (1..%d)", i+1, a.tb.Len())
	}
	return i, nil
}

// headID reads a head reference: 0 for the root, a token id or a node id.
func headID(s *sentence.Sentence, ref string) (int, error) {
	if ref == "0" {
		return 0, nil
	}
	addr, err := resolve(s, ref)
	if err != nil {
		return 0, err
	}
	t, err := s.Token(addr)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}
