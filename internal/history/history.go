// Package history keeps the undo and redo stacks of an editing session.
package history

import (
	"github.com/kobzarvs/depedit/internal/logger"
)

// Command is one reversible user action. A grouped edit is a single Command
// whose Undo reverses every field it wrote.
type Command interface {
	Undo() error
	Redo() error
}

// Entry adapts a pair of thunks to Command.
type Entry struct {
	UndoFunc func() error
	RedoFunc func() error
}

func (e Entry) Undo() error {
	if e.UndoFunc == nil {
		return nil
	}
	return e.UndoFunc()
}

func (e Entry) Redo() error {
	if e.RedoFunc == nil {
		return nil
	}
	return e.RedoFunc()
}

// Stack holds the undoable and redoable commands, most recent last.
type Stack struct {
	undoable []Command
	redoable []Command
	listener func()
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// SetListener registers fn to run after every change of the stack,
// replacing the previous listener. nil removes it.
func (s *Stack) SetListener(fn func()) {
	s.listener = fn
}

// Add records c as the newest action and discards the redo branch.
func (s *Stack) Add(c Command) {
	s.undoable = append(s.undoable, c)
	s.redoable = s.redoable[:0]
	s.notify()
}

// Undo reverses the newest action. With nothing to undo it does nothing.
// When the command fails it stays on the undo stack.
func (s *Stack) Undo() error {
	if len(s.undoable) == 0 {
		return nil
	}
	idx := len(s.undoable) - 1
	c := s.undoable[idx]
	if err := c.Undo(); err != nil {
		logger.Warn("undo failed", "error", err)
		return err
	}
	s.undoable = s.undoable[:idx]
	s.redoable = append(s.redoable, c)
	s.notify()
	return nil
}

// Redo reapplies the most recently undone action.
func (s *Stack) Redo() error {
	if len(s.redoable) == 0 {
		return nil
	}
	idx := len(s.redoable) - 1
	c := s.redoable[idx]
	if err := c.Redo(); err != nil {
		logger.Warn("redo failed", "error", err)
		return err
	}
	s.redoable = s.redoable[:idx]
	s.undoable = append(s.undoable, c)
	s.notify()
	return nil
}

func (s *Stack) HasUndo() bool {
	return len(s.undoable) > 0
}

func (s *Stack) HasRedo() bool {
	return len(s.redoable) > 0
}

// Clear drops both stacks.
func (s *Stack) Clear() {
	s.undoable = nil
	s.redoable = nil
	s.notify()
}

func (s *Stack) notify() {
	if s.listener != nil {
		s.listener()
	}
}
