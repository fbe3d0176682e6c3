// Package editor holds the text buffer and the file and clipboard helpers
// around it.
package editor

import (
	"strings"
	"sync"
)

// Buffer is a line buffer with undo and redo. It is safe for concurrent use.
// Buffer - построчный буфер с отменой и повтором.
type Buffer struct {
	mu        sync.Mutex
	lines     []string
	undoStack [][]string
	redoStack [][]string
	dirty     bool
}

// NewBuffer returns a buffer holding text.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.lines = splitText(text)
	return b
}

func splitText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Text returns the buffer joined with newlines.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Append adds one line at the end.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushUndo()
	b.lines = append(b.lines, line)
}

// SetText replaces the whole buffer.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushUndo()
	b.lines = splitText(text)
}

// Clear empties the buffer. It can be undone.
func (b *Buffer) Clear() {
	b.SetText("")
}

// ReplaceAll replaces every occurrence of old and returns the count.
// ReplaceAll заменяет во всём буфере все вхождения old на new.
func (b *Buffer) ReplaceAll(old, new string) int {
	if old == "" {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for _, line := range b.lines {
		count += strings.Count(line, old)
	}
	if count == 0 {
		return 0
	}
	b.pushUndo()
	for i := range b.lines {
		b.lines[i] = strings.ReplaceAll(b.lines[i], old, new)
	}
	return count
}

// pushUndo snapshots the current lines. Callers hold mu.
func (b *Buffer) pushUndo() {
	b.undoStack = append(b.undoStack, cloneLines(b.lines))
	b.redoStack = nil
	b.dirty = true
}

// Undo reverts the last change and reports whether there was one.
// Undo отменяет последнее изменение.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.undoStack) == 0 {
		return false
	}
	b.redoStack = append(b.redoStack, cloneLines(b.lines))
	b.lines = b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.dirty = true
	return true
}

// Redo reapplies the last undone change.
// Redo повторно применяет последнее отменённое изменение.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.redoStack) == 0 {
		return false
	}
	b.undoStack = append(b.undoStack, cloneLines(b.lines))
	b.lines = b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.dirty = true
	return true
}

// Dirty reports whether the buffer changed since the last MarkClean.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// MarkClean resets the dirty flag after a save.
func (b *Buffer) MarkClean() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = false
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
