package editor

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrNothingToShare is returned when the buffer is empty.
var ErrNothingToShare = errors.New("nothing to share")

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// Clipboard is the write side of a system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the platform clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// Share copies text to clip.
func Share(clip Clipboard, text string) error {
	if text == "" {
		return ErrNothingToShare
	}
	if clip == nil {
		clip = SystemClipboard{}
	}
	return clip.WriteAll(text)
}
