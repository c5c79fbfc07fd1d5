package utils

import "github.com/atotto/clipboard"

// SystemClipboard writes to the OS clipboard. On Linux it needs xclip,
// xsel or wl-clipboard; without them WriteAll returns an error.
type SystemClipboard struct{}

func NewSystemClipboard() SystemClipboard {
	return SystemClipboard{}
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardAvailable reports whether a clipboard backend was found.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
