package tui

import (
	"github.com/atotto/clipboard"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

// CopyToClipboard writes text to the system clipboard. A refused copy is
// returned as *domain.ClipboardError.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return &domain.ClipboardError{Err: err}
	}
	return nil
}
