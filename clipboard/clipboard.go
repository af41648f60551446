package clipboard

import (
	"github.com/andareed/shopfront/logging"
	atotto "github.com/atotto/clipboard"
)

// Copy puts text on the system clipboard, falling back to an OSC52 escape
// when no native clipboard tool is available (SSH sessions, bare TTYs).
func Copy(text string) error {
	if !atotto.Unsupported {
		err := atotto.WriteAll(text)
		if err == nil {
			logging.Debugf("Clipboard: copied %d bytes natively", len(text))
			return nil
		}
		logging.Warnf("Clipboard: native copy failed: %v", err)
	}
	return copyOSC52(text)
}
