package dialogs

import (
	"github.com/andareed/shopfront/element"
	tea "github.com/charmbracelet/bubbletea"
)

// Dialog is the common interface the modal bodies (forms, help) implement.
// The open/closed lifecycle lives in the region that owns the dialog, so
// there is no visibility state here.
type Dialog interface {
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	// View renders the dialog box and reports where its clickable elements
	// ended up, relative to the box's top-left corner.
	View() (string, []Hit)

	Focus() tea.Cmd
	Blur()
}

// Hit is one clickable element inside a rendered dialog. Hits are one line
// tall.
type Hit struct {
	El   *element.Element
	X, Y int
	W    int
}
