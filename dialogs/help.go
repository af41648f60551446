package dialogs

import (
	"fmt"
	"strings"

	"github.com/andareed/shopfront/element"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const helpMaxLines = 14

// Help lists key bindings in a scrollable box.
type Help struct {
	close    *element.Element
	bindings []key.Binding
	vp       viewport.Model
}

func NewHelp(content *element.Element, bindings []key.Binding) *Help {
	d := &Help{
		close:    element.NewChild(content, element.KindButton, "Close"),
		bindings: bindings,
	}
	var lines []string
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-14s %s", h.Key, h.Desc))
	}
	d.vp = viewport.New(boxWidth-4, min(len(lines), helpMaxLines))
	d.vp.SetContent(strings.Join(lines, "\n"))
	return d
}

func (d *Help) CloseButton() *element.Element { return d.close }

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "up", "k":
			d.vp.ScrollUp(1)
		case "down", "j":
			d.vp.ScrollDown(1)
		}
	}
	return d, nil
}

func (d *Help) View() (string, []Hit) {
	lines := []string{titleStyle.Render("Keys"), ""}
	lines = append(lines, d.vp.View())
	lines = append(lines, "", hintStyle.Render("↑/↓ scroll · esc to return"), "")

	// the viewport renders exactly its height
	y := insetY + len(lines) + d.vp.Height - 1
	row, xs, ws := buttonRow(d.close)
	lines = append(lines, row)
	return boxStyle().Render(strings.Join(lines, "\n")), []Hit{{El: d.close, X: insetX + xs[0], Y: y, W: ws[0]}}
}

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
