package dialogs

import (
	"fmt"
	"strings"

	"github.com/andareed/shopfront/element"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// --- Messages ---------------------------------------------------------------

// SubmitRequestedMsg is sent when the user confirms a form.
type SubmitRequestedMsg struct{ Form *Form }

// FieldSpec describes one input of a form.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	CharLimit   int
}

type field struct {
	key   string
	label string
	input textinput.Model
}

// Form is a modal form: a few text inputs, a submit button and a close
// button. The buttons are elements so clicks and the submission pipeline can
// address them.
type Form struct {
	Title string

	form   *element.Form
	submit *element.Element
	close  *element.Element

	fields  []field
	focus   int
	message string
}

const labelWidth = 12

// NewForm builds a form inside content. The close button is the one the
// owning region listens on.
func NewForm(title string, content *element.Element, specs []FieldSpec, submitLabel string) *Form {
	f := &Form{Title: title, form: element.NewForm(content, title)}
	f.submit = f.form.AddSubmit(submitLabel)
	f.close = element.NewChild(content, element.KindButton, "Cancel")

	for _, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = s.Placeholder
		ti.CharLimit = s.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 128
		}
		// label, gap and the cursor cell share the inner width
		ti.Width = boxWidth - 4 - labelWidth - 2 - 1
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.fields = append(f.fields, field{key: s.Key, label: s.Label, input: ti})
	}
	return f
}

// Control is the submission control for the pipeline.
func (f *Form) Control() *element.Form         { return f.form }
func (f *Form) SubmitButton() *element.Element { return f.submit }
func (f *Form) CloseButton() *element.Element  { return f.close }

func (f *Form) Value(key string) string {
	for _, fd := range f.fields {
		if fd.key == key {
			return strings.TrimSpace(fd.input.Value())
		}
	}
	return ""
}

func (f *Form) SetValue(key, v string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(v)
			return
		}
	}
}

// Values returns every field keyed by field key.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		out[fd.key] = strings.TrimSpace(fd.input.Value())
	}
	return out
}

// SetMessage sets the text shown between the fields and the buttons.
func (f *Form) SetMessage(s string) { f.message = s }

// Reset clears the inputs and focuses the first one.
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.message = ""
	f.focus = 0
}

func (f *Form) Focus() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	return f.fields[f.focus].input.Focus()
}

func (f *Form) Blur() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

func (f *Form) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "enter":
			if f.focus < len(f.fields)-1 {
				return f, f.move(1)
			}
			return f, f.requestSubmit()
		case "ctrl+s":
			return f, f.requestSubmit()
		}
	}
	if len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f *Form) requestSubmit() tea.Cmd {
	return func() tea.Msg { return SubmitRequestedMsg{Form: f} }
}

func (f *Form) move(d int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = (f.focus + d + len(f.fields)) % len(f.fields)
	return f.Focus()
}

func (f *Form) View() (string, []Hit) {
	var lines []string
	lines = append(lines, titleStyle.Render(f.Title), "")

	for i, fd := range f.fields {
		label := fmt.Sprintf("%-*s", labelWidth, fd.label)
		if i == f.focus {
			label = focusedLabelStyle.Render(label)
		}
		lines = append(lines, label+"  "+fd.input.View())
	}

	if f.message != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(wordwrap.String(f.message, boxWidth-4), "\n")...)
	}

	lines = append(lines, "", hintStyle.Render("tab next · enter submit · esc cancel"), "")

	row, xs, ws := buttonRow(f.submit, f.close)
	y := insetY + len(lines)
	lines = append(lines, row)

	hits := []Hit{
		{El: f.submit, X: insetX + xs[0], Y: y, W: ws[0]},
		{El: f.close, X: insetX + xs[1], Y: y, W: ws[1]},
	}
	return boxStyle().Render(strings.Join(lines, "\n")), hits
}
