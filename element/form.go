package element

import "sync/atomic"

// Button is the part of a submit control the submission pipeline touches.
type Button interface {
	Label() string
	SetLabel(string)
	SetDisabled(bool)
}

// Form is a form-like control: a container element that owns a submission
// guard and a set of submit-capable buttons.
type Form struct {
	*Element

	submitting atomic.Bool
	buttons    []*Element
}

func NewForm(parent *Element, label string) *Form {
	return &Form{Element: NewChild(parent, KindForm, label)}
}

// AddSubmit creates a submit button inside the form.
func (f *Form) AddSubmit(label string) *Element {
	b := NewChild(f.Element, KindButton, label)
	f.buttons = append(f.buttons, b)
	return b
}

// TryAcquire sets the guard and reports whether it was previously clear.
func (f *Form) TryAcquire() bool {
	return f.submitting.CompareAndSwap(false, true)
}

func (f *Form) Release() {
	f.submitting.Store(false)
}

func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

func (f *Form) Buttons() []*Element {
	return append([]*Element(nil), f.buttons...)
}

// SubmitButtons returns the submit buttons behind the Button interface.
func (f *Form) SubmitButtons() []Button {
	out := make([]Button, len(f.buttons))
	for i, b := range f.buttons {
		out[i] = b
	}
	return out
}
