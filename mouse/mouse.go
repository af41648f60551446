// Package mouse resolves terminal mouse events against the regions the view
// drew in the last frame.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const doubleClickWindow = 400 * time.Millisecond

// Rect is a half-open screen rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, clickable rectangle. Data is whatever the view attached,
// usually the element drawn there.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of one frame. Regions added later are on top.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap { return &HitMap{} }

func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region at (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

func (h *HitMap) Clear() { h.regions = h.regions[:0] }

func (h *HitMap) Regions() []Region { return h.regions }

type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionHover
)

type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
}

// Handler turns tea mouse messages into actions.
type Handler struct {
	HitMap *HitMap

	lastClickID string
	lastClickAt time.Time
	now         func() time.Time
}

func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

func (h *Handler) Clear() { h.HitMap.Clear() }

// HandleMouse classifies msg. Only left presses count as clicks; a second
// press on the same region inside the double-click window is a double click,
// and the one after that starts over.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		a.Type = ActionScrollUp
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		a.Type = ActionScrollDown
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		a.Type = ActionClick
		if h.isDouble(a.Region) {
			a.Type = ActionDoubleClick
		}
	case msg.Action == tea.MouseActionMotion:
		a.Type = ActionHover
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	}
	return a
}

func (h *Handler) isDouble(r *Region) bool {
	now := h.now()
	id := ""
	if r != nil {
		id = r.ID
	}
	double := id != "" && id == h.lastClickID && now.Sub(h.lastClickAt) <= doubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickAt = time.Time{}
		return true
	}
	h.lastClickID = id
	h.lastClickAt = now
	return false
}
