package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andareed/shopfront/dialogs"
	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/history"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/loop"
	"github.com/andareed/shopfront/mouse"
	"github.com/andareed/shopfront/overlay"
	"github.com/andareed/shopfront/storefront"
	"github.com/andareed/shopfront/submit"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// appDeps is everything newModel needs from main.
type appDeps struct {
	Ctx     context.Context
	Backend storefront.Backend
	Loop    loop.Loop
	// SettleDelay pads the settle callback after a submission.
	SettleDelay time.Duration
	MinSpinner  time.Duration
	Copy        func(string) error
}

type model struct {
	ctx      context.Context
	backend  storefront.Backend
	loop     loop.Loop
	copy     func(string) error
	bus      *events.Bus
	nav      *history.Stack
	coord    *overlay.Coordinator
	lock     *submit.PointerLock
	pipeline *submit.Pipeline
	mouse    *mouse.Handler

	minSpinner time.Duration

	data dataState
	ui   uiState

	viewport            viewport.Model
	ready               bool
	loaded              bool
	terminalWidth       int
	terminalHeight      int
	cursor              int // index into data.filteredIndices
	cartCursor          int
	lastVisibleRowCount int
	section             history.Section

	tabs        []tab
	checkoutBtn *element.Element
	profileBtn  *element.Element
	helpBtn     *element.Element
	topHint     *topHint
	cartActions *element.Form

	productEdit *modal
	addToCart   *modal
	checkout    *modal
	profile     *modal
	help        *modal

	// commands raised by bus handlers, returned from the current Update
	pending []tea.Cmd
}

type tab struct {
	section history.Section
	title   string
	el      *element.Element
}

// topHint is the jump-to-top affordance in the footer. The overlay
// coordinator hides it while a modal is open.
type topHint struct{ suppressed bool }

func (t *topHint) SetSuppressed(v bool) { t.suppressed = v }

// --- Messages ---------------------------------------------------------------

type dataLoadedMsg struct {
	products []storefront.Product
	cart     storefront.Cart
	orders   []storefront.Order
	profile  storefront.Profile
}

type loadFailedMsg struct{ err error }

type submitDoneMsg struct {
	what string
	form *dialogs.Form // nil for page actions
	err  error
}

func spinnerLabel(label string) string {
	return spinner.MiniDot.Frames[0] + " " + label
}

func newModel(d appDeps) (*model, error) {
	m := &model{
		ctx:        d.Ctx,
		backend:    d.Backend,
		loop:       d.Loop,
		copy:       d.Copy,
		bus:        events.NewBus(),
		nav:        history.NewStack(history.SectionCatalog),
		lock:       &submit.PointerLock{},
		mouse:      mouse.NewHandler(),
		minSpinner: d.MinSpinner,
		data:       newDataState(nil),
		section:    history.SectionCatalog,
		topHint:    &topHint{},
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.coord = overlay.New(m.bus, m.nav, overlay.WithAffordance(m.topHint))
	m.pipeline = submit.New(m.loop, m.lock,
		submit.WithTrailingDelay(d.SettleDelay),
		submit.WithSpinner(spinnerLabel),
	)
	m.cartActions = element.NewForm(nil, "cart-actions")

	m.buildPage()
	if err := m.buildModals(); err != nil {
		return nil, err
	}
	m.bus.Subscribe(events.KindClick, m.handlePageClick)
	return m, nil
}

func (m *model) buildPage() {
	for _, t := range []struct {
		sec   history.Section
		title string
	}{
		{history.SectionCatalog, "1 Catalog"},
		{history.SectionCart, "2 Cart"},
		{history.SectionOrders, "3 Orders"},
		{history.SectionProfile, "4 Profile"},
	} {
		m.tabs = append(m.tabs, tab{section: t.sec, title: t.title, el: element.New(element.KindButton, t.title)})
	}
	m.checkoutBtn = element.New(element.KindButton, "Checkout")
	m.profileBtn = element.New(element.KindButton, "Edit profile")
	m.helpBtn = element.New(element.KindButton, "?")
}

func (m *model) handlePageClick(ev events.Event) {
	for _, t := range m.tabs {
		if ev.Target == t.el {
			m.goTo(t.section)
			return
		}
	}
}

func (m *model) queueCmd(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *model) Init() tea.Cmd {
	logging.Infof("shopfront: Initialised")
	m.nav.DropStaleGuards()
	return m.fetchAll()
}

// fetchAll loads the four collections concurrently.
func (m *model) fetchAll() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		var msg dataLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			msg.products, err = m.backend.Products(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.cart, err = m.backend.Cart(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.orders, err = m.backend.Orders(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.profile, err = m.backend.Profile(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return loadFailedMsg{err: err}
		}
		return msg
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case loop.Msg:
		msg.Run()

	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.viewport = viewport.New(max(0, msg.Width-6), max(1, msg.Height-8))
		m.ready = true

	case dataLoadedMsg:
		m.data.setProducts(msg.products)
		m.data.cart = msg.cart
		m.data.orders = msg.orders
		m.data.profile = msg.profile
		m.loaded = true
		m.applyFilter()
		logging.Infof("shopfront: loaded %d products, %d orders", len(msg.products), len(msg.orders))

	case loadFailedMsg:
		logging.Errorf("shopfront: initial load failed: %v", msg.err)
		m.startNotice("Load failed: "+userMessage(msg.err), "error", 5*time.Second)

	case submitDoneMsg:
		if msg.err != nil {
			text := fmt.Sprintf("Could not %s: %s", msg.what, userMessage(msg.err))
			if msg.form != nil {
				msg.form.SetMessage(text)
			}
			m.startNotice(text, "error", noticeDuration)
		}

	case dialogs.SubmitRequestedMsg:
		cmd = m.handleSubmitRequest(msg.Form)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		_, cmd = m.updateKey(msg)
	}

	m.refreshView()

	if len(m.pending) > 0 {
		cmds := append(m.pending, cmd)
		m.pending = nil
		return m, tea.Batch(cmds...)
	}
	return m, cmd
}

// userMessage prefers the API's own wording over the wrapped error chain.
func userMessage(err error) string {
	var apiErr *storefront.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the shop did not answer in time"
	}
	return err.Error()
}

// goTo switches section, recording it in the history.
func (m *model) goTo(sec history.Section) {
	if sec == m.section {
		return
	}
	if m.coord.Owner() == nil {
		if n := m.nav.DropStaleGuards(); n > 0 {
			logging.Warnf("history: dropped %d stale guards", n)
		}
	}
	m.nav.Push(sec)
	m.section = sec
	m.ui.searchQuery = ""
}

func (m *model) back() {
	m.nav.Back()
	m.section = m.nav.Current()
}

func (m *model) currentProduct() (storefront.Product, bool) {
	return m.data.productAt(m.cursor)
}

func (m *model) currentCartLine() (storefront.CartLine, bool) {
	lines := m.data.cart.Lines
	if m.cartCursor < 0 || m.cartCursor >= len(lines) {
		return storefront.CartLine{}, false
	}
	return lines[m.cartCursor], true
}

func (m *model) moveCursor(d int) {
	switch m.section {
	case history.SectionCatalog:
		if n := len(m.data.filteredIndices); n > 0 {
			m.cursor = clamp(m.cursor+d, 0, n-1)
		}
	case history.SectionCart:
		if n := len(m.data.cart.Lines); n > 0 {
			m.cartCursor = clamp(m.cartCursor+d, 0, n-1)
		}
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.lock.Locked() {
		logging.Debug("mouse: dropped while a submission is in flight")
		return
	}
	a := m.mouse.HandleMouse(msg)
	switch a.Type {
	case mouse.ActionScrollUp:
		if m.topModal() == nil {
			m.moveCursor(-1)
		}
	case mouse.ActionScrollDown:
		if m.topModal() == nil {
			m.moveCursor(1)
		}
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if a.Region == nil {
			return
		}
		switch d := a.Region.Data.(type) {
		case *element.Element:
			if d.Disabled() {
				return
			}
			m.bus.Dispatch(events.Click(d))
		case rowHit:
			m.cursor = int(d)
			if a.Type == mouse.ActionDoubleClick {
				m.openProductEdit()
			}
		}
	}
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.ui.mode == modeCommand {
		return m.handleCommandKey(msg)
	}
	if key.Matches(msg, Keys.Back) {
		m.back()
		return m, nil
	}

	hadModal := m.topModal() != nil
	m.bus.Dispatch(events.Key(msg.String()))
	if md := m.topModal(); md != nil {
		var cmd tea.Cmd
		md.dialog, cmd = md.dialog.Update(msg)
		return m, cmd
	}
	if hadModal {
		// the key dismissed the modal
		return m, nil
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		m.ui.searchQuery = ""
	case key.Matches(msg, Keys.Catalog):
		m.goTo(history.SectionCatalog)
	case key.Matches(msg, Keys.Cart):
		m.goTo(history.SectionCart)
	case key.Matches(msg, Keys.Orders):
		m.goTo(history.SectionOrders)
	case key.Matches(msg, Keys.Profile):
		m.goTo(history.SectionProfile)
	case key.Matches(msg, Keys.OpenHelp):
		m.help.region.Open(nil)
	case key.Matches(msg, Keys.EditProfile):
		m.profile.region.Open(nil)
	case key.Matches(msg, Keys.Checkout):
		m.checkout.region.Open(nil)
	case key.Matches(msg, Keys.RowDown):
		m.moveCursor(1)
	case key.Matches(msg, Keys.RowUp):
		m.moveCursor(-1)
	default:
		switch m.section {
		case history.SectionCatalog:
			return m.handleCatalogKey(msg)
		case history.SectionCart:
			return m.handleCartKey(msg)
		}
	}
	return m, nil
}

func (m *model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.PageDown):
		m.pageDown()
	case key.Matches(msg, Keys.PageUp):
		m.pageUp()
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.Search):
		m.enterCommandMode(CmdSearch)
	case key.Matches(msg, Keys.Filter):
		m.enterCommandMode(CmdFilter)
	case key.Matches(msg, Keys.Jump):
		m.enterCommandMode(CmdJump)
	case key.Matches(msg, Keys.ClearFilter):
		_ = m.setFilterPattern("")
	case key.Matches(msg, Keys.Favourite):
		if name, starred := m.toggleFavourite(); name != "" {
			if starred {
				m.startNotice("Starred "+name, "info", noticeDuration)
			} else {
				m.startNotice("Unstarred "+name, "info", noticeDuration)
			}
			if m.data.showOnlyFavs {
				m.applyFilter()
			}
		}
	case key.Matches(msg, Keys.FavouritesOnly):
		m.data.showOnlyFavs = !m.data.showOnlyFavs
		m.applyFilter()
	case key.Matches(msg, Keys.NextFavourite):
		m.jumpToNextFavourite()
	case key.Matches(msg, Keys.PrevFavourite):
		m.jumpToPreviousFavourite()
	case key.Matches(msg, Keys.EditProduct):
		m.openProductEdit()
	case key.Matches(msg, Keys.AddToCart):
		m.openAddToCart()
	case key.Matches(msg, Keys.CopyRow):
		m.copyCurrentRow()
	}
	return m, nil
}

func (m *model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Top):
		m.cartCursor = 0
	case key.Matches(msg, Keys.RemoveFromCart):
		return m, m.removeCartLine()
	}
	return m, nil
}

func (m *model) copyCurrentRow() {
	if !m.checkViewPortHasData() {
		return
	}
	row := m.data.rows[m.data.filteredIndices[m.cursor]]
	if err := m.copy(row.String()); err != nil {
		logging.Warnf("clipboard: %v", err)
		m.startNotice("Copy failed: "+err.Error(), "error", noticeDuration)
		return
	}
	m.startNotice("Copied "+row.product.Name, "success", noticeDuration)
}

func (m *model) removeCartLine() tea.Cmd {
	line, ok := m.currentCartLine()
	if !ok {
		return nil
	}
	req := submit.Request{
		Control: m.cartActions,
		Submit: func(ctx context.Context) error {
			cart, err := m.backend.RemoveFromCart(ctx, line.ProductID)
			if err != nil {
				return err
			}
			m.loop.Post(func() {
				m.data.cart = cart
				m.cartCursor = clamp(m.cartCursor, 0, max(0, len(cart.Lines)-1))
				m.startNotice("Removed "+line.Name, "success", noticeDuration)
			})
			return nil
		},
	}
	return m.runSubmit("remove "+line.Name, nil, req)
}
