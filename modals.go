package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/andareed/shopfront/dialogs"
	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/history"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/region"
	"github.com/andareed/shopfront/storefront"
	"github.com/andareed/shopfront/submit"
	tea "github.com/charmbracelet/bubbletea"
)

// modal is one region plus the dialog drawn in its content.
type modal struct {
	name    string
	region  *region.Region
	dialog  dialogs.Dialog
	form    *dialogs.Form // nil for the help modal
	overlay *element.Element
	content *element.Element
	// params of the current open
	params region.Params
}

type formModalDef struct {
	name        string
	title       string
	fields      []dialogs.FieldSpec
	submitLabel string
	trigger     *element.Element
	gate        region.Gate
	// fill loads the form for the open that is about to happen
	fill func(md *modal)
}

func (m *model) newFormModal(def formModalDef) (*modal, error) {
	ov := element.New(element.KindOverlay, def.name)
	content := element.NewChild(ov, element.KindContent, def.name)
	form := dialogs.NewForm(def.title, content, def.fields, def.submitLabel)
	md := &modal{name: def.name, dialog: form, form: form, overlay: ov, content: content}

	r, err := region.New(m.coord, m.bus, region.Config{
		Trigger:    def.trigger,
		Close:      form.CloseButton(),
		Content:    content,
		Overlay:    ov,
		ShouldOpen: def.gate,
		OnOpen: func(oc region.OpenContext) {
			md.params = oc.Params
			form.Reset()
			form.Title = def.title
			if def.fill != nil {
				def.fill(md)
			}
			m.modalOpened(md)
		},
		OnClose: func(region.Params) { m.modalClosed(md) },
	})
	if err != nil {
		return nil, fmt.Errorf("%s modal: %w", def.name, err)
	}
	md.region = r

	submitBtn := form.SubmitButton()
	m.bus.Subscribe(events.KindClick, func(ev events.Event) {
		if ev.Target == submitBtn && r.IsOpen() {
			m.queueCmd(m.handleSubmitRequest(form))
		}
	})
	return md, nil
}

func (m *model) buildModals() error {
	var err error
	m.productEdit, err = m.newFormModal(formModalDef{
		name:  "product-edit",
		title: "Edit product",
		fields: []dialogs.FieldSpec{
			{Key: "name", Label: "Name"},
			{Key: "category", Label: "Category"},
			{Key: "price", Label: "Price", Placeholder: "0.00", CharLimit: 12},
			{Key: "stock", Label: "Stock", Placeholder: "0", CharLimit: 8},
		},
		submitLabel: "Save",
		fill:        m.fillProductEdit,
	})
	if err != nil {
		return err
	}

	m.addToCart, err = m.newFormModal(formModalDef{
		name:  "add-to-cart",
		title: "Add to cart",
		fields: []dialogs.FieldSpec{
			{Key: "quantity", Label: "Quantity", CharLimit: 4},
		},
		submitLabel: "Add",
		gate:        m.canAddToCart,
		fill:        m.fillAddToCart,
	})
	if err != nil {
		return err
	}

	m.checkout, err = m.newFormModal(formModalDef{
		name:  "checkout",
		title: "Checkout",
		fields: []dialogs.FieldSpec{
			{Key: "shipping", Label: "Shipping", Placeholder: "pickup or delivery"},
			{Key: "payment", Label: "Payment", Placeholder: "cash or transfer"},
			{Key: "address", Label: "Address", Placeholder: "needed for delivery"},
			{Key: "note", Label: "Note"},
		},
		submitLabel: "Place order",
		trigger:     m.checkoutBtn,
		gate:        m.canCheckout,
		fill: func(md *modal) {
			md.form.SetValue("shipping", string(storefront.ShippingPickup))
			md.form.SetValue("payment", string(storefront.PaymentCash))
		},
	})
	if err != nil {
		return err
	}

	m.profile, err = m.newFormModal(formModalDef{
		name:  "profile",
		title: "Edit profile",
		fields: []dialogs.FieldSpec{
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
		},
		submitLabel: "Save",
		trigger:     m.profileBtn,
		fill: func(md *modal) {
			md.form.SetValue("name", m.data.profile.Name)
			md.form.SetValue("email", m.data.profile.Email)
			md.form.SetValue("phone", m.data.profile.Phone)
		},
	})
	if err != nil {
		return err
	}

	m.help, err = m.newHelpModal()
	return err
}

func (m *model) newHelpModal() (*modal, error) {
	ov := element.New(element.KindOverlay, "help")
	content := element.NewChild(ov, element.KindContent, "help")
	help := dialogs.NewHelp(content, Keys.Legend())
	md := &modal{name: "help", dialog: help, overlay: ov, content: content}

	r, err := region.New(m.coord, m.bus, region.Config{
		Trigger: m.helpBtn,
		Close:   help.CloseButton(),
		Content: content,
		Overlay: ov,
		OnOpen:  func(region.OpenContext) { m.modalOpened(md) },
		OnClose: func(region.Params) { m.modalClosed(md) },
	})
	if err != nil {
		return nil, fmt.Errorf("help modal: %w", err)
	}
	md.region = r
	return md, nil
}

func (m *model) modalOpened(md *modal) {
	if !slices.Contains(m.ui.openModals, md) {
		m.ui.openModals = append(m.ui.openModals, md)
	}
	m.queueCmd(md.dialog.Focus())
	logging.Debugf("modal: %s opened (%d open)", md.name, len(m.ui.openModals))
}

func (m *model) modalClosed(md *modal) {
	m.ui.openModals = slices.DeleteFunc(m.ui.openModals, func(o *modal) bool { return o == md })
	md.dialog.Blur()
	logging.Debugf("modal: %s closed (%d open)", md.name, len(m.ui.openModals))
}

// topModal is the most recently opened modal still open; it gets the keys.
func (m *model) topModal() *modal {
	if n := len(m.ui.openModals); n > 0 {
		return m.ui.openModals[n-1]
	}
	return nil
}

func paramProduct(p region.Params) (storefront.Product, bool) {
	v, ok := p["product"].(storefront.Product)
	return v, ok
}

// --- Gates and fills --------------------------------------------------------

func (m *model) canAddToCart(events.Event) bool {
	if m.checkout.form.Control().Submitting() {
		m.startNotice("Wait for the order to go through", "warn", noticeDuration)
		return false
	}
	p, ok := m.currentProduct()
	if !ok {
		return false
	}
	if p.Stock == 0 {
		m.startNotice(p.Name+" is out of stock", "warn", noticeDuration)
		return false
	}
	return true
}

func (m *model) canCheckout(events.Event) bool {
	if len(m.data.cart.Lines) == 0 {
		m.startNotice("Your cart is empty", "warn", noticeDuration)
		return false
	}
	return true
}

func (m *model) fillProductEdit(md *modal) {
	p, ok := paramProduct(md.params)
	if !ok {
		return
	}
	md.form.Title = "Edit " + p.ID
	md.form.SetValue("name", p.Name)
	md.form.SetValue("category", p.Category)
	md.form.SetValue("price", fmt.Sprintf("%.2f", p.Price))
	md.form.SetValue("stock", fmt.Sprintf("%d", p.Stock))
}

func (m *model) fillAddToCart(md *modal) {
	p, ok := paramProduct(md.params)
	if !ok {
		return
	}
	md.form.Title = fmt.Sprintf("Add %s (%d in stock)", p.Name, p.Stock)
	md.form.SetValue("quantity", "1")
}

func (m *model) openProductEdit() {
	if p, ok := m.currentProduct(); ok {
		m.productEdit.region.Open(region.Params{"product": p})
	}
}

func (m *model) openAddToCart() {
	p, ok := m.currentProduct()
	if !ok {
		return
	}
	m.addToCart.region.Open(region.Params{"product": p})
}

// --- Submissions ------------------------------------------------------------

func (m *model) handleSubmitRequest(f *dialogs.Form) tea.Cmd {
	if f.Control().Submitting() {
		return nil
	}
	var run func() tea.Cmd
	var md *modal
	switch f {
	case m.productEdit.form:
		md, run = m.productEdit, m.submitProduct
	case m.addToCart.form:
		md, run = m.addToCart, m.submitAddToCart
	case m.checkout.form:
		md, run = m.checkout, m.submitCheckout
	case m.profile.form:
		md, run = m.profile, m.submitProfile
	default:
		return nil
	}
	// the request may arrive after the modal was dismissed
	if !md.region.IsOpen() {
		logging.Debugf("modal: dropped submit of closed %s", md.name)
		return nil
	}
	return run()
}

// runSubmit hands req to the pipeline off the UI goroutine.
func (m *model) runSubmit(what string, form *dialogs.Form, req submit.Request) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := m.pipeline.Run(ctx, req)
		return submitDoneMsg{what: what, form: form, err: err}
	}
}

// modalRequest builds the request for a modal form. op runs off the UI
// goroutine; after runs on the loop once the modal has closed.
func (m *model) modalRequest(md *modal, op func(ctx context.Context) error, after func()) submit.Request {
	var ok atomic.Bool
	return submit.Request{
		Control:     md.form.Control(),
		ShowSpinner: true,
		MinDisplay:  m.minSpinner,
		Submit: func(ctx context.Context) error {
			m.loop.Post(func() {}) // repaint with the spinner label
			if err := op(ctx); err != nil {
				return err
			}
			ok.Store(true)
			return nil
		},
		OnSettled: func() {
			if !ok.Load() {
				return
			}
			if md.region.IsOpen() {
				md.region.Close()
			}
			if after != nil {
				after()
			}
		},
	}
}

func (m *model) rejectForm(md *modal, err error) {
	md.form.SetMessage(err.Error())
	m.startNotice(err.Error(), "error", noticeDuration)
}

func (m *model) submitProduct() tea.Cmd {
	md := m.productEdit
	orig, ok := paramProduct(md.params)
	if !ok {
		return nil
	}
	v := md.form.Values()
	p, err := storefront.ParseProduct(orig.ID, v["name"], v["category"], v["price"], v["stock"])
	if err != nil {
		m.rejectForm(md, err)
		return nil
	}
	req := m.modalRequest(md, func(ctx context.Context) error {
		saved, err := m.backend.UpdateProduct(ctx, p)
		if err != nil {
			return err
		}
		m.loop.Post(func() {
			m.data.replaceProduct(saved)
			m.applyFilter()
			m.startNotice("Saved "+saved.Name, "success", noticeDuration)
		})
		return nil
	}, nil)
	return m.runSubmit("save "+orig.Name, md.form, req)
}

func (m *model) submitAddToCart() tea.Cmd {
	md := m.addToCart
	p, ok := paramProduct(md.params)
	if !ok {
		return nil
	}
	qty, err := storefront.ParseQuantity(md.form.Value("quantity"))
	if err != nil {
		m.rejectForm(md, err)
		return nil
	}
	req := m.modalRequest(md, func(ctx context.Context) error {
		cart, err := m.backend.AddToCart(ctx, p.ID, qty)
		if err != nil {
			return err
		}
		m.loop.Post(func() {
			m.data.cart = cart
			m.startNotice(fmt.Sprintf("Added %d × %s", qty, p.Name), "success", noticeDuration)
		})
		return nil
	}, nil)
	return m.runSubmit("add "+p.Name, md.form, req)
}

func (m *model) submitCheckout() tea.Cmd {
	md := m.checkout
	v := md.form.Values()
	ck := storefront.Checkout{
		Shipping: storefront.ShippingMethod(strings.ToLower(v["shipping"])),
		Payment:  storefront.PaymentMethod(strings.ToLower(v["payment"])),
		Address:  v["address"],
		Note:     v["note"],
	}
	if err := storefront.ValidateCheckout(ck); err != nil {
		m.rejectForm(md, err)
		return nil
	}
	req := m.modalRequest(md, func(ctx context.Context) error {
		order, err := m.backend.PlaceOrder(ctx, ck)
		if err != nil {
			return err
		}
		// the order took stock
		products, perr := m.backend.Products(ctx)
		m.loop.Post(func() {
			m.data.orders = append([]storefront.Order{order}, m.data.orders...)
			m.data.cart = storefront.Cart{}
			m.cartCursor = 0
			if perr == nil {
				m.data.setProducts(products)
				m.applyFilter()
			}
			m.startNotice("Order "+shortID(order.ID)+" placed", "success", noticeDuration)
		})
		return nil
	}, func() { m.goTo(history.SectionOrders) })
	return m.runSubmit("place the order", md.form, req)
}

func (m *model) submitProfile() tea.Cmd {
	md := m.profile
	v := md.form.Values()
	p := storefront.Profile{Name: v["name"], Email: v["email"], Phone: v["phone"]}
	if err := storefront.ValidateProfile(p); err != nil {
		m.rejectForm(md, err)
		return nil
	}
	req := m.modalRequest(md, func(ctx context.Context) error {
		saved, err := m.backend.UpdateProfile(ctx, p)
		if err != nil {
			return err
		}
		m.loop.Post(func() {
			m.data.profile = saved
			m.startNotice("Profile saved", "success", noticeDuration)
		})
		return nil
	}, nil)
	return m.runSubmit("save the profile", md.form, req)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
