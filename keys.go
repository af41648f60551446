package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit           key.Binding
	RowDown        key.Binding
	RowUp          key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Search         key.Binding
	Filter         key.Binding
	ClearFilter    key.Binding
	Jump           key.Binding
	Favourite      key.Binding
	FavouritesOnly key.Binding
	NextFavourite  key.Binding
	PrevFavourite  key.Binding
	EditProduct    key.Binding
	AddToCart      key.Binding
	RemoveFromCart key.Binding
	Checkout       key.Binding
	EditProfile    key.Binding
	Catalog        key.Binding
	Cart           key.Binding
	Orders         key.Binding
	Profile        key.Binding
	Back           key.Binding
	OpenHelp       key.Binding
	CopyRow        key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "back to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "jump to end"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter (regex)"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to row"),
	),
	Favourite: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "star / unstar product"),
	),
	FavouritesOnly: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "toggle starred only"),
	),
	NextFavourite: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next starred"),
	),
	PrevFavourite: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous starred"),
	),
	EditProduct: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter/e", "edit product"),
	),
	AddToCart: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add to cart"),
	),
	RemoveFromCart: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove cart line"),
	),
	Checkout: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "checkout"),
	),
	EditProfile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "edit profile"),
	),
	Catalog: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "catalog"),
	),
	Cart: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "cart"),
	),
	Orders: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "orders"),
	),
	Profile: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "profile"),
	),
	Back: key.NewBinding(
		key.WithKeys("alt+left", "ctrl+b"),
		key.WithHelp("ctrl+b", "back"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy product to clipboard"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Catalog,
		k.Cart,
		k.Orders,
		k.Profile,
		k.Back,
		k.RowDown,
		k.RowUp,
		k.PageDown,
		k.PageUp,
		k.Top,
		k.Bottom,
		k.Search,
		k.Filter,
		k.ClearFilter,
		k.Jump,
		k.Favourite,
		k.FavouritesOnly,
		k.NextFavourite,
		k.PrevFavourite,
		k.EditProduct,
		k.AddToCart,
		k.RemoveFromCart,
		k.Checkout,
		k.EditProfile,
		k.CopyRow,
		k.Quit,
	}
}
