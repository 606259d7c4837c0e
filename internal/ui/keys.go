package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyDefinition is the single source of truth for a binding's keys and help text
type keyDefinition struct {
	Defaults []string
	Help     string
	HelpKey  string // shown instead of the joined defaults when set
	Name     string
}

var keyDefinitions = []keyDefinition{
	// Application
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Defaults: []string{"?"}, Help: "show keyboard shortcuts"},
	{Name: "quit", Defaults: []string{"q"}, Help: "quit"},

	// Navigation
	{Name: "close", Defaults: []string{"esc"}, Help: "close"},
	{Name: "down", Defaults: []string{"down", "j"}, Help: "next record", HelpKey: "↓/j"},
	{Name: "open", Defaults: []string{"enter"}, Help: "show request detail"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "previous record", HelpKey: "↑/k"},

	// Detail
	{Name: "copy_error", Defaults: []string{"e"}, Help: "copy error message"},
	{Name: "copy_request", Defaults: []string{"c"}, Help: "copy request body"},
	{Name: "copy_request_id", Defaults: []string{"y"}, Help: "copy request ID"},
	{Name: "copy_response", Defaults: []string{"C"}, Help: "copy response body"},

	// Paging
	{Name: "cycle_page_size", Defaults: []string{"s"}, Help: "cycle page size"},
	{Name: "first_page", Defaults: []string{"home", "g"}, Help: "first page"},
	{Name: "last_page", Defaults: []string{"end", "G"}, Help: "last page"},
	{Name: "next_page", Defaults: []string{"right", "l", "pgdown"}, Help: "next page", HelpKey: "→/l"},
	{Name: "prev_page", Defaults: []string{"left", "h", "pgup"}, Help: "previous page", HelpKey: "←/h"},

	// Actions
	{Name: "cycle_interval", Defaults: []string{"i"}, Help: "cycle refresh interval"},
	{Name: "logout", Defaults: []string{"L"}, Help: "log out"},
	{Name: "profile", Defaults: []string{"p"}, Help: "edit profile"},
	{Name: "refresh", Defaults: []string{"r"}, Help: "refresh now"},
	{Name: "toggle_auto_refresh", Defaults: []string{"a"}, Help: "toggle auto-refresh"},
}

func newBinding(name string) key.Binding {
	for _, def := range keyDefinitions {
		if def.Name != name {
			continue
		}
		helpKey := def.HelpKey
		if helpKey == "" {
			helpKey = def.Defaults[0]
		}
		return key.NewBinding(key.WithKeys(def.Defaults...), key.WithHelp(helpKey, def.Help))
	}
	panic("ui: unknown key binding " + name)
}

// ApplicationKeys apply in every state
type ApplicationKeys struct {
	ForceQuit key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// NavigationKeys move through the log table and open or close the detail
type NavigationKeys struct {
	Close key.Binding
	Down  key.Binding
	Open  key.Binding
	Up    key.Binding
}

// DetailKeys copy fields of the open request detail
type DetailKeys struct {
	CopyError     key.Binding
	CopyRequest   key.Binding
	CopyRequestID key.Binding
	CopyResponse  key.Binding
}

// PagingKeys drive the LogPager
type PagingKeys struct {
	CyclePageSize key.Binding
	First         key.Binding
	Last          key.Binding
	Next          key.Binding
	Prev          key.Binding
}

// ActionKeys are the remaining logs view actions
type ActionKeys struct {
	CycleInterval     key.Binding
	Logout            key.Binding
	Profile           key.Binding
	Refresh           key.Binding
	ToggleAutoRefresh key.Binding
}

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Actions     ActionKeys
	Application ApplicationKeys
	Detail      DetailKeys
	Navigation  NavigationKeys
	Paging      PagingKeys
}

// NewKeyMap creates a KeyMap with the default bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Actions: ActionKeys{
			CycleInterval:     newBinding("cycle_interval"),
			Logout:            newBinding("logout"),
			Profile:           newBinding("profile"),
			Refresh:           newBinding("refresh"),
			ToggleAutoRefresh: newBinding("toggle_auto_refresh"),
		},
		Application: ApplicationKeys{
			ForceQuit: newBinding("force_quit"),
			Help:      newBinding("help"),
			Quit:      newBinding("quit"),
		},
		Detail: DetailKeys{
			CopyError:     newBinding("copy_error"),
			CopyRequest:   newBinding("copy_request"),
			CopyRequestID: newBinding("copy_request_id"),
			CopyResponse:  newBinding("copy_response"),
		},
		Navigation: NavigationKeys{
			Close: newBinding("close"),
			Down:  newBinding("down"),
			Open:  newBinding("open"),
			Up:    newBinding("up"),
		},
		Paging: PagingKeys{
			CyclePageSize: newBinding("cycle_page_size"),
			First:         newBinding("first_page"),
			Last:          newBinding("last_page"),
			Next:          newBinding("next_page"),
			Prev:          newBinding("prev_page"),
		},
	}
}

// ShortHelp returns the bindings shown in the logs view footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Navigation.Open,
		k.Paging.Prev,
		k.Paging.Next,
		k.Actions.Refresh,
		k.Actions.ToggleAutoRefresh,
		k.Application.Help,
		k.Application.Quit,
	}
}

// FullHelp returns every binding grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigation.Up, k.Navigation.Down, k.Navigation.Open, k.Navigation.Close},
		{k.Detail.CopyRequestID, k.Detail.CopyRequest, k.Detail.CopyResponse, k.Detail.CopyError},
		{k.Paging.Prev, k.Paging.Next, k.Paging.First, k.Paging.Last, k.Paging.CyclePageSize},
		{k.Actions.Refresh, k.Actions.ToggleAutoRefresh, k.Actions.CycleInterval, k.Actions.Profile, k.Actions.Logout},
		{k.Application.Help, k.Application.Quit, k.Application.ForceQuit},
	}
}

// KeyBinding describes one shortcut for listing outside the TUI
type KeyBinding struct {
	Help string
	Keys []string
	Name string
}

// KeyBindings returns every shortcut in definition order
func KeyBindings() []KeyBinding {
	bindings := make([]KeyBinding, 0, len(keyDefinitions))
	for _, def := range keyDefinitions {
		bindings = append(bindings, KeyBinding{
			Help: def.Help,
			Keys: append([]string(nil), def.Defaults...),
			Name: def.Name,
		})
	}
	return bindings
}
