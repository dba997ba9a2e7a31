// Package input turns terminal key presses into engine actions.
package input

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/action"
)

// DefaultKeys lists the default keys for each action.
var DefaultKeys = map[action.Action][]string{
	action.Confirm:           {"enter", "space"},
	action.Cancel:            {"esc", "backspace"},
	action.NavigateUp:        {"up", "k", "w"},
	action.NavigateDown:      {"down", "j", "s"},
	action.NavigateLeft:      {"left", "h", "a"},
	action.NavigateRight:     {"right", "l", "d"},
	action.ToggleTranslation: {"t"},
	action.OpenMenuVocab:     {"v"},
	action.OpenMenuSettings:  {"o"},
}

var helpText = map[action.Action]string{
	action.Confirm:           "select",
	action.Cancel:            "back",
	action.NavigateUp:        "up",
	action.NavigateDown:      "down",
	action.NavigateLeft:      "left",
	action.NavigateRight:     "right",
	action.ToggleTranslation: "translate",
	action.OpenMenuVocab:     "vocab",
	action.OpenMenuSettings:  "settings",
}

// KeyMap binds keys to actions. It implements help.KeyMap.
type KeyMap struct {
	order    []action.Action
	bindings map[action.Action]key.Binding
}

var _ help.KeyMap = (*KeyMap)(nil)

// NewKeyMap builds a key map from the defaults, replacing the keys of every
// action present in overrides. An empty override list keeps the default.
func NewKeyMap(overrides map[action.Action][]string) *KeyMap {
	km := &KeyMap{
		order:    action.All(),
		bindings: make(map[action.Action]key.Binding),
	}
	for _, a := range km.order {
		keys := DefaultKeys[a]
		if o := overrides[a]; len(o) > 0 {
			keys = o
		}
		km.bindings[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKey(keys), helpText[a]),
		)
	}
	return km
}

// Action maps a key message to an action. Only fresh presses count: key
// releases and auto-repeat presses are ignored, so holding a key fires once.
func (km *KeyMap) Action(msg tea.KeyMsg) (action.Action, bool) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok || press.IsRepeat {
		return "", false
	}
	for _, a := range km.order {
		if key.Matches(press, km.bindings[a]) {
			return a, true
		}
	}
	return "", false
}

// Binding returns the binding for a.
func (km *KeyMap) Binding(a action.Action) key.Binding {
	return km.bindings[a]
}

// ShortHelp returns the bindings shown in the footer.
func (km *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.bindings[action.Confirm],
		km.bindings[action.Cancel],
		km.bindings[action.ToggleTranslation],
		km.bindings[action.OpenMenuVocab],
	}
}

// FullHelp returns every binding grouped by purpose.
func (km *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.bindings[action.NavigateUp], km.bindings[action.NavigateDown], km.bindings[action.NavigateLeft], km.bindings[action.NavigateRight]},
		{km.bindings[action.Confirm], km.bindings[action.Cancel]},
		{km.bindings[action.ToggleTranslation], km.bindings[action.OpenMenuVocab], km.bindings[action.OpenMenuSettings]},
	}
}

// helpKey renders the first key of a binding for hints.
func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch k := keys[0]; k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case "enter":
		return "Enter"
	case "esc":
		return "Esc"
	default:
		return strings.ToUpper(k[:1]) + k[1:]
	}
}
