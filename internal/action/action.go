package action

import "fmt"

// Action is a semantic input event. The set is closed: device adapters map
// raw key and button edges onto one of these values.
type Action string

const (
	Confirm           Action = "confirm"
	Cancel            Action = "cancel"
	NavigateUp        Action = "navigate-up"
	NavigateDown      Action = "navigate-down"
	NavigateLeft      Action = "navigate-left"
	NavigateRight     Action = "navigate-right"
	ToggleTranslation Action = "toggle-translation"
	OpenMenuVocab     Action = "open-menu-vocab"
	OpenMenuSettings  Action = "open-menu-settings"
)

// All returns every action in a stable order.
func All() []Action {
	return []Action{
		Confirm, Cancel,
		NavigateUp, NavigateDown, NavigateLeft, NavigateRight,
		ToggleTranslation, OpenMenuVocab, OpenMenuSettings,
	}
}

// Parse resolves an action by name.
func Parse(name string) (Action, error) {
	for _, a := range All() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", name)
}

// IsNavigation reports whether a is one of the four directional actions.
func (a Action) IsNavigation() bool {
	switch a {
	case NavigateUp, NavigateDown, NavigateLeft, NavigateRight:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}
