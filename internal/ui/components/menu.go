package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one button on a menu. Hotkey, when set, selects and runs
// the item in one press.
type MenuItem struct {
	Label    string
	Hotkey   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical button menu. Up and down wrap around and skip
// disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(0, 1, true)
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// step walks from start in dir and returns the first enabled index, or
// the current selection if none is enabled. inclusive tests start itself.
func (m Menu) step(start, dir int, inclusive bool) int {
	n := len(m.Items)
	if n == 0 {
		return -1
	}
	i := start
	if !inclusive {
		i = (start + dir + n) % n
	}
	for range n {
		if !m.Items[i].Disabled {
			return i
		}
		i = (i + dir + n) % n
	}
	return m.Selected
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, it := range m.Items {
		labels[i] = it.Label
	}
	return labels
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}

// Update handles arrows, vim keys, enter and item hotkeys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1, false)
		return m, nil
	case "down", "j", "tab":
		m.Selected = m.step(m.Selected, 1, false)
		return m, nil
	case "enter", "space":
		return m, m.run(m.Selected)
	}

	for i, it := range m.Items {
		if it.Hotkey != "" && !it.Disabled && strings.EqualFold(it.Hotkey, key) {
			m.Selected = i
			return m, m.run(i)
		}
	}
	return m, nil
}

// View renders the items as fixed-width buttons centred in width.
func (m Menu) View(buttonWidth, width int) string {
	return MenuButtons(m.Labels(), m.Selected, buttonWidth, width)
}
