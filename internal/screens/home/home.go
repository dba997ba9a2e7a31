package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/input"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	dialoguescreen "github.com/abhisek/kotoba/internal/screens/dialogue"
	"github.com/abhisek/kotoba/internal/screens/history"
	vocabscreen "github.com/abhisek/kotoba/internal/screens/vocab"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
	"github.com/abhisek/kotoba/internal/vocab"
)

const titleFull = `██╗  ██╗ ██████╗ ████████╗ ██████╗ ██████╗  █████╗
██║ ██╔╝██╔═══██╗╚══██╔══╝██╔═══██╗██╔══██╗██╔══██╗
█████╔╝ ██║   ██║   ██║   ██║   ██║██████╔╝███████║
██╔═██╗ ██║   ██║   ██║   ██║   ██║██╔══██╗██╔══██║
██║  ██╗╚██████╔╝   ██║   ╚██████╔╝██████╔╝██║  ██║
╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚═════╝ ╚═╝  ╚═╝`

const titleCompact = "K · O · T · O · B · A"

const buttonWidth = 22

// Options wires the home screen to the running game.
type Options struct {
	Engine *engine.Engine
	Keys   *input.KeyMap
	Start  string // first node of a play-through
	Logger *logrus.Logger

	// Events backs the quiz journal. The JOURNAL entry is hidden when nil.
	Events store.EventRepo
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts         Options
	menu         components.Menu
	confirmReset bool
	questsSeen   int
	mascot       MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{
		opts:       opts,
		questsSeen: opts.Engine.Ledger().Quests().Len(),
	}

	items := []components.MenuItem{
		{Label: "PLAY", Hotkey: "p", Action: h.play},
		{Label: "VOCABULARY", Hotkey: "v", Action: func() tea.Cmd {
			return push(vocabscreen.New(opts.Engine))
		}},
	}
	if opts.Events != nil {
		items = append(items, components.MenuItem{Label: "JOURNAL", Hotkey: "h", Action: func() tea.Cmd {
			return push(history.New(opts.Events))
		}})
	}
	items = append(items,
		components.MenuItem{Label: "NEW GAME", Hotkey: "n", Action: func() tea.Cmd {
			h.confirmReset = true
			return nil
		}},
		components.MenuItem{Label: "QUIT", Hotkey: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	h.mascot = pickMascot(opts.Engine.Ledger().Wallet().EnergyRatio(), false)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Resume refreshes the mascot when returning from a dialogue or list.
func (h *HomeScreen) Resume() tea.Cmd {
	quests := h.opts.Engine.Ledger().Quests().Len()
	h.mascot = pickMascot(h.opts.Engine.Ledger().Wallet().EnergyRatio(), quests > h.questsSeen)
	h.questsSeen = quests
	return nil
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase progress"},
			{Key: "N", Description: "Keep it"},
		}
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.confirmReset {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			switch kmsg.String() {
			case "y", "Y":
				h.confirmReset = false
				h.opts.Engine.ResetForNewGame()
				h.questsSeen = 0
				return h, h.play()
			case "n", "N", "esc":
				h.confirmReset = false
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) play() tea.Cmd {
	return push(dialoguescreen.New(h.opts.Engine, h.opts.Keys, h.opts.Start, h.opts.Logger))
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := components.PanelWidth(width, 60)

	title := titleFull
	if compact {
		title = titleCompact
	}

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title)),
	}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(h.mascot)))
	}
	sections = append(sections, h.renderStats(cw))

	if h.confirmReset {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Error).Bold(true).
			Render("Start over? All words and coins will be lost. (y/n)"))
	} else {
		sections = append(sections, h.menu.View(buttonWidth, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

// renderStats shows known words and the wallet in a double-bordered bar.
func (h *HomeScreen) renderStats(cw int) string {
	eng := h.opts.Engine
	counts := eng.Tracker().CountByMastery()
	w := eng.Ledger().Wallet()

	known := lipgloss.NewStyle().Foreground(theme.MasteryKnown).Bold(true).
		Render(fmt.Sprintf("%s %d/%d KNOWN", vocab.MasteryKnown.Icon(), counts[vocab.MasteryKnown], eng.Words().Len()))
	energy := lipgloss.NewStyle().Foreground(theme.Energy).Bold(true).
		Render(fmt.Sprintf("⚡ %d", w.Energy))
	coins := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("¤ %d", w.Currency))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(known + "  " + energy + "  " + coins)
}
