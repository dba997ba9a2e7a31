package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/home"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// Lanterns flicker beside the mascot.
var flickerFrames = []string{"✧", "✦"}

type tickMsg time.Time

// WelcomeScreen shows the lantern and banner, then replaces itself with the
// screen built by homeFactory on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	greeting     string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. greeting is shown under the banner.
func New(homeFactory func() screen.Screen, greeting string) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		greeting:    greeting,
	}
}

// Greeting picks the line for a new or returning player.
func Greeting(wordsSeen int) string {
	switch {
	case wordsSeen == 0:
		return "The village is waiting to talk to you."
	case wordsSeen == 1:
		return "Welcome back! 1 word on your list."
	default:
		return fmt.Sprintf("Welcome back! %d words on your list.", wordsSeen)
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := home.RenderMascot(home.MascotIdle)
	if w.elapsed >= phase1End {
		flicker := flickerFrames[w.tickCount%len(flickerFrames)]
		left := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(flicker)
		right := lipgloss.NewStyle().Foreground(theme.Accent).Render(flicker)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = left + "  " + lines[1] + "  " + right
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(w.greeting))
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
