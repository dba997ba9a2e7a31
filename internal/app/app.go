package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/input"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/home"
	"github.com/abhisek/kotoba/internal/screens/welcome"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	eng    *engine.Engine
	sched  *tickScheduler
	saver  *Saver
	log    *logrus.Entry
	width  int
	height int
}

// Options are the resources Run plays with. The caller owns Store.
type Options struct {
	Config *config.Config
	Pack   *content.Pack
	Store  *store.Store
	Logger *logrus.Logger
}

// newAppModel creates a new AppModel that opens on the welcome splash.
func newAppModel(eng *engine.Engine, sched *tickScheduler, saver *Saver, keys *input.KeyMap, start string, logger *logrus.Logger) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(home.Options{
			Engine: eng,
			Keys:   keys,
			Start:  start,
			Logger: logger,
			Events: saver.events,
		})
	}
	splash := welcome.New(homeFactory, welcome.Greeting(eng.Tracker().Count()))
	return AppModel{
		router: router.New(splash),
		eng:    eng,
		sched:  sched,
		saver:  saver,
		log:    logger.WithField("component", "app"),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerFiredMsg:
		// Run the callback, then let the active screen see the new state.
		msg.fn()

	case saveDueMsg:
		_ = m.saver.handleDue(context.Background(), msg)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			_ = m.saver.Flush(context.Background())
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.sched.Drain(), m.saver.Schedule())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	w := m.eng.Ledger().Wallet()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Energy:    w.Energy,
		MaxEnergy: w.MaxEnergy,
		Currency:  w.Currency,
	}, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and saves once more on exit.
func Run(opts Options) error {
	ctx := context.Background()
	cfg := opts.Config
	logger := opts.Logger

	var snapData *store.SnapshotData
	snap, err := opts.Store.SnapshotRepo().Latest(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		snapData = &snap.Data
	}

	sched := &tickScheduler{}
	eng := engine.New(engine.Deps{
		Words:     opts.Pack.WordCatalog(),
		Nodes:     opts.Pack.NodeCatalog(),
		Scheduler: sched,
		Timing:    cfg.Timing(),
		Economy:   cfg.EconomyConfig(),
		Snapshot:  snapData,
		Logger:    logger,
	})
	defer eng.Close()

	saver := NewSaver(eng, opts.Store.SnapshotRepo(), opts.Store.EventRepo(),
		cfg.Save.Debounce, cfg.Save.KeepSnapshots, logger)
	defer saver.Close()

	keys := input.NewKeyMap(cfg.KeyBindings())

	logger.WithFields(logrus.Fields{
		"pack":    opts.Pack.Title,
		"source":  opts.Pack.Source,
		"session": saver.SessionID(),
		"restore": snapData != nil,
	}).Info("starting")

	p := tea.NewProgram(newAppModel(eng, sched, saver, keys, opts.Pack.Start, logger))
	_, runErr := p.Run()
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", runErr)
	}

	if err := saver.Flush(ctx); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return runErr
}
