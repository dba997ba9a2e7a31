package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, loads content and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	pack, err := e.loadPack()
	if err != nil {
		return err
	}
	for _, l := range pack.DanglingLinks() {
		e.log.WithField("node", l.NodeID).WithField("leads_to", l.LeadsTo).Warn("choice leads to a missing node")
	}

	return app.Run(app.Options{
		Config: e.cfg,
		Pack:   pack,
		Store:  e.store,
		Logger: e.log,
	})
}
