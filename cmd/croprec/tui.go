package main

import (
	"context"

	"croprec/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the recommendation form in the terminal",
	Long: `Run the recommendation form as a terminal user interface.
Log output goes only to the configured log file so it does not
draw over the screen.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(nil)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.watchConfig(ctx)

	p := tea.NewProgram(tui.NewModel(a.service), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
