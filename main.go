package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fruitcat/app"
	"fruitcat/config"
	"fruitcat/log"
	"fruitcat/model"
	"fruitcat/store"
	"fruitcat/tui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		dataFile string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:     "fruitcat",
		Short:   "Browse and edit a fruit catalogue in the terminal",
		Long:    "Fruitcat is a terminal UI for browsing, filtering, and editing\na catalogue of fruit dimension records stored as JSON.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}

			if err := log.SetFile(cfg.LogFile); err != nil {
				fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
			}
			log.SetDebug(debug)

			fruits, err := store.Load(cfg.DataFile)
			if err != nil {
				log.Warn("load catalogue from %s: %v, starting with defaults", cfg.DataFile, err)
				fruits = model.DefaultCatalogue()
			}

			svc := app.NewService(fruits)
			m := tui.NewModel(svc, cfg.DataFile, cfg)

			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fruitcat/config.yaml)")
	cmd.Flags().StringVar(&dataFile, "data", "", "catalogue JSON file (overrides the configured path)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}
