//go:build !gui

package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/blink/internal/config"
	"github.com/mkarlsen/blink/internal/source"
	"github.com/mkarlsen/blink/internal/store"
	"github.com/mkarlsen/blink/internal/tabs"
)

var (
	flagWPM     int
	flagStorage string
	flagDebug   bool
	flagFresh   bool
)

var rootCmd = &cobra.Command{
	Use:   "blink [file]",
	Short: "Tabbed RSVP speed reader for the terminal",
	Long: `Blink flashes one word at a time at a fixed focal point, so your eyes
stop scanning and your reading speed goes up. Open several texts in
tabs, tune the pace per tab, and pick up where you left off.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReader(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runReader(args []string) error {
	eng, err := startEngine(engineOptions{
		Storage: flagStorage,
		WPM:     flagWPM,
		Debug:   flagDebug,
		Fresh:   flagFresh,
	})
	if err != nil {
		return err
	}
	defer eng.shutdown()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if text, ok := readStdin(); ok {
		eng.mgr.Create(tabs.Request{Name: "stdin", Text: text, Activate: true})
		// Keys have to come from the terminal when stdin is a pipe.
		opts = append(opts, tea.WithInputTTY())
	}
	if len(args) > 0 {
		if err := eng.openPath(args[0]); err != nil {
			return err
		}
	}

	_, err = tea.NewProgram(newApp(eng), opts...).Run()
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blink %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range source.Registered() {
			fmt.Printf("%-10s %s\n", f.Name(), strings.Join(f.Extensions(), ", "))
		}
	},
}

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List saved tabs without opening the reader",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTabs(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runTabs() error {
	cfg := config.Load()
	backend := cfg.Storage.Backend
	if flagStorage != "" {
		backend = flagStorage
	}
	st, err := store.Open(backend)
	if err != nil {
		return err
	}
	records, err := st.LoadTabs()
	if err != nil {
		return fmt.Errorf("load saved tabs: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No saved tabs")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Name", "Words", "Position", "WPM", "Font", "Source"})
	for _, rec := range records {
		active := ""
		if rec.Active {
			active = "●"
		}
		words, position := "-", "-"
		if rec.CacheID != "" {
			if cached, err := st.ReadWordCache(rec.CacheID); err == nil {
				words = fmt.Sprintf("%d", len(cached))
				position = fmt.Sprintf("%d", rec.CursorIndex+1)
			}
		}
		t.AppendRow(table.Row{
			active,
			rec.Name,
			words,
			position,
			rec.WPM,
			fmt.Sprintf("%s %.0f", rec.FontName, rec.FontSize),
			rec.FilePath,
		})
	}
	t.Render()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", `storage backend: "fs" or "memory" (default from settings)`)
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging")
	rootCmd.Flags().IntVarP(&flagWPM, "wpm", "w", 0, "default words per minute (overrides settings)")
	rootCmd.Flags().BoolVar(&flagFresh, "fresh", false, "start with a fresh tab set, discarding saved tabs")
	rootCmd.AddCommand(versionCmd, formatsCmd, tabsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
