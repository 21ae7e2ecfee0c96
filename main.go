// Comicview is a comic and manga reader.
//
// It shows a deck of page images as single pages or two-page spreads,
// chosen from the window's aspect ratio, in right-to-left or left-to-right
// reading order. Pages come from image files, directories and zip, rar or
// 7z archives.
//
// Usage:
//
//	comicview [flags] <file|dir|archive>...
//	comicview config init
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"comicview/internal/viewer"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command line overrides for the config file
var (
	flagDirection  string
	flagRatio      float64
	flagPage       int
	flagExpansion  bool
	flagIndicator  bool
	flagSort       string
	flagFullscreen bool
	flagDebug      bool
	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "comicview [flags] <file|dir|archive>...",
	Short: "Comic and manga reader",
	Long: `A comic and manga reader with spread layout.

Pages are shown one at a time in a portrait window and as two-page spreads
in a landscape window. Right-to-left is the default reading order.`,
	Example: `  # Read a manga volume
  comicview volume01.cbz

  # Western comic, starting in the expanded layout
  comicview --direction ltr --expansion issue.cbr`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := saveConfigToPath(defaultConfig(), path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&flagDirection, "direction", "", "Reading direction (rtl, ltr)")
	rootCmd.Flags().Float64Var(&flagRatio, "ratio", 0, "Switch to single pages when height > width*ratio")
	rootCmd.Flags().IntVar(&flagPage, "page", 0, "Initial page (sequence index)")
	rootCmd.Flags().BoolVar(&flagExpansion, "expansion", false, "Start in the expanded layout")
	rootCmd.Flags().BoolVar(&flagIndicator, "indicator", false, "Show the page indicator")
	rootCmd.Flags().StringVar(&flagSort, "sort", "", "Sort method (natural, simple, entry)")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in full screen")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default ~/.comicview.json)")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return getConfigPath()
}

// applyFlags overrides config values with the flags the user set
func applyFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	if flags.Changed("direction") {
		dir, err := viewer.ParseDirection(flagDirection)
		if err != nil {
			return err
		}
		config.Direction = dir.String()
	}
	if flags.Changed("ratio") {
		if flagRatio <= 0 {
			return fmt.Errorf("--ratio must be positive, got %v", flagRatio)
		}
		config.SwitchingRatio = flagRatio
	}
	if flags.Changed("page") {
		config.InitialPage = flagPage
	}
	if flags.Changed("expansion") {
		config.InitialExpansion = flagExpansion
	}
	if flags.Changed("indicator") {
		config.ShowPageIndicator = flagIndicator
	}
	if flags.Changed("sort") {
		method, err := parseSortMethod(flagSort)
		if err != nil {
			return err
		}
		config.SortMethod = method
	}
	if flags.Changed("fullscreen") {
		config.Fullscreen = flagFullscreen
	}
	return nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	if flagDebug {
		debugEnabled = true
	}

	status := loadConfigFromPath(configPath())
	if err := applyFlags(cmd, &status.Config); err != nil {
		return err
	}
	config := status.Config

	sources, err := collectPages(args, config.SortMethod)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return errors.New("no image files specified")
	}
	debugLog("collected %d pages (%s order)", len(sources), getSortMethodName(config.SortMethod))

	g := NewGame(sources, status)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
