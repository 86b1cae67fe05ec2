package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnconnor-sec/keymenu/internal/config"
	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/menu"
	"github.com/johnconnor-sec/keymenu/internal/source"
	"github.com/johnconnor-sec/keymenu/internal/terminal"
)

// options holds the flag values. Menu and log flags only override the
// configuration when they are set on the command line.
type options struct {
	configPaths []string

	pageSize    int
	keys        string
	next        string
	prev        string
	first       string
	last        string
	defaultVal  string
	clearStatus bool

	format  string
	ui      string
	instant bool

	logLevel  string
	logFile   string
	logFormat string
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keymenu [flags] [FILE]",
		Short: "Pick one item from a paged, key-driven menu",
		Long: `Keymenu shows items a page at a time, each labelled with a key.
Typing a key selects the item at that position on the current page and
prints its value. Items come from FILE, or standard input when FILE is
omitted or "-": one per line, or a YAML/JSON list of values or
{value, name, id} entries.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(cmd, args)
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().StringSliceVarP(&a.opts.configPaths, "config", "c", nil, "configuration files, merged in order (default: standard locations)")

	flags := cmd.Flags()
	flags.IntVarP(&a.opts.pageSize, "page-size", "n", 0, "items per page")
	flags.StringVar(&a.opts.keys, "keys", "", "keys that select items by position")
	flags.StringVar(&a.opts.next, "next", "", "next page key")
	flags.StringVar(&a.opts.prev, "prev", "", "previous page key")
	flags.StringVar(&a.opts.first, "first", "", `first page key ("" disables)`)
	flags.StringVar(&a.opts.last, "last", "", `last page key ("" disables)`)
	flags.StringVarP(&a.opts.defaultVal, "default", "d", "", "value printed when the command is empty")
	flags.BoolVar(&a.opts.clearStatus, "clear-status", false, "clear error messages after an accepted command")
	flags.StringVarP(&a.opts.format, "format", "f", "auto", "item format: auto, lines or yaml")
	flags.StringVar(&a.opts.ui, "ui", "", "surface: auto, line, term or screen")
	flags.BoolVarP(&a.opts.instant, "instant", "i", false, "act on a key without Enter (screen ui)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.opts.logFile, "log-file", "", "write logs to a rotating file")
	flags.StringVar(&a.opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd(a))
	return cmd
}

// loadConfig merges the configuration files and applies the flags that
// were set on cmd.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	paths := a.opts.configPaths
	if len(paths) == 0 {
		paths = config.DefaultPaths()
	} else {
		for _, path := range paths {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil, errors.ConfigNotFoundError(path)
			}
		}
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("page-size") {
		cfg.Menu.PageSize = a.opts.pageSize
	}
	if changed("keys") {
		cfg.Menu.Keys = a.opts.keys
	}
	if changed("next") {
		cfg.Menu.NextPageKey = a.opts.next
	}
	if changed("prev") {
		cfg.Menu.PreviousPageKey = a.opts.prev
	}
	if changed("first") {
		cfg.Menu.FirstPageKey = a.opts.first
	}
	if changed("last") {
		cfg.Menu.LastPageKey = a.opts.last
	}
	if changed("default") {
		cfg.Menu.Default = a.opts.defaultVal
	}
	if changed("clear-status") {
		cfg.Menu.StatusPolicy = menu.StatusSticky
		if a.opts.clearStatus {
			cfg.Menu.StatusPolicy = menu.StatusClearOnSuccess
		}
	}
	if changed("ui") {
		cfg.UI = config.UIMode(strings.ToLower(a.opts.ui))
	}
	if changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = a.opts.logFile
	}
	if changed("log-format") {
		cfg.Log.Format = a.opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, logCloser, err := cfg.Log.NewLogger(a.stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Debug("Configuration loaded", map[string]any{"sources": cfg.Sources, "ui": string(cfg.UI)})

	format, err := source.ParseFormat(a.opts.format)
	if err != nil {
		return err
	}
	path := source.Stdin
	if len(args) > 0 {
		path = args[0]
	}

	var items []menu.Item
	if path == source.Stdin {
		items, err = source.Read(a.stdin, path, format)
	} else {
		items, err = source.Load(path, format)
	}
	if err != nil {
		return err
	}
	logger.Debug("Items loaded", map[string]any{"count": len(items), "source": path})

	m, err := menu.New(items, cfg.MenuConfig())
	if err != nil {
		return err
	}
	m.SetLogger(logger)

	surface, closeSurface, err := a.openSurface(cfg.UI, path == source.Stdin)
	if err != nil {
		return err
	}
	value, err := m.Run(surface)
	if cerr := closeSurface(); cerr != nil {
		logger.WithError(cerr).Warn("Failed to restore terminal")
	}
	if err != nil {
		return err
	}

	if value != nil {
		fmt.Fprintln(a.stdout, value)
	}
	return nil
}

// openSurface picks where pages are shown and commands read. Pages never
// go to stdout, which carries only the selected value.
func (a *app) openSurface(mode config.UIMode, itemsFromStdin bool) (menu.Surface, func() error, error) {
	if mode == config.UIAuto {
		mode = config.UILine
		if a.interactive() {
			mode = config.UIScreen
		}
	}

	switch mode {
	case config.UIScreen:
		s, err := terminal.NewScreen()
		if err != nil {
			return nil, nil, err
		}
		s.Instant = a.opts.instant
		return s, s.Close, nil

	case config.UITerm:
		tty, closeTTY, err := a.commandTTY(itemsFromStdin)
		if err != nil {
			return nil, nil, err
		}
		s, err := terminal.NewTermSurface(tty, tty)
		if err != nil {
			_ = closeTTY()
			return nil, nil, err
		}
		return s, func() error {
			err := s.Close()
			if cerr := closeTTY(); err == nil {
				err = cerr
			}
			return err
		}, nil
	}

	if !itemsFromStdin {
		return menu.NewLineSurface(a.stdin, a.stderr), noClose, nil
	}
	tty, err := terminal.OpenTTY()
	if err != nil {
		return nil, nil, err
	}
	return menu.NewLineSurface(tty, a.stderr), tty.Close, nil
}

// commandTTY returns the terminal to read commands from: stdin when it
// is a terminal not used for items, otherwise the controlling terminal.
func (a *app) commandTTY(itemsFromStdin bool) (*os.File, func() error, error) {
	if f, ok := a.stdin.(*os.File); ok && !itemsFromStdin && terminal.IsTerminal(f) {
		return f, noClose, nil
	}
	tty, err := terminal.OpenTTY()
	if err != nil {
		return nil, nil, err
	}
	return tty, tty.Close, nil
}

func noClose() error { return nil }
