// clickd watches input devices for configured mouse-button presses and plays
// a click sound, with a tray icon toggling the sound at runtime.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SludgePhD/clickd/internal/adapters/linuxinput"
	"github.com/SludgePhD/clickd/internal/config"
	"github.com/SludgePhD/clickd/internal/core/clicksound"
	"github.com/SludgePhD/clickd/internal/sound"
	"github.com/SludgePhD/clickd/internal/tray"
)

const captureTimeout = 10 * time.Second

type options struct {
	configPath  string
	listDevices bool
	capture     bool
	logLevel    slog.Level
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func newSlogLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseOptions(args []string) (options, error) {
	var opts options
	flags := flag.NewFlagSet("clickd", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	var logLevelRaw string
	flags.BoolVar(&opts.listDevices, "list-devices", false, "Print available input devices and exit.")
	flags.BoolVar(&opts.capture, "capture", false, "Wait for the next key/button press, print its name, and exit.")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	switch flags.NArg() {
	case 0:
	case 1:
		opts.configPath = flags.Arg(0)
	default:
		return opts, fmt.Errorf("usage: clickd [flags] [<config.toml>]")
	}

	level, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return opts, err
	}
	opts.logLevel = level
	return opts, nil
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func permissionDeniedHint() string {
	return "Permission denied opening input devices. Add your user to the input group or grant read access to /dev/input/event* via a udev rule."
}

func listInputDevices() error {
	devices, err := linuxinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		virtualTag := "physical"
		if dev.IsVirtual {
			virtualTag = "virtual"
		}
		pointerTag := "non-pointer"
		if dev.IsPointer {
			pointerTag = "pointer"
		}
		fmt.Printf("%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, pointerTag)
	}
	return nil
}

func run(args []string, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.listDevices {
		if err := listInputDevices(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if opts.capture {
		fmt.Println("Press a key or button...")
		code, err := linuxinput.CaptureNextButton(captureTimeout)
		if err != nil {
			if isPermissionError(err) {
				fmt.Fprintln(stderr, permissionDeniedHint())
				return 1
			}
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Println(linuxinput.FormatCodeName(code))
		return 0
	}

	cfg, err := config.Discover(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newSlogLogger(opts.logLevel)

	triggers, err := linuxinput.ParseButtons(cfg.Buttons)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	player := sound.NewPlayer(logger)
	defer player.Close()
	if cfg.Sound != "" {
		logger.Info("Using configured sound", "path", cfg.Sound, "volume", cfg.Volume)
	}
	player.Preload(cfg.Sound, cfg.Volume)

	service, err := clicksound.NewService(clicksound.Config{
		Triggers:     triggers,
		Sound:        cfg.Sound,
		Volume:       cfg.Volume,
		StartEnabled: true,
	}, player, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	selection, err := linuxinput.OpenSourceSelection(triggers, cfg.Devices)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	if len(selection.Devices) == 0 {
		logger.Warn("No compatible input devices found; running idle")
	}
	for _, dev := range selection.Devices {
		name, _ := dev.Name()
		logger.Info("Using source device", "path", dev.Path(), "name", name)
	}
	for code := range triggers {
		logger.Info("Trigger", "name", linuxinput.FormatCodeName(code), "code", code)
	}

	runtime, err := linuxinput.NewRuntime(selection, service, logger)
	if err != nil {
		selection.Close()
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := runtime.Start(); err != nil {
		runtime.Stop()
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer runtime.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cfg.Tray {
		<-ctx.Done()
		return 0
	}

	go func() {
		<-ctx.Done()
		tray.Stop()
	}()
	if err := tray.Run(tray.Options{Controller: service, OnQuit: cancel}); err != nil {
		logger.Warn("Tray unavailable; continuing without it", "err", err)
		<-ctx.Done()
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
