package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/sokolawesome/forgebar/bar"
	"github.com/sokolawesome/forgebar/config"
	"github.com/sokolawesome/forgebar/gtkui"
	"github.com/sokolawesome/forgebar/hypr"
)

const appID = "com.github.sokolawesome.forgebar"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, cfgErr := config.Resolve(os.Environ())

	level := new(slog.LevelVar)
	level.Set(cfg.Level())
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if cfgErr != nil {
		log.Log(context.Background(), cfg.ErrLevel(), "config", "path", cfg.Path(), "requested", cfg.Env.ConfigPath, "err", cfgErr)
	}
	if keys := cfg.Undecoded(); len(keys) > 0 {
		log.Warn("config has unknown keys", "path", cfg.Path(), "keys", keys)
	}

	client := hypr.NewClient(cfg.Env.RuntimeDir, cfg.Env.Signature, cfg.RequestTimeout, log.With("component", "hypr"))

	if cfg.Path() != "" {
		w, err := config.Watch(cfg, log.With("component", "config"), func(next *config.Config) {
			level.Set(next.Level())
			client.SetTimeout(next.RequestTimeout)
		})
		if err != nil {
			log.Warn("config hot reload disabled", "err", err)
		} else {
			defer w.Stop()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := gtk.NewApplication(appID, gio.ApplicationFlagsNone)
	exitCode := 0
	activated := false
	app.ConnectActivate(func() {
		if activated {
			log.Debug("already running, ignoring activation")
			return
		}
		activated = true
		// Keep running with zero bars until quit.
		app.Hold()

		tk := gtkui.New(app, log.With("component", "gtk"))
		if _, err := bar.Activate(ctx, tk, client, bar.OptionsFrom(cfg), log); err != nil {
			log.Error("failed to start bar", "err", err)
			exitCode = 1
			app.Quit()
		}
	})

	go func() {
		<-ctx.Done()
		coreglib.IdleAdd(app.Quit)
	}()

	if code := app.Run(os.Args); code != 0 {
		return code
	}
	return exitCode
}
