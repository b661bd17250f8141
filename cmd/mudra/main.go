// Command mudra runs the hand gesture control pipeline: camera capture,
// hand landmark detection, gesture classification, and volume/media control.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

var (
	configPath string
	logLevel   string
	cameraID   int
	headless   bool
	simulated  bool

	rootCmd = &cobra.Command{
		Use:   "mudra",
		Short: "Control system volume and media playback with hand gestures.",
		Long: `Mudra watches the camera for hand gestures and maps them onto system
controls: a thumb-index pinch with the other fingers up sets the volume,
the OK sign toggles playback, a peace sign skips tracks, a fist mutes,
a splayed hand unmutes and a thumb down goes back one track.

Hand landmarks come from a MediaPipe helper process; when it is not
installed the pipeline falls back to a mock detector so the HTTP API
and tray still work.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return run(ctx)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default ~/.mudra/"+config.DefaultFilename+")")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn or error")
	rootCmd.Flags().IntVar(&cameraID, "camera", -1, "camera device ID, overrides the configured one")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without the system tray")
	rootCmd.Flags().BoolVar(&simulated, "sim", false, "use simulated actuators instead of real system controls")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	lvl, ok := logger.ParseLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	logger.SetLevel(lvl)

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath = filepath.Join(dataDir, config.DefaultFilename)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cameraID >= 0 {
		cfg.Camera.DeviceID = cameraID
	}

	st, err := store.New(filepath.Join(cfg.DataDir, "mudra.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	volume, brightness, callbacks := buildActuators()
	restoreVolume(st, volume)

	handler := control.NewHandler(cfg, volume, brightness, callbacks)

	application := app.New(app.Config{
		Cfg:     cfg,
		Store:   st,
		Handler: handler,
	})

	var (
		cfgMu     sync.RWMutex
		activeCfg = cfg
	)

	var srv *server.Server
	if cfg.Server.Addr != "" {
		srv = server.New(server.Config{
			Store: st,
			State: func() server.State {
				result, updated := application.LastResult()
				return server.State{
					Enabled: application.IsEnabled(),
					Result:  result,
					Updated: updated,
				}
			},
			GetConfig: func() config.Config {
				cfgMu.RLock()
				defer cfgMu.RUnlock()
				return activeCfg
			},
			ApplyConfig: func(updated config.Config) error {
				if err := config.Save(configPath, updated); err != nil {
					return err
				}
				cfgMu.Lock()
				activeCfg = updated
				cfgMu.Unlock()
				logger.L().Infow("configuration saved, thresholds apply on restart", "path", configPath)
				return nil
			},
			Camera: application.Camera(),
		})
		defer srv.Close()

		go func() {
			logger.L().Infow("control API listening", "addr", cfg.Server.Addr)
			if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
				logger.L().Errorw("control API stopped", "error", err)
			}
		}()
	}

	if err := application.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer application.Stop()

	if headless {
		<-ctx.Done()
		return nil
	}

	return runTray(ctx, application, handler)
}

// runTray blocks in the systray loop until quit is chosen or the context
// is cancelled.
func runTray(ctx context.Context, application *app.App, handler *control.Handler) error {
	t := tray.New()
	t.OnToggle(application.SetEnabled)

	application.OnResult(func(r control.Result) {
		t.SetLastGesture(string(r.Label))
		if r.Committed {
			t.SetVolume(handler.Volume())
		}
	})

	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
	return nil
}

// buildActuators picks real system controls or simulators per the --sim
// flag, degrading to simulators when the platform has no real backend.
func buildActuators() (actuator.Actuator, actuator.Actuator, control.Callbacks) {
	if simulated {
		volume := actuator.NewSimulator("volume", 50)
		brightness := actuator.NewSimulator("brightness", 50)
		return volume, brightness, control.Callbacks{
			PlayPause: logAction("play-pause"),
			NextTrack: logAction("next-track"),
			PrevTrack: logAction("previous-track"),
			Mute:      volume.Mute,
			Unmute:    volume.Unmute,
		}
	}

	var volume actuator.Actuator
	var muter actuator.Muter
	if sys, err := actuator.NewSystemVolume(); err == nil {
		volume = sys
		muter = sys
	} else {
		logger.L().Warnw("system volume unavailable, using simulator", "error", err)
		sim := actuator.NewSimulator("volume", 50)
		volume = sim
		muter = sim
	}

	var brightness actuator.Actuator
	if sys, err := actuator.NewSystemBrightness(); err == nil {
		brightness = sys
	} else {
		logger.L().Warnw("system brightness unavailable, open palm drives nothing", "error", err)
	}

	callbacks := control.Callbacks{
		Mute:   muter.Mute,
		Unmute: muter.Unmute,
	}
	if media, err := actuator.NewMediaKeys(); err == nil {
		callbacks.PlayPause = media.PlayPause
		callbacks.NextTrack = media.NextTrack
		callbacks.PrevTrack = media.PrevTrack
	} else {
		logger.L().Warnw("media keys unavailable, playback gestures disabled", "error", err)
	}

	return volume, brightness, callbacks
}

// logAction returns a callback that only logs, for --sim runs where no
// real media player should be touched.
func logAction(name string) func() error {
	return func() error {
		logger.L().Infow("simulated action", "action", name)
		return nil
	}
}

// restoreVolume seeds the volume actuator with the level persisted by the
// previous session.
func restoreVolume(st *store.Store, volume actuator.Actuator) {
	value, err := st.Settings().Get("volume")
	if err != nil {
		return
	}

	level, err := strconv.Atoi(value)
	if err != nil {
		return
	}

	if err := volume.SetLevel(level); err != nil {
		logger.L().Warnw("failed to restore volume level", "level", level, "error", err)
		return
	}
	logger.L().Infow("restored volume level", "level", level)
}

func resolveDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	return dataDir, nil
}
