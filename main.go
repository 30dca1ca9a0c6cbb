//go:build windows

// EREZChrome - custom window chrome for Win32 top-level windows
//
// Replaces the native caption and frame with a self-drawn one: resize
// borders, rounded silhouette, caption buttons and a drop shadow.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/config"
	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
	"github.com/NaveLIL/erez-chrome/ui"
)

func init() {
	// Window messages are delivered to the thread that created the window.
	runtime.LockOSThread()
}

// Application holds all application components.
type Application struct {
	config    *config.Config
	configMgr *config.Manager
	log       *logger.Logger

	window  *ui.Window
	chrome  *chrome.ChromeManager
	shadows *shadowSwitch

	shutdownOnce sync.Once
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", appName, appVersion)
		os.Exit(0)
	}

	app := &Application{}
	if err := app.init(*configPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	app.run()
}

// init loads configuration, sets up logging and creates the chromed window.
func (app *Application) init(configPath string, debug bool) error {
	var err error

	app.log = logger.Get()
	app.configMgr = config.GetManager()

	if configPath == "" {
		configPath, err = config.GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := app.configMgr.Load(configPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.config = app.configMgr.Get()

	if debug {
		app.config.Logging.Level = "debug"
	}

	if err := app.log.Init(&app.config.Logging, filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Infof("Starting %s v%s", appName, appVersion)
	app.log.Infof("Config loaded from: %s", configPath)

	if errs := app.config.Validate(); len(errs) > 0 {
		for _, err := range errs {
			app.log.Warnf("Config validation warning: %v", err)
		}
	}

	chromeOpts, err := chromeOptions(app.config)
	if err != nil {
		app.log.Warnf("Invalid chrome settings, using defaults: %v", err)
		chromeOpts = chrome.DefaultOptions()
	}

	app.window, err = ui.NewWindow(ui.WindowOptions{
		Title:         appName,
		Bounds:        models.RectXYWH(200, 200, 960, 640),
		QuitOnDestroy: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	app.chrome, err = chrome.NewChromeManager(app.window, chromeOpts)
	if err != nil {
		return fmt.Errorf("failed to create chrome: %w", err)
	}
	app.window.AddDispatcher(app.chrome)
	if err := app.window.AddLifecycle(app.chrome); err != nil {
		return fmt.Errorf("failed to attach chrome: %w", err)
	}
	app.shadows = newShadowSwitch(app.window, ui.NewShadowFactory(app.window))

	return nil
}

// run shows the window and pumps messages until it is closed.
func (app *Application) run() {
	app.configMgr.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			app.log.Warnf("Config reload failed: %v", err)
			return
		}
		app.window.Post(func() { app.reload(cfg) })
	})

	app.window.Show()
	if err := app.shadows.apply(app.config); err != nil {
		app.log.Errorf("Drop shadow disabled: %v", err)
	}
	ui.Run()

	app.shutdown()
}

// reload re-applies a changed configuration on the UI thread.
func (app *Application) reload(cfg *config.Config) {
	app.config = cfg
	for _, err := range cfg.Validate() {
		app.log.Warnf("Config validation warning: %v", err)
	}

	opts, err := chromeOptions(cfg)
	if err != nil {
		app.log.Warnf("Ignoring chrome settings: %v", err)
	} else if err := app.chrome.Apply(opts); err != nil {
		app.log.Warnf("Failed to apply chrome settings: %v", err)
	}

	if err := app.shadows.apply(cfg); err != nil {
		app.log.Warnf("Failed to apply shadow settings: %v", err)
	}
	app.log.Info("Configuration reloaded")
}

// shutdown releases everything once.
func (app *Application) shutdown() {
	app.shutdownOnce.Do(func() {
		app.log.Info("Shutting down...")
		app.shadows.disable()
		app.chrome.Close()
		app.log.Info("Goodbye!")
		app.log.Close()
	})
}
