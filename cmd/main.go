// DeskAgent - desktop remote control agent
// Serves mouse, keyboard and screen capture commands to a UI shell.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/PurpleSec/logx"

	"deskagent/internal/api"
	"deskagent/internal/autostart"
	"deskagent/internal/command"
	"deskagent/internal/config"
	"deskagent/internal/identity"
	"deskagent/internal/input"
	"deskagent/internal/logging"
	"deskagent/internal/network"
	"deskagent/internal/osutils"
	"deskagent/internal/screen"
	"deskagent/internal/tray"
)

var (
	version    = "0.1.0"
	showVer    = flag.Bool("version", false, "Show version")
	configPath = flag.String("config", "", "Path to the config file")
	port       = flag.Int("port", 0, "Override the bridge port")
	noTray     = flag.Bool("no-tray", false, "Run without the system tray icon")
	listDisp   = flag.Bool("list", false, "List connected displays")
	captureTo  = flag.String("capture", "", "Capture the primary display to a JPEG file and exit")
	setAuto    = flag.String("autostart", "", "Enable (on) or disable (off) start on login and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("deskagent version %s\n", version)
		return
	}

	cfgMgr, err := newConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	loadErr := cfgMgr.Load()
	if *port > 0 {
		cfgMgr.Update(func(c *config.Config) { c.API.Port = *port })
	}
	cfg := cfgMgr.Get()

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if loadErr != nil {
		log.Warning("Config: Failed to load %s, using defaults: %s", cfgMgr.Path(), loadErr)
	}

	switch {
	case len(*setAuto) > 0:
		os.Exit(handleAutostart(cfgMgr, *setAuto, log))
	case *listDisp:
		os.Exit(listDisplays(log))
	case len(*captureTo) > 0:
		os.Exit(captureOnce(cfg, *captureTo, log))
	}

	runService(cfgMgr, log)
}

func newConfig() (*config.Manager, error) {
	if len(*configPath) > 0 {
		return config.NewManagerAt(*configPath), nil
	}
	return config.NewManager()
}

func newSurface(cfg config.Config) *command.Surface {
	return command.New(input.Open, screen.NewSystem(), command.Options{
		MaxWidth:    cfg.Capture.MaxWidth,
		MaxHeight:   cfg.Capture.MaxHeight,
		Quality:     cfg.Capture.JPEGQuality,
		StrictKeys:  cfg.Input.StrictKeys,
		ReuseHandle: cfg.Input.ReuseHandle,
	})
}

func handleAutostart(cfgMgr *config.Manager, v string, log logx.Log) int {
	var on bool
	switch v {
	case "on":
		on = true
	case "off":
	default:
		log.Error("Autostart: Expected 'on' or 'off', got %q", v)
		return 2
	}
	if err := autostart.Set(on); err != nil {
		log.Error("Autostart: %s", err)
		return 1
	}
	cfgMgr.Update(func(c *config.Config) { c.General.StartOnBoot = on })
	if err := cfgMgr.Save(); err != nil {
		log.Warning("Config: Failed to save %s: %s", cfgMgr.Path(), err)
	}
	fmt.Printf("Start on login: %v\n", autostart.IsEnabled())
	return 0
}

func listDisplays(log logx.Log) int {
	d, err := screen.NewSystem().Displays()
	if err != nil {
		log.Error("Screen: Failed to list displays: %s", err)
		return 1
	}
	fmt.Println("Connected Displays:")
	fmt.Println("-------------------")
	for i := range d {
		o := d[i].Origin()
		fmt.Printf("Display %d\n", i)
		fmt.Printf("  Origin: %d,%d\n", o.X, o.Y)
		if _, err := d[i].Capture(); err != nil {
			fmt.Printf("  Capture: failed (%s)\n", err)
		} else {
			fmt.Printf("  Scale: %.2f\n", d[i].ScaleFactor())
		}
		fmt.Println()
	}
	return 0
}

func captureOnce(cfg config.Config, path string, log logx.Log) int {
	s := newSurface(cfg)
	defer s.Close()

	r, err := s.CaptureScreen()
	if err != nil {
		log.Error("Screen: %s", err)
		return 1
	}
	b, err := base64.StdEncoding.DecodeString(r.Image)
	if err != nil {
		log.Error("Screen: Failed to decode frame: %s", err)
		return 1
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		log.Error("Screen: Failed to write %s: %s", path, err)
		return 1
	}
	log.Info("Screen: Wrote %dx%d frame (from %dx%d, scale %.2f) to %s",
		r.ScaledWidth, r.ScaledHeight, r.OriginalWidth, r.OriginalHeight, r.ScaleFactor, path)
	return 0
}

func runService(cfgMgr *config.Manager, log logx.Log) {
	cfg := cfgMgr.Get()
	log.Info("DeskAgent %s starting...", version)

	if cfg.General.StartOnBoot != autostart.IsEnabled() {
		if err := autostart.Set(cfg.General.StartOnBoot); err != nil {
			log.Warning("Autostart: Failed to apply start_on_boot=%v: %s", cfg.General.StartOnBoot, err)
		}
	}

	id, err := identity.New()
	if err != nil {
		log.Warning("Identity: %s", err)
		id = &identity.Identity{}
		if id.ConnectionCode, err = identity.NewCode(); err != nil {
			log.Error("Identity: %s", err)
		}
	}
	log.Info("Identity: Machine %s, connection code %s", id.MachineID, id.ConnectionCode)

	surface := newSurface(cfg)
	addr := net.JoinHostPort(cfg.API.Listen, strconv.Itoa(cfg.API.Port))
	addrs := network.Addresses(cfg.API.Listen, cfg.API.Port)

	var server *api.Server
	if cfg.API.Enabled {
		if network.Answering(context.Background(), net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.API.Port))) {
			log.Error("API: Another agent already answers on port %d", cfg.API.Port)
			os.Exit(1)
		}
		if cfg.API.ManageFirewall {
			go func() {
				if err := osutils.EnsureFirewallRule(cfg.API.Port, log); err != nil {
					log.Warning("Firewall: %s", err)
				}
			}()
		}
		server = api.NewServer(surface, api.Auth{
			Token:   cfg.API.Token,
			Origins: cfg.API.AllowedOrigins,
		}, api.Info{
			Version:        version,
			MachineID:      id.MachineID,
			ConnectionCode: id.ConnectionCode,
			Addresses:      addrs,
		}, log)
		go func() {
			if err := server.Start(addr); err != nil {
				log.Error("API: %s", err)
			}
		}()
	} else {
		log.Info("API: Command bridge disabled in %s", cfgMgr.Path())
	}

	shutdown := func() {
		log.Info("DeskAgent shutting down...")
		if server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := server.Shutdown(ctx); err != nil {
				log.Warning("API: Shutdown: %s", err)
			}
			cancel()
		}
		if err := surface.Close(); err != nil {
			log.Warning("Input: Failed to release handle: %s", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if *noTray || !cfg.General.ShowTray {
		<-sigCh
		shutdown()
		return
	}

	t := tray.New("DeskAgent", "DeskAgent - remote control agent", shutdown)
	for _, a := range addrs {
		t.AddInfo("Listening: " + a)
	}
	if len(id.MachineID) > 0 {
		t.AddInfo("Machine: " + id.MachineID[:min(len(id.MachineID), 12)])
	}
	t.AddInfo("Code: " + id.ConnectionCode)
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		log.Info("Tray: Quit requested")
		t.Stop()
	})
	go func() {
		<-sigCh
		t.Stop()
	}()
	t.Run()
}
