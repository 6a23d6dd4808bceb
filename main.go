package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"

	"GraphicsStudio/internal/config"
	"GraphicsStudio/internal/export"
	"GraphicsStudio/internal/logging"
	studionet "GraphicsStudio/internal/net"
	"GraphicsStudio/internal/render"
	"GraphicsStudio/internal/state"
	"GraphicsStudio/internal/ui"
)

const usage = `usage:
  graphicsstudio [-config file]                   host a board
  graphicsstudio [-config file] studio://host:port join a board
  graphicsstudio -browse                          list boards on the LAN
  graphicsstudio -render in.json -o out.png       render a saved drawing
`

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath(), "settings file")
		renderIn   = flag.String("render", "", "render a saved drawing and exit")
		renderOut  = flag.String("o", "drawing.png", "output PNG for -render")
		browse     = flag.Bool("browse", false, "list sharing hosts found over mDNS and exit")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.SetLogger(newLogger(cfg.LogLevel))
	opts := render.Options{
		Width:           cfg.Canvas.Width,
		Height:          cfg.Canvas.Height,
		EllipseSegments: cfg.Canvas.EllipseSegments,
		PointSize:       cfg.Canvas.PointSize,
	}

	switch {
	case *renderIn != "":
		err = renderFile(*renderIn, *renderOut, opts)
	case *browse:
		err = browseHosts()
	case flag.NArg() > 0:
		addr, ok := studionet.ParseJoinLink(flag.Arg(0))
		if !ok {
			flag.Usage()
			os.Exit(2)
		}
		runClient(cfg, opts, addr)
	default:
		runHost(cfg, opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newSurface(cfg config.Config) *state.Surface {
	tool, err := state.ParseKind(cfg.Tools.Tool)
	if err != nil {
		logging.Logger().Warn("unknown default tool", "tool", cfg.Tools.Tool)
		tool = state.KindPoint
	}
	width := min(max(cfg.Tools.Thickness, 1), 10)
	return state.NewSurface(state.NewSiteID(), state.Settings{
		Tool:  tool,
		Color: cfg.Tools.Color,
		Width: width,
	})
}

func runHost(cfg config.Config, opts render.Options) {
	logging.Logger().Info("starting as host")
	surface := newSurface(cfg)
	hub := studionet.NewHub(surface)

	addr := fmt.Sprintf(":%d", cfg.Sharing.Port)
	link := studionet.JoinLink(fmt.Sprintf("%s:%d", studionet.OutboundIP(), cfg.Sharing.Port))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := ui.NewActions(surface, opts, link)
	ui.RunApp(surface, actions, opts, func(s *ui.Studio) {
		go func() {
			if err := hub.ListenAndServe(ctx, addr); err != nil {
				logging.Logger().Error("sharing unavailable", "err", err)
				fyne.Do(func() { s.SetStatus(fmt.Sprintf("Sharing unavailable: %v", err)) })
			}
		}()
		if cfg.Sharing.MDNS {
			server, err := studionet.Advertise(cfg.Sharing.Port)
			if err != nil {
				logging.Logger().Warn("mdns advertise", "err", err)
				return
			}
			go func() {
				<-ctx.Done()
				_ = server.Shutdown()
			}()
		}
		s.SetStatus("Hosting at " + link)
	})
}

func runClient(cfg config.Config, opts render.Options, addr string) {
	logging.Logger().Info("starting as client", "host", addr)
	surface := newSurface(cfg)
	actions := ui.NewActions(surface, opts, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ui.RunApp(surface, actions, opts, func(s *ui.Studio) {
		s.SetStatus("Connecting to " + addr)
		go func() {
			dialCtx, stop := context.WithTimeout(ctx, 10*time.Second)
			client, err := studionet.Dial(dialCtx, addr, surface)
			stop()
			if err != nil {
				fyne.Do(func() { s.SetStatus(fmt.Sprintf("Connection failed: %v", err)) })
				return
			}
			fyne.Do(func() { s.SetStatus("Connected to " + addr) })
			select {
			case <-ctx.Done():
				client.Close()
			case <-client.Done():
				msg := "Disconnected from host"
				if err := client.Err(); err != nil {
					msg = fmt.Sprintf("Disconnected from host: %v", err)
				}
				fyne.Do(func() { s.SetStatus(msg) })
			}
		}()
	})
}

func browseHosts() error {
	hosts, err := studionet.Browse(3 * time.Second)
	for _, h := range hosts {
		fmt.Println(studionet.JoinLink(h))
	}
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		fmt.Fprintln(os.Stderr, "no boards found")
	}
	return nil
}

func renderFile(in, out string, opts render.Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := export.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if doc.Width > 0 && doc.Height > 0 {
		opts.Width, opts.Height = doc.Width, doc.Height
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.WritePNG(w, opts, doc.Shapes); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	logging.Logger().Info("rendered", "in", in, "out", out, "shapes", len(doc.Shapes))
	return nil
}
