package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TNKompanska19/Visualization-Group-25/internal/config"
	"github.com/TNKompanska19/Visualization-Group-25/internal/data"
	"github.com/TNKompanska19/Visualization-Group-25/internal/dom"
	"github.com/TNKompanska19/Visualization-Group-25/internal/drag"
	"github.com/TNKompanska19/Visualization-Group-25/internal/handler"
	"github.com/TNKompanska19/Visualization-Group-25/internal/hub"
	"github.com/TNKompanska19/Visualization-Group-25/internal/page"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
	"github.com/TNKompanska19/Visualization-Group-25/internal/service"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dataDir := flag.String("data", "", "dataset directory (overrides config)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("starting hospital operations dashboard")

	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfgPath != "" {
		log.Infof("config loaded from %s", cfgPath)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	store, err := data.Load(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	if cfg.Data.Dir == "" {
		log.Info("no data directory configured, using synthetic dataset")
	}

	bus := service.NewEventBus()

	sseHub := hub.New()
	go sseHub.Run()

	// Bridge event bus to SSE clients
	eventChan := make(chan service.Event, 100)
	bus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	svc := service.NewDashboardService(store, bus)

	// The server-held page model: graph scene mounted into the network
	// widget, drag controller attached by the locator once the scene
	// appears in the document.
	doc := dom.NewDocument()
	page.Build(doc)

	graph := scene.NewGraph()
	if depts := svc.Departments(); len(depts) > 0 {
		if err := svc.BuildNetwork(graph, depts[0], 1); err != nil {
			log.Warnf("initial network: %v", err)
		}
	}

	ctrl := drag.NewController(cfg.Network.Draggable...)
	ctrl.OnSession(func(rootID string, descendants int, started bool) {
		evType := service.EventDragEnded
		if started {
			evType = service.EventDragStarted
		}
		bus.Publish(service.Event{
			Type:    evType,
			Payload: map[string]any{"root": rootID, "descendants": descendants},
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	locator := drag.NewLocator(doc, cfg.Network.Locator, ctrl)
	locator.Run(ctx)
	defer locator.Close()

	if err := page.MountNetwork(doc, cfg.Network.Locator.ContainerID, graph); err != nil {
		log.Fatalf("mount network: %v", err)
	}

	if cfg.Data.WatchReload && cfg.Data.Dir != "" {
		watcher := data.NewWatcher(cfg.Data.Dir, func() {
			if err := store.Reload(); err != nil {
				log.Errorf("reload dataset: %v", err)
				return
			}
			bus.Publish(service.Event{Type: service.EventDataReloaded})
		})
		go func() {
			if err := watcher.Watch(ctx); err != nil && err != context.Canceled {
				log.Errorf("dataset watcher: %v", err)
			}
		}()
	}

	h := handler.NewDashboardHandler(svc, bus, graph)
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.Routes(h, sseHub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
	}

	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
