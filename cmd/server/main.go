package main

import (
	"context"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cardforge"
	"cardforge/internal/artwork"
	"cardforge/internal/config"
	"cardforge/internal/content"
	"cardforge/internal/handlers"
	"cardforge/internal/pipeline"
	"cardforge/internal/render"
	"cardforge/internal/store"
	"cardforge/internal/templates"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	templateFS, err := fs.Sub(cardforge.TemplatesFS, "assets/templates")
	if err != nil {
		log.Fatal("Failed to open template assets: ", err)
	}
	catalog, err := templates.NewCatalog(templateFS, templates.DefaultRegistry())
	if err != nil {
		log.Fatal("Failed to initialize template catalog: ", err)
	}

	rasterizer := render.NewChromeRasterizer()
	defer rasterizer.Close()

	pipe := pipeline.New(
		content.NewClient(cfg.Content),
		artwork.NewClient(cfg.Artwork),
		render.New(catalog, rasterizer, cfg.Render),
		catalog,
		cardforge.PlaceholderArtwork,
	)

	s := store.NewMemoryStore()
	h := handlers.New(s, pipe, catalog, cfg)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // 0 keeps SSE streams open
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("cardforge server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
