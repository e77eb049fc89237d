package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"icon-organizer/internal/catalog"
	"icon-organizer/internal/config"
	"icon-organizer/internal/fileio"
	"icon-organizer/internal/organize/model"
	"icon-organizer/internal/organize/service"
	serverhttp "icon-organizer/server/http"
)

func main() {
	var (
		iconsDir       = flag.String("icons-dir", "", "directory with icon files to organize")
		language       = flag.String("language", "zh", "built-in category language: zh or en")
		categoriesFile = flag.String("categories-file", "", "categories file (.json/.csv/.xls/.xlsx)")
		deckPath       = flag.String("pptx", "", "slide deck to extract categories from")
		overridesPath  = flag.String("overrides", "", "JSON map of exact filename to category for the second pass")
		extension      = flag.String("extension", model.DefaultExtension, "file extension to organize")
		threshold      = flag.Float64("threshold", model.DefaultThreshold, "minimum fuzzy match score")
		dryRun         = flag.Bool("dry-run", false, "report decisions without moving files")
		verbose        = flag.Bool("v", false, "verbose (debug) logging")
		serve          = flag.Bool("serve", false, "run the HTTP preview service instead of organizing")
	)
	flag.Parse()

	cfg := config.Load()
	if *verbose {
		cfg.LogLevel = "debug"
	}
	logger := config.SetupLogger(cfg)

	if *serve {
		runServer(cfg, logger)
		return
	}

	if *iconsDir == "" {
		logger.Fatal().Msg("--icons-dir is required")
	}
	if info, err := os.Stat(*iconsDir); err != nil || !info.IsDir() {
		logger.Fatal().Str("dir", *iconsDir).Msg("icons directory does not exist")
	}

	lang, err := catalog.ParseLanguage(*language)
	if err != nil {
		logger.Fatal().Err(err).Msg("language")
	}

	log := logger.With().Str("run_id", uuid.NewString()).Logger()

	cats, err := catalog.Resolve(catalog.Source{
		CategoriesFile: *categoriesFile,
		DeckPath:       *deckPath,
		Language:       lang,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve categories")
	}

	var overrides map[string]string
	if *overridesPath != "" {
		f, err := os.Open(*overridesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("overrides file")
		}
		overrides, err = fileio.ReadOverrides(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("overrides file")
		}
	}

	opt := model.Options{
		Extension: *extension,
		Threshold: *threshold,
		DryRun:    *dryRun,
	}

	org := service.New(*iconsDir, cats, overrides, opt, log)
	rep, err := org.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("organize")
	}

	// частичная классификация — штатный исход, код возврата всё равно 0
	if rep.Remaining == 0 {
		log.Info().Msg("all files organized")
	} else {
		log.Info().Int("remaining", rep.Remaining).Msg("some files need manual review")
	}
}

func runServer(cfg config.Config, logger zerolog.Logger) {
	r := serverhttp.NewRouter(cfg, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
