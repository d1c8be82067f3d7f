package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"folio/app/content"
	"folio/app/controllers"
	"folio/app/feed"
	"folio/app/mail"
	"folio/app/metrics"
	"folio/app/repositories"
	"folio/app/routes"
	"folio/app/services"
	"folio/app/views"
	"folio/config"
	"folio/logging"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled web application.
type App struct {
	Config *config.Config
	Logger logging.Logger
	Router http.Handler
	db     *badger.DB
}

// NewSender picks the mail provider named in the configuration.
func NewSender(cfg *config.Config, logger logging.Logger) mail.Sender {
	switch cfg.Mail.Provider {
	case config.ProviderAPI:
		return mail.NewAPIClient(cfg.Mail.APIURL, cfg.Mail.APIKey, &http.Client{Timeout: cfg.Mail.Timeout})
	case config.ProviderSMTP:
		return mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
		})
	default:
		return mail.Discard{Logger: logger}
	}
}

// NewApp loads content, opens the submission store and builds the router.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	catalog, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	for _, warning := range catalog.Check() {
		logger.Warn(warning)
	}

	if cfg.DB.Path != "" {
		if err := os.MkdirAll(cfg.DB.Path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := repositories.OpenBadger(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	templates, err := controllers.LoadTemplates(views.FS)
	if err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(registry)

	authors := repositories.NewMemoryAuthorRepository(catalog.Authors)
	postService := services.NewPostService(repositories.NewMemoryPostRepository(catalog.Posts, authors), authors)
	contactService := services.NewContactService(
		NewSender(cfg, logger),
		repositories.NewBadgerSubmissionRepository(db),
		collector,
		logger,
		services.ContactConfig{
			From:          cfg.Mail.From,
			To:            cfg.Mail.To,
			SubjectPrefix: cfg.Contact.SubjectPrefix,
			Timeout:       cfg.Mail.Timeout,
			DedupeWindow:  cfg.Contact.DedupeWindow,
		},
	)

	router := routes.SetupRoutes(routes.Deps{
		Site: feed.Site{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			BaseURL:     cfg.BaseURL,
			Author:      cfg.Site.Author,
			Language:    cfg.Site.Language,
		},
		Templates:   templates,
		Static:      views.Static(),
		Logger:      logger,
		PostService: postService,
		Contact:     contactService,
		Metrics:     collector,
		Gatherer:    registry,
		FeedMaxAge:  cfg.Feed.MaxAge,
	})

	return &App{Config: cfg, Logger: logger, Router: router, db: db}, nil
}

// Close releases the submission store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Serve handles requests on l until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	a.Logger.WithField("addr", l.Addr().String()).Info("Starting folio")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// RunAppServer listens on the configured address and serves until ctx ends.
func (a *App) RunAppServer(ctx context.Context) error {
	l, err := net.Listen("tcp", a.Config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Config.Addr, err)
	}
	return a.Serve(ctx, l)
}
