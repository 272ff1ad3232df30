package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/yabook/yabook/auth"
	"github.com/yabook/yabook/config"
	"github.com/yabook/yabook/httpapi"
	"github.com/yabook/yabook/mailer"
	"github.com/yabook/yabook/store"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("yabook"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	logger := lgr.GetLogger("server")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseURL)
	if err != nil {
		logger.Error("could not open database", "error", err)
		os.Exit(1)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := store.Migrate(ctx, db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	repos := store.NewManager(db)
	repos.MustValidate()

	verification := auth.NewVerificationSigner(
		cfg.SecretKey,
		cfg.SecurityPasswordSalt,
		cfg.EmailTokenMaxAge(),
	)

	sessions := auth.NewSessionIssuer(
		[]byte(cfg.JWTSecretKey),
		cfg.AccessTokenTTL(),
		cfg.RefreshTokenTTL(),
		"yabook",
	).WithLogger(lgr.GetLogger("sessions"))

	outbound, err := buildMailer(cfg, lgr.GetLogger("mail"))
	if err != nil {
		logger.Error("could not set up mailer", "error", err)
		os.Exit(1)
	}

	flow := auth.NewFlow(
		repos.Users(),
		outbound,
		verification,
		sessions,
		cfg.PublicURL,
	).WithLogger(lgr.GetLogger("auth"))

	srv := httpapi.New(flow, sessions, repos,
		httpapi.WithLogger(lgr.GetLogger("http")),
		httpapi.WithItemsPerPage(cfg.ItemsPerPage),
	)

	go func() {
		if err := srv.Listen(cfg.ListenAddr); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Environment)

	waitExitSignal()

	if err := srv.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}

// buildMailer selects the outbound mail transport. Production delivers over
// SMTP when credentials are configured; everywhere else, and when production
// lacks credentials, messages go to the log instead.
func buildMailer(cfg *config.Config, lgr auth.Logger) (auth.Mailer, error) {
	if !cfg.IsProduction() {
		return mailer.NewLogMailer(lgr), nil
	}

	client, err := mailer.NewSMTPClient(
		cfg.MailHost,
		cfg.MailUsername,
		cfg.MailPassword,
		cfg.MailDefaultSender,
		cfg.MailSkipVerify,
	)
	if err != nil {
		return nil, err
	}

	if client.IsEnabled() {
		return client, nil
	}

	lgr.Info("mail credentials missing, falling back to log delivery")
	return mailer.NewLogMailer(lgr), nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
