package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"adherence-srv/config"
	"adherence-srv/config/postgre"
	detectorUC "adherence-srv/internal/detector/usecase"
	dispatchUC "adherence-srv/internal/dispatch/usecase"
	"adherence-srv/internal/httpserver"
	"adherence-srv/internal/scheduler"
	"adherence-srv/internal/sos/listener"
	sosUC "adherence-srv/internal/sos/usecase"
	"adherence-srv/internal/store/postgre"
	"adherence-srv/pkg/discord"
	"adherence-srv/pkg/encrypter"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/jwt"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/mailer"
	"adherence-srv/pkg/reportstore"
)

// @Name Adherence Alert Engine
// @description Operational API of the medication adherence alert engine.
// @version 1
// @host localhost:8080
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Root context cancelled on SIGINT/SIGTERM; everything drains off it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Environment.Timezone)
	if err != nil {
		logger.Errorf(ctx, "Failed to load timezone %q: %v", cfg.Environment.Timezone, err)
		return
	}

	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer db.Close()
	logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	discordClient := discord.New(logger, discord.Config{
		WebhookID:    cfg.Discord.WebhookID,
		WebhookToken: cfg.Discord.WebhookToken,
	})

	fcmClient, err := fcm.New(ctx, logger, fcm.Config{CredentialsFile: cfg.FCM.CredentialsFile})
	if err != nil {
		logger.Warnf(ctx, "Push gateway disabled: %v", err)
		fcmClient = nil
	}

	mailerClient, err := mailer.New(logger, mailer.Config{
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		From:          cfg.SMTP.From,
		Security:      cfg.SMTP.Security,
		Timeout:       cfg.SMTP.Timeout,
		RatePerSecond: cfg.SMTP.RatePerSecond,
	})
	if err != nil {
		logger.Warnf(ctx, "Email gateway disabled: %v", err)
		mailerClient = nil
	}

	reports, err := reportstore.New(logger, reportstore.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
		Bucket:    cfg.Minio.Bucket,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize report archive: %v", err)
		return
	}

	store := postgres.New(logger, db)
	dispatcher := dispatchUC.New(logger, store, fcmClient, mailerClient)
	detector := detectorUC.New(logger, store, dispatcher, reports, detectorUC.Config{Location: loc})
	sosHandler := sosUC.New(logger, store, dispatcher, encrypter.New(cfg.Encrypter.Key))

	sched := scheduler.New(logger, detector, discordClient, scheduler.Config{Location: loc})
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf(ctx, "Scheduler stopped: %v", err)
		}
	}()

	sosListener := listener.New(logger, postgre.DSN(cfg.Postgres), sosHandler)
	go func() {
		if err := sosListener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf(ctx, "SOS listener stopped: %v", err)
		}
	}()

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:     cfg.Server.Port,
		Mode:     cfg.Server.Mode,
		Detector: detector,
		DB:       db,
		Reports:  reports,
		Verifier: jwt.NewVerifier(cfg.JWT.SecretKey),
		Discord:  discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
	}
}
