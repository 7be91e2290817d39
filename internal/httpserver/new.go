package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"adherence-srv/internal/detector"
	"adherence-srv/pkg/discord"
	"adherence-srv/pkg/jwt"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/reportstore"
)

// HTTPServer is the operational surface of the alert engine: health probes,
// swagger, and authenticated manual detector triggers.
// New() only wires dependencies and validates them; Run() serves.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	port   int
	mode   string

	// Alert engine
	detector detector.UseCase

	// Probed dependencies
	db      *sql.DB
	reports reportstore.IReportStore

	// Auth & monitoring
	verifier jwt.Verifier
	discord  discord.IDiscord
}

// Config is the constructor input for HTTPServer.
// Keep this minimal: only fields really needed by HTTPServer.
type Config struct {
	Port int
	Mode string

	Detector detector.UseCase
	DB       *sql.DB
	Reports  reportstore.IReportStore
	Verifier jwt.Verifier
	Discord  discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: this does NOT start any goroutines. Use (*HTTPServer).Run().
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:      gin.New(),
		logger:   logger,
		port:     cfg.Port,
		mode:     cfg.Mode,
		detector: cfg.Detector,
		db:       cfg.DB,
		reports:  cfg.Reports,
		verifier: cfg.Verifier,
		discord:  cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.detector == nil {
		return errors.New("detector is required")
	}
	if srv.db == nil {
		return errors.New("database handle is required")
	}
	if srv.verifier == nil {
		return errors.New("service token verifier is required")
	}

	return nil
}
