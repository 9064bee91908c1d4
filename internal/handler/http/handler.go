package http

import (
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	tokenSignKey   string
	tokenIssuer    string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, server config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		tokenSignKey:   app.TokenSignKey,
		tokenIssuer:    app.TokenIssuer,
		requestTimeout: server.RequestTimeout,
		logger:         logger,
	}
}
