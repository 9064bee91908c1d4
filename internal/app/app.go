// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app ties the server process lifecycle together: background
// workers run for as long as the HTTP server does, and the resources opened
// at startup are released once both have stopped.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/server"
)

// Workers is the background job runner bound to the app lifetime.
type Workers interface {
	Run(ctx context.Context)
	Wait()
}

type App struct {
	server  server.Server
	workers Workers
	closers []io.Closer
	logger  *logger.Logger
}

// NewApp builds the process runtime. closers are closed in reverse order
// after shutdown.
func NewApp(srv server.Server, workers Workers, logger *logger.Logger, closers ...io.Closer) *App {
	return &App{
		server:  srv,
		workers: workers,
		closers: closers,
		logger:  logger,
	}
}

// Run blocks until the server stops, then stops the workers and closes the
// startup resources.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.workers.Run(ctx)
	a.server.RunServer()

	cancel()
	a.workers.Wait()
	a.logger.Info().Msg("workers stopped")

	return a.close()
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Err(err).Str("func", "App.close").Msg("error releasing resource")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
