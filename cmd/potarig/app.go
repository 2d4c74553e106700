package main

import (
	"context"
	"database/sql"
	"errors"

	"potarig/internal/config"
	"potarig/internal/flrig"
	"potarig/internal/logger"
	"potarig/internal/pota"
	"potarig/internal/repository"
	"potarig/internal/repository/db"
	"potarig/internal/rig"
	"potarig/internal/service"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sql.DB
	services *service.Service
	flrig    *flrig.Client // nil when the rig is simulated
	closers  []func() error
}

func newApp(cfg *config.Config) (*app, error) {
	log := logger.Init(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})

	database, err := openDB(cfg, log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, db: database}
	a.closers = append(a.closers, database.Close)

	writer := cfg.ADIFWriter()
	if writer.Path() == "" {
		log.Warnw("adif_disabled")
	} else if err := writer.Init(); err != nil {
		log.Errorw("adif_init_failed", "file", writer.Path(), "err", err)
	}

	a.services = service.NewService(service.Deps{
		Repos:       repository.NewRepository(database),
		Source:      pota.NewClient(pota.Config{URL: cfg.POTA.URL, Timeout: cfg.POTA.Timeout}, log),
		Transceiver: a.transceiver(),
		ModeAliases: service.NewModeAliases(cfg.Modes),
		ADIF:        writer,
		Log:         log,
	})
	return a, nil
}

// transceiver returns the flrig client, or the simulator when configured.
// Nothing is sent to flrig until a command needs the rig.
func (a *app) transceiver() service.Transceiver {
	if a.cfg.Flrig.Simulate {
		a.log.Infow("rig_simulated")
		return rig.NewSimulator(rig.SimulatorConfig{BandReset: true})
	}
	a.flrig = flrig.NewClient(flrig.Config{URL: a.cfg.Flrig.URL, Timeout: a.cfg.Flrig.Timeout})
	a.closers = append(a.closers, a.flrig.Close)
	return a.flrig
}

// checkRig logs whether flrig answers. Only serve calls it, in the background.
func (a *app) checkRig(ctx context.Context) {
	if a.flrig == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Flrig.Timeout)
	defer cancel()
	if version, err := a.flrig.Version(ctx); err != nil {
		a.log.Warnw("flrig_unreachable", "url", a.flrig.URL(), "err", err)
	} else {
		a.log.Infow("flrig_connected", "url", a.flrig.URL(), "version", version)
	}
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("db_open", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}
