package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/httpapi"
	"jobfilter-engine/internal/logger"
	"jobfilter-engine/internal/store"
)

func main() {
	devEnv := os.Getenv("JOBFILTER_DEV")
	logLevel := os.Getenv("JOBFILTER_LOG_LEVEL")
	logger.Init(devEnv != "", logLevel)

	dataDir := os.Getenv("JOBFILTER_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}

	userCfgPath := os.Getenv("JOBFILTER_CONFIG")
	if userCfgPath == "" {
		var err error
		userCfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatal().Err(err).Msg("config bootstrap failed")
		}
	}

	modulesPath := filepath.Join(dataDir, "modules.yml")
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.OverlayModules(&cfg, modulesPath); err != nil {
			return cfg, err
		}
		return cfg, config.Validate(cfg)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatal().Err(err).Str("path", userCfgPath).Msg("config load failed")
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)
	if cfg.DevMode(devEnv) && devEnv == "" {
		logger.Init(true, logLevel)
	}

	// app.data_dir moves the database; config.yml and modules.yml stay put.
	storageDir := cfg.DataDirOr(dataDir)
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", storageDir).Msg("create storage dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlitePath := cfg.Storage.SQLitePath
	if sqlitePath == "" {
		sqlitePath = "jobfilter.db"
	}
	if !filepath.IsAbs(sqlitePath) {
		sqlitePath = filepath.Join(storageDir, sqlitePath)
	}
	repo, err := store.OpenRepository(ctx, cfg.Storage.Driver, sqlitePath, cfg.Storage.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	}
	defer repo.Close()

	hub := events.NewHub()
	defer hub.Close()

	mux := httpapi.NewMux(httpapi.Deps{
		Repo:        repo,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen")
	}

	srv := &http.Server{
		Handler:           httpapi.NewHandler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal().Err(err).Msg("shutdown token")
	}
	mux.Handle("/shutdown", httpapi.ShutdownHandler{Token: token, Hub: hub, Shutdown: srv.Shutdown})
	fmt.Printf("SHUTDOWN_TOKEN=%s\n", token)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info().
		Str("addr", "http://"+addr).
		Str("driver", cfg.Storage.Driver).
		Int("modules", len(cfg.Modules)).
		Msg("engine listening")

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("serve")
	}
	log.Info().Msg("engine stopped")
}
