package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"dealwise/pkg/api/deals"
	"dealwise/pkg/api/report"
	"dealwise/pkg/api/scenarios"
	"dealwise/pkg/api/underwrite"
	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/store"
)

type serverConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

func defaultServerConfig() serverConfig {
	return serverConfig{Addr: ":8080", ReadTimeoutSec: 10, WriteTimeoutSec: 30}
}

func loadServerConfig(path string, log *logrus.Logger) serverConfig {
	cfg := defaultServerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Cannot read server config %s: %v", path, err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Warnf("Cannot parse server config %s: %v", path, err)
		return defaultServerConfig()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg
}

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	cfg := loadServerConfig("configs/server.yaml", log)

	presets, err := scenario.LoadPresets("configs/scenarios.yaml")
	if err != nil {
		log.Warnf("Cannot load scenario presets: %v", err)
		presets = scenario.BuiltIn()
	}
	log.Infof("Loaded %d scenario presets", len(presets))

	// The deal store is optional: without DATABASE_URL the API runs
	// compute-only and the /api/deals endpoints answer 503.
	var repo store.DealRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			log.Errorf("Database init failed: %v", err)
		} else {
			defer store.Close()
			repo = store.NewDealRepo()
			log.Info("Deal store connected")
		}
	} else {
		log.Warn("DATABASE_URL not set, deal store disabled")
	}

	underwriteHandler := underwrite.NewHandler(presets, log)
	scenariosHandler := scenarios.NewHandler(presets)
	reportHandler := report.NewHandler(presets)
	dealsHandler := deals.NewHandler(repo, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/underwrite", underwriteHandler.HandleUnderwrite).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/scenarios", scenariosHandler.HandleList).Methods("GET")
	r.HandleFunc("/api/scenarios/apply", scenariosHandler.HandleApply).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/report", reportHandler.HandleReport).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/deals", dealsHandler.HandleList).Methods("GET")
	r.HandleFunc("/api/deals", dealsHandler.HandleSave).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/deals/{name}", dealsHandler.HandleGet).Methods("GET")

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}
	log.Infof("Starting server on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
