package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/MaggieWM-sketch/water-quality-app/db"
	qhttp "github.com/MaggieWM-sketch/water-quality-app/http"
	"github.com/MaggieWM-sketch/water-quality-app/logging"
	"github.com/MaggieWM-sketch/water-quality-app/monitoring"
	"github.com/MaggieWM-sketch/water-quality-app/potability"
)

// Config is the application configuration, loaded from config.yaml with
// environment overrides.
type Config struct {
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Http struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log   logging.Config `yaml:"log"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
}

func main() {
	// .env is optional; explicit environment always wins.
	godotenv.Load()

	config, err := loadConfig(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyEnvOverrides(config)

	logger, err := logging.New(config.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	qhttp.SetLogger(logger)

	// Model load is a one-time scoped acquisition; a bad artifact is a bad
	// deployment and the process must not come up.
	model, err := potability.LoadModel(config.Model.Path)
	if err != nil {
		logger.Fatal("model load failed", zap.Error(err))
	}
	logger.Info("model loaded",
		zap.String("version", model.Version),
		zap.String("path", config.Model.Path),
		zap.Int("trees", model.Forest.TreeCount()),
	)

	if err := db.InitDB(config.Database.Path); err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer db.CloseDB()
	if err := db.RecordModelLoad(model.Version, config.Model.Path, model.Forest.FeatureCount(), model.Forest.TreeCount()); err != nil {
		logger.Warn("failed to record model load", zap.Error(err))
	}

	metrics := monitoring.NewMetrics()
	hub := monitoring.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	pipeline, err := buildPipeline(model, config.Cache.Size, metrics)
	if err != nil {
		logger.Fatal("pipeline build failed", zap.Error(err))
	}

	qhttp.SetPipeline(pipeline)
	qhttp.SetModel(model)
	qhttp.SetMetrics(metrics)
	qhttp.SetHub(hub)
	qhttp.SetAuditSink(func(modelVersion, verdict string, confidence float64, duration time.Duration) {
		if err := db.RecordPrediction(modelVersion, verdict, confidence, duration); err != nil {
			logger.Warn("failed to record prediction audit", zap.Error(err))
		}
	})
	qhttp.SetAuditSummary(func() (interface{}, error) {
		return db.LoadAuditSummary()
	})

	watcher, err := monitoring.NewArtifactWatcher(config.Model.Path, potability.VerifyArtifact, logger, hub.PublishAlert)
	if err != nil {
		logger.Warn("artifact watcher unavailable", zap.Error(err))
	} else {
		go watcher.Run()
		defer watcher.Stop()
	}

	serverConfig := qhttp.DefaultServerConfig()
	if config.Http.Port != 0 {
		serverConfig.Port = config.Http.Port
	}
	if len(config.Http.AllowedOrigins) != 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}
	server := qhttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}
}

func buildPipeline(model *potability.Model, cacheSize int, metrics *monitoring.Metrics) (*potability.Pipeline, error) {
	if cacheSize <= 0 {
		return potability.NewPipeline(model), nil
	}
	cached, err := potability.NewCachingClassifier(model.Forest, cacheSize, metrics.RecordCacheHit)
	if err != nil {
		return nil, err
	}
	return potability.NewPipelineWith(cached, model.Scaler, model.Version), nil
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnvOverrides(config *Config) {
	if path := os.Getenv("MODEL_PATH"); path != "" {
		config.Model.Path = path
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}
	if port := os.Getenv("HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Http.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
