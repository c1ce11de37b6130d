package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot.
type Config struct {
	Watcher WatcherConfig `yaml:"watcher"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// WatcherConfig controla el loop de vigilancia.
type WatcherConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// APIConfig contiene los endpoints de la Game Data API. Las credenciales
// nunca van en YAML: solo por variables de entorno (o .env).
type APIConfig struct {
	Region   string `yaml:"region"`    // "eu", "us", ...
	TokenURL string `yaml:"token_url"` // vacío = endpoint OAuth2 de producción
	DataURL  string `yaml:"data_url"`  // vacío = https://<region>.api.blizzard.com

	ClientID     string `yaml:"-"` // BNET_CLIENT_ID
	ClientSecret string `yaml:"-"` // BNET_CLIENT_SECRET
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Las variables de entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// WatchInterval devuelve el intervalo de vigilancia como time.Duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watcher.IntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BNET_CLIENT_ID"); v != "" {
		cfg.API.ClientID = v
	}
	if v := os.Getenv("BNET_CLIENT_SECRET"); v != "" {
		cfg.API.ClientSecret = v
	}
	if v := os.Getenv("BNET_REGION"); v != "" {
		cfg.API.Region = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Watcher.IntervalSeconds <= 0 {
		// El snapshot de subastas se regenera en remoto cada hora; escanear
		// mucho más rápido solo quema cuota.
		cfg.Watcher.IntervalSeconds = 300
	}
	if cfg.API.Region == "" {
		cfg.API.Region = "eu"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "ahbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
