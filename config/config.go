package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	ConnectionString string `yaml:"connection_string"`
}

type SpeechConfig struct {
	// ModelPath points at the recognition model directory. The process
	// refuses to start without it.
	ModelPath string `yaml:"model_path"`
	// Command launches the recognizer backend; the model path and sample
	// rate are appended as flags per session.
	Command        string `yaml:"command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type OCRConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Config struct {
	ListenAddr string         `yaml:"listen_addr"`
	AccessKey  string         `yaml:"access_key"`
	Database   DatabaseConfig `yaml:"database"`
	Speech     SpeechConfig   `yaml:"speech"`
	OCR        OCRConfig      `yaml:"ocr"`
}

func Default() Config {
	return Config{
		ListenAddr: ":5000",
		Speech: SpeechConfig{
			ModelPath:      "models/vosk-model-en-us-0.42-gigaspeech",
			Command:        "recitation-recognizer",
			TimeoutSeconds: 120,
		},
	}
}

// Load reads the optional yaml file at path, then applies environment
// overrides. A missing file is fine; env vars alone can configure everything.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if cfg.Speech.TimeoutSeconds <= 0 {
		cfg.Speech.TimeoutSeconds = Default().Speech.TimeoutSeconds
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.AccessKey, "ACCESS_KEY")
	setString(&cfg.Database.ConnectionString, "DB_CONNECTION_STRING")
	setString(&cfg.Speech.ModelPath, "MODEL_PATH")
	setString(&cfg.Speech.Command, "RECOGNIZER_COMMAND")
	setInt(&cfg.Speech.TimeoutSeconds, "RECOGNIZER_TIMEOUT_SECONDS")
	setString(&cfg.OCR.Endpoint, "OCR_SERVICE")
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*target = parsed
		}
	}
}
