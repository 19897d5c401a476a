package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSystemInstruction is the persona sent with every chat exchange.
const DefaultSystemInstruction = `You are Kenotrix, a helpful, advanced AI assistant.
You were created by Chaudhary Mahendra J.
If anyone asks who made you, you must explicitly state that you were made by Chaudhary Mahendra J.
Do not mention Google or Gemini as your creator.
You are powered by advanced models but your identity is strictly Kenotrix.
Provide comprehensive, accurate answers with citations when available.`

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	LLMProvider       string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiBaseURL     string        `mapstructure:"GEMINI_BASE_URL"`
	OllamaURL         string        `mapstructure:"OLLAMA_URL"`
	MainModel         string        `mapstructure:"MAIN_MODEL"`
	TitleModel        string        `mapstructure:"TITLE_MODEL"`
	LLMTimeout        time.Duration `mapstructure:"LLM_TIMEOUT"`
	SystemInstruction string        `mapstructure:"SYSTEM_INSTRUCTION"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	StorageKey    string `mapstructure:"STORAGE_KEY"`

	VoiceLocale    string   `mapstructure:"VOICE_LOCALE"`
	VoicePreferred string   `mapstructure:"VOICE_PREFERRED"`
	STTCommand     string   `mapstructure:"STT_COMMAND"`
	TTSCommand     string   `mapstructure:"TTS_COMMAND"`
	TTSVoices      []string `mapstructure:"TTS_VOICES"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetDefault("LLM_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("MAIN_MODEL", "gemini-2.5-flash")
	viper.SetDefault("TITLE_MODEL", "gemini-2.5-flash")
	viper.SetDefault("LLM_TIMEOUT", "5m")
	viper.SetDefault("SYSTEM_INSTRUCTION", DefaultSystemInstruction)

	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "./data/kenotrix.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("STORAGE_KEY", "kenotrix_threads")

	viper.SetDefault("VOICE_LOCALE", "en-US")
	viper.SetDefault("VOICE_PREFERRED", "Google US English")
	viper.SetDefault("STT_COMMAND", "")
	viper.SetDefault("TTS_COMMAND", "")
	viper.SetDefault("TTS_VOICES", "")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
