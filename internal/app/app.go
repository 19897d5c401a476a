package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"kenotrix/backend/internal/api"
	"kenotrix/backend/internal/config"
	"kenotrix/backend/internal/database"
	"kenotrix/backend/internal/llm"
	"kenotrix/backend/internal/repository"
	"kenotrix/backend/internal/service"
	"kenotrix/backend/internal/store"
	"kenotrix/backend/internal/voice"
)

// App holds the wired application and the resources it must release.
type App struct {
	Server *http.Server
	Store  *store.Store
	DB     *sql.DB
	Redis  *redis.Client
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	if cfg.LLMProvider == "ollama" {
		waitForOllama(cfg.OllamaURL)
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp opens storage, loads the saved threads and wires every layer.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{}

	repo, err := app.openRepository(cfg)
	if err != nil {
		return nil, err
	}

	app.Store = store.New(repo)
	if err := app.Store.Load(context.Background()); err != nil {
		// A corrupt or unreadable blob is not fatal; the next write replaces it.
		slog.Warn("Could not load saved threads, starting empty", "error", err)
	} else {
		slog.Info("Loaded saved threads", "count", len(app.Store.Threads()))
	}

	provider, err := newProvider(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	client := llm.NewClient(provider, llm.ClientOptions{
		Model:             cfg.MainModel,
		TitleModel:        cfg.TitleModel,
		SystemInstruction: cfg.SystemInstruction,
	})

	opts := voice.DefaultOptions()
	if cfg.VoiceLocale != "" {
		opts.Locale = cfg.VoiceLocale
	}
	opts.PreferredVoice = cfg.VoicePreferred
	adapter := voice.NewAdapter(
		voice.NewCommandRecognizer(cfg.STTCommand),
		voice.NewCommandSynthesizer(cfg.TTSCommand, cfg.TTSVoices),
		voice.NotifierFunc(func(message string) { slog.Warn(message) }),
		opts,
	)
	caps := adapter.Capabilities()
	slog.Info("Voice capabilities", "recognition", caps.Recognition, "synthesis", caps.Synthesis, "voices", len(caps.Voices))

	chatService := service.NewChatService(app.Store, client)
	voiceService := service.NewVoiceService(adapter, app.Store)

	router := api.NewRouter(
		api.NewChatHandler(chatService),
		api.NewContentHandler(),
		api.NewVoiceHandler(voiceService),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

func (a *App) openRepository(cfg *config.Config) (repository.ThreadRepository, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "redis":
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := a.Redis.Ping(context.Background()).Err(); err != nil {
			_ = a.Redis.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		return repository.NewRedisRepository(a.Redis, cfg.StorageKey), nil
	case "sqlite", "":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db, cfg.StorageKey), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newProvider(cfg *config.Config) (llm.Provider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini", "":
		provider, err := llm.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini provider (is GEMINI_API_KEY set?): %w", err)
		}
		return provider, nil
	case "ollama":
		return llm.NewOllamaProvider(cfg.OllamaURL, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

// Close releases the storage connections.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	return errors.Join(errs...)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func waitForOllama(ollamaURL string) {
	slog.Info("Waiting for Ollama to be ready...")
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		resp, err := client.Get(ollamaURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in ollama health check", "error", bErr)
			}
			slog.Info("Ollama is ready.")
			return
		}
		if resp != nil {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in ollama health check (retry path)", "error", bErr)
			}
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "url", ollamaURL, "error", err)
		time.Sleep(3 * time.Second)
	}
}
