package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/eigotube/immersion-api/api/health"
	libraryRoutes "github.com/eigotube/immersion-api/api/library"
	searchRoutes "github.com/eigotube/immersion-api/api/search"
	speechRoutes "github.com/eigotube/immersion-api/api/speech"
	"github.com/eigotube/immersion-api/api/subtitles"
	"github.com/eigotube/immersion-api/api/translate"
	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/api/version"
	"github.com/eigotube/immersion-api/internal/services/cache"
	"github.com/eigotube/immersion-api/internal/services/captions"
	libraryService "github.com/eigotube/immersion-api/internal/services/library"
	speechService "github.com/eigotube/immersion-api/internal/services/speech"
	subtitlesService "github.com/eigotube/immersion-api/internal/services/subtitles"
	"github.com/eigotube/immersion-api/internal/services/translation"
	"github.com/eigotube/immersion-api/internal/services/youtube"
	"github.com/eigotube/immersion-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.SubtitleService == nil || deps.Prober == nil || deps.Translator == nil {
		initializeSubtitlePipeline(deps, cfg)
	}

	if deps.Transcriber == nil {
		initializeSpeechService(deps, cfg)
	}

	if deps.Search == nil {
		deps.Search = youtube.NewClient(youtube.Config{
			APIKey:            cfg.YouTube.APIKey,
			BaseURL:           cfg.YouTube.BaseURL,
			Timeout:           cfg.YouTube.Timeout,
			RequestsPerMinute: cfg.YouTube.RateLimit,
			MaxResults:        cfg.YouTube.MaxResults,
		})
	}

	// Subtitle resolution hits external caption sources, keep it moderate (10 req/s, burst of 20)
	subtitleGroup := v1.Group("/subtitles")
	subtitleGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	subtitles.RegisterRoutes(subtitleGroup, deps)

	// Translation fans out to free public endpoints, same moderate limit (10 req/s, burst of 20)
	translateGroup := v1.Group("/translate")
	translateGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	translate.RegisterRoutes(translateGroup, deps)

	// Speech transcription uploads are expensive, strict limit (1 req/s, burst of 2)
	speechGroup := v1.Group("/speech")
	speechGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2))
	speechRoutes.RegisterRoutes(speechGroup, deps)

	// Register search routes with dedicated rate limiting (5 req/s, burst of 10)
	searchGroup := v1.Group("/search")
	searchGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	searchRoutes.RegisterRoutes(searchGroup, deps)

	// Library routes need the database
	if deps.DB != nil && deps.DB.DB != nil {
		if deps.Library == nil {
			deps.Library = libraryService.NewService(libraryService.NewRepository(deps.DB.DB))
		}

		libraryGroup := v1.Group("/library")
		libraryGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
		libraryRoutes.RegisterRoutes(libraryGroup, deps)
	}

	return nil
}

// initializeSubtitlePipeline wires the caption source, prober, fetcher,
// translation cascade, and resolution orchestrator together
func initializeSubtitlePipeline(deps *types.Dependencies, cfg *config.Config) {
	client := captions.NewClient(captions.Config{
		BaseURL:   cfg.Captions.BaseURL,
		Timeout:   cfg.Captions.FetchTimeout,
		UserAgent: cfg.Captions.UserAgent,
	})

	// Prober and fetcher share one cache so invalidation clears both views
	captionCache := cache.NewMemoryCache(50)
	prober := captions.NewProber(client, captionCache, cfg.Captions.CacheTTL, cfg.Captions.MaxProbeLanguages)
	fetcher := captions.NewFetcher(client, captionCache, cfg.Captions.CacheTTL, cfg.Captions.FetchTimeout)

	translator := translation.NewService(
		[]translation.Provider{
			translation.NewGoogleProvider(cfg.Translation.GoogleURL, cfg.Translation.Timeout),
			translation.NewMyMemoryProvider(cfg.Translation.MyMemoryURL, cfg.Translation.Timeout),
			translation.NewDictionaryProvider(),
		},
		translation.Options{
			BatchSize:     cfg.Translation.BatchSize,
			BatchDelay:    cfg.Translation.BatchDelay,
			MaxTextLength: cfg.Translation.MaxTextLength,
		},
	)

	if deps.Prober == nil {
		deps.Prober = prober
	}
	if deps.Translator == nil {
		deps.Translator = translator
	}
	if deps.SubtitleService == nil {
		deps.SubtitleService = subtitlesService.NewService(prober, fetcher, translator)
	}
}

// initializeSpeechService builds the recognition cascade from configured providers
func initializeSpeechService(deps *types.Dependencies, cfg *config.Config) {
	deps.Transcriber = speechService.NewService(
		[]speechService.Recognizer{
			speechService.NewWhisperRecognizer(speechService.WhisperConfig{
				APIKey:  cfg.Speech.Whisper.APIKey,
				APIURL:  cfg.Speech.Whisper.APIURL,
				Model:   cfg.Speech.Whisper.Model,
				Timeout: cfg.Speech.Whisper.Timeout,
			}),
			speechService.NewGoogleSpeechRecognizer(speechService.GoogleSpeechConfig{
				APIKey:  cfg.Speech.Google.APIKey,
				APIURL:  cfg.Speech.Google.APIURL,
				Timeout: cfg.Speech.Google.Timeout,
			}),
		},
		cfg.Speech.MaxFileSize,
	)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
