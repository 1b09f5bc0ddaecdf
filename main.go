package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hackterm/chat-backend/internal"
	"github.com/hackterm/chat-backend/internal/config"
	"github.com/hackterm/chat-backend/internal/provider"
	"github.com/hackterm/chat-backend/internal/proxy"
	"github.com/hackterm/chat-backend/internal/routing"
	"github.com/hackterm/chat-backend/internal/search"
	"github.com/hackterm/chat-backend/internal/store"
)

func newLogger() *zap.Logger {
	if os.Getenv("DEBUG") != "" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

// corsMiddleware mirrors what the browser client expects: credentialed
// requests from the configured origin, preflight short-circuited.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func main() {
	_ = godotenv.Load() // load .env if present

	logger := newLogger()
	defer logger.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	// Search gateway: optional, the router degrades to pure generation
	// without it.
	var searchGW routing.SearchGateway
	if cfg.SearchEnabled() {
		searchGW = search.NewClient(cfg.Search, logger.Named("search"))
	} else {
		logger.Warn("search credentials absent, search augmentation disabled")
	}

	// Provider: Gemini when a key is present, mock otherwise.
	var chat provider.ChatProvider
	if p, err := provider.NewGeminiProvider(cfg.Gemini, cfg.Persona.Prefix, logger.Named("gemini")); err == nil {
		chat = p
	} else {
		logger.Warn("falling back to mock provider", zap.Error(err))
		chat = provider.MockProvider{Prefix: cfg.Persona.Prefix}
	}

	mem := store.NewMemoryStore()
	images := proxy.NewImageFetcher(cfg.Server.ImageProxyLimit, logger.Named("proxy"))
	router := routing.NewRouter(
		routing.NewPolicyFilter(cfg.Routing.BlockedTerms),
		routing.NewClassifier(cfg.Routing.SearchTerms, cfg.Routing.ImageTerms, cfg.Routing.ReferenceTerms),
		searchGW,
		chat,
		cfg.Persona,
		logger.Named("routing"),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.Server.AllowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "uptime": time.Now().Format(time.RFC3339)})
	})

	r.GET("/api/model", func(c *gin.Context) {
		c.JSON(200, gin.H{"model": chat.Model()})
	})

	r.POST("/api/chat", func(c *gin.Context) {
		var req internal.ChatRequest
		if err := c.BindJSON(&req); err != nil || req.Message == "" {
			c.JSON(400, gin.H{"error": "message required"})
			return
		}

		// The history window comes from the request when supplied,
		// otherwise from the stored conversation.
		history := req.Context
		if history == nil && req.ConversationID != "" {
			history = mem.Recent(req.ConversationID, cfg.MaxHistory)
		}
		if len(history) > cfg.MaxHistory {
			history = history[len(history)-cfg.MaxHistory:]
		}

		if req.ConversationID != "" {
			mem.Append(req.ConversationID, internal.Message{
				Role:    internal.RoleUser,
				Content: req.Message,
			})
		}

		resp, err := router.Handle(c.Request.Context(), req.Message, history)
		if err != nil {
			logger.Error("chat request failed", zap.Error(err))
			resp = router.FailureResponse()
			resp.ConversationID = req.ConversationID
			if req.ConversationID != "" {
				mem.Append(req.ConversationID, internal.Message{
					Role:    internal.RoleAssistant,
					Content: resp.Response,
				})
			}
			c.JSON(502, resp)
			return
		}

		resp.ConversationID = req.ConversationID
		if req.ConversationID != "" {
			mem.Append(req.ConversationID, internal.Message{
				Role:    internal.RoleAssistant,
				Content: resp.Response,
			})
		}
		c.JSON(200, resp)
	})

	r.POST("/api/conversations", func(c *gin.Context) {
		c.JSON(200, internal.CreateConversationResponse{ID: mem.Create()})
	})

	r.GET("/api/conversations/:id/messages", func(c *gin.Context) {
		msgs, err := mem.Messages(c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "conversation not found"})
				return
			}
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, internal.ChatHistory{Messages: msgs})
	})

	r.DELETE("/api/conversations/:id", func(c *gin.Context) {
		mem.Delete(c.Param("id"))
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/api/images/download", func(c *gin.Context) {
		var req internal.DownloadImageRequest
		if err := c.BindJSON(&req); err != nil || req.ImageURL == "" {
			c.JSON(400, gin.H{"error": "imageUrl required"})
			return
		}
		data, contentType, err := images.Fetch(c.Request.Context(), req.ImageURL)
		if err != nil {
			logger.Warn("image download failed", zap.Error(err))
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment")
		c.Data(200, contentType, data)
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", addr), zap.String("model", chat.Model()))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
