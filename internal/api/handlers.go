// Package api wires HTTP routes to the chat, lookup, upload, and
// conversation components. Every handler is synchronous; failures are
// converted to a uniform {"error": ...} JSON body at this boundary.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"localchat/internal/classifier"
	"localchat/internal/models"
	"localchat/internal/service/ai"
	"localchat/internal/service/lookup"
	"localchat/internal/store"
)

// Generator produces a model reply for a fully composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Lookup runs the auxiliary web and encyclopedia searches.
type Lookup interface {
	Search(ctx context.Context, query string) lookup.SearchResponse
	Wikipedia(ctx context.Context, query string) lookup.WikiResponse
}

// ConversationStore persists named transcripts.
type ConversationStore interface {
	Save(name string, messages []json.RawMessage) (string, error)
	Load(name string) (*models.Conversation, error)
	List() ([]models.ConversationSummary, error)
	Delete(name string) error
}

// Handler wires HTTP routes to the chatbot services.
type Handler struct {
	gen      Generator
	lookup   Lookup
	store    ConversationStore
	contexts *ai.ContextRegistry

	staticDir string
	static    http.Handler
	log       *zap.SugaredLogger
}

// NewHandler constructs a Handler instance.
func NewHandler(gen Generator, lk Lookup, st ConversationStore, contexts *ai.ContextRegistry, staticDir string, log *zap.SugaredLogger) *Handler {
	return &Handler{
		gen:       gen,
		lookup:    lk,
		store:     st,
		contexts:  contexts,
		staticDir: staticDir,
		static:    http.FileServer(http.Dir(staticDir)),
		log:       log,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.requestLog())

	router.GET("/", h.serveIndex)
	router.OPTIONS("/*path", h.preflight)

	router.POST("/chat", h.chat)
	router.POST("/search", h.search)
	router.POST("/wikipedia", h.wikipedia)
	router.POST("/upload", h.upload)
	router.POST("/save-conversation", h.saveConversation)
	router.POST("/load-conversation", h.loadConversation)
	router.POST("/list-conversations", h.listConversations)
	router.POST("/delete-conversation", h.deleteConversation)

	router.NoRoute(h.fallback)
}

// corsMiddleware attaches cross-origin headers to every response so the
// bundled front end can run from file:// or another local port.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

// requestLog emits one friendly line per API request, skipping favicon
// noise.
func (h *Handler) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		switch {
		case c.Request.Method == http.MethodGet:
			if path != "/favicon.ico" {
				h.log.Infow("serving chatbot interface", "path", path)
			}
		case path == "/chat":
			h.log.Info("chat request received")
		case path == "/search":
			h.log.Info("web search request received")
		case path == "/wikipedia":
			h.log.Info("wikipedia search request received")
		case path == "/upload":
			h.log.Info("file upload in progress")
		}
		c.Next()
	}
}

func (h *Handler) preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h *Handler) serveIndex(c *gin.Context) {
	c.File(filepath.Join(h.staticDir, "index.html"))
}

// fallback serves remaining GETs from the static directory and answers
// everything else with a JSON 404.
func (h *Handler) fallback(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		h.static.ServeHTTP(c.Writer, c.Request)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

type chatRequest struct {
	Message      string `json:"message"`
	ClearContext bool   `json:"clear_context"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	if req.ClearContext {
		h.contexts.Clear()
	}

	prompt := ai.ComposePrompt(req.Message, h.contexts.Snapshot())
	reply, err := h.gen.Generate(c.Request.Context(), prompt)
	if err != nil {
		h.log.Warnw("generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

type queryRequest struct {
	Query string `json:"query"`
}

func (h *Handler) search(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No search query provided"})
		return
	}
	c.JSON(http.StatusOK, h.lookup.Search(c.Request.Context(), req.Query))
}

func (h *Handler) wikipedia(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No search query provided"})
		return
	}
	c.JSON(http.StatusOK, h.lookup.Wikipedia(c.Request.Context(), req.Query))
}

type uploadRequest struct {
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

func (h *Handler) upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FileData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file data provided"})
		return
	}
	if req.FileName == "" {
		req.FileName = "unknown"
	}
	if req.FileType == "" {
		req.FileType = "application/octet-stream"
	}

	raw, err := decodeFileData(req.FileData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid file data: %v", err)})
		return
	}

	cls := classifier.Classify(raw, req.FileName, req.FileType)
	h.contexts.Put(models.FileContext{
		FileName:   req.FileName,
		FileType:   req.FileType,
		Summary:    cls.Summary,
		RawContent: cls.RawContent,
		UploadedAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("File \"%s\" uploaded successfully!", req.FileName),
		"content":  cls.Summary,
		"fileName": req.FileName,
		"fileType": req.FileType,
	})
}

// decodeFileData strips an optional data-URI prefix and decodes the base64
// payload. Malformed input is a genuine error here, not something to paper
// over.
func decodeFileData(data string) ([]byte, error) {
	if idx := strings.IndexByte(data, ','); idx >= 0 {
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return raw, nil
}

type saveRequest struct {
	Name     string            `json:"name"`
	Messages []json.RawMessage `json:"messages"`
}

func (h *Handler) saveConversation(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name, err := h.store.Save(req.Name, req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Conversation saved as \"%s\"", name),
		"filename": name,
	})
}

type filenameRequest struct {
	Filename string `json:"filename"`
}

func (h *Handler) loadConversation(c *gin.Context) {
	var req filenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename provided"})
		return
	}
	conv, err := h.store.Load(req.Filename)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"conversation": conv,
	})
}

func (h *Handler) listConversations(c *gin.Context) {
	summaries, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": summaries,
	})
}

func (h *Handler) deleteConversation(c *gin.Context) {
	var req filenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename provided"})
		return
	}
	if err := h.store.Delete(req.Filename); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Conversation \"%s\" deleted successfully", req.Filename),
	})
}
