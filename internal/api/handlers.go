package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ledes/internal/logger"
	"ledes/internal/models"
	"ledes/internal/portal"
	"ledes/internal/service/assistant"
)

// Chatter answers chat turns.
type Chatter interface {
	Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// Collector produces the grounding snapshot; it never fails.
type Collector interface {
	Collect(ctx context.Context) models.Snapshot
}

// RecordReader backs the dashboard listing endpoints.
type RecordReader interface {
	ListEntities(ctx context.Context) ([]models.Entity, error)
	ListContracts(ctx context.Context) ([]models.Contract, error)
	ListBills(ctx context.Context) ([]models.LegalBill, error)
	ListPlaybook(ctx context.Context, position models.ClausePosition) ([]models.PlaybookClause, error)
}

// Error codes returned alongside the error text.
const (
	codeBadRequest    = "bad_request"
	codeNotConfigured = "not_configured"
	codeUpstream      = "upstream_failed"
	codeInternal      = "internal"
	codeStore         = "store_unavailable"
)

const genericFailure = "Failed to generate response"

// Handler wires HTTP routes to the chat controller and the record store.
type Handler struct {
	chat      Chatter
	snapshots Collector
	records   RecordReader
	logger    *zap.Logger
}

// NewHandler constructs a Handler. records may be nil when no store is configured.
func NewHandler(chat Chatter, snapshots Collector, records RecordReader, log *zap.Logger) *Handler {
	return &Handler{
		chat:      chat,
		snapshots: snapshots,
		records:   records,
		logger:    logger.OrNop(log),
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), h.recovery())
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/chat", h.submitChat)
	api.GET("/stats", h.getStats)
	api.GET("/entities", h.listEntities)
	api.GET("/contracts", h.listContracts)
	api.GET("/bills", h.listBills)
	api.GET("/playbook", h.listPlaybook)
	api.GET("/me", h.getCurrentUser)
	api.GET("/modules", h.listModules)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Chat interface
type chatRequest struct {
	Messages   []models.Message   `json:"messages"`
	Context    string             `json:"context"`
	IntakeForm *models.IntakeForm `json:"intakeForm"`
}

func (h *Handler) submitChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": codeBadRequest})
		return
	}
	resp, err := h.chat.Chat(c.Request.Context(), assistant.ChatRequest{
		Messages: req.Messages,
		Section:  strings.TrimSpace(req.Context),
		Intake:   req.IntakeForm,
	})
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	payload := gin.H{"message": resp.Message}
	if resp.FlowSignal != assistant.FlowNone {
		payload["flow_signal"] = resp.FlowSignal
	}
	if resp.IntakeStage != "" {
		payload["intake_stage"] = resp.IntakeStage
	}
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": codeNotConfigured})
	case assistant.IsUpstream(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": codeUpstream})
	default:
		h.logger.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure, "code": codeInternal})
	}
}

// Dashboard data interface
func (h *Handler) getStats(c *gin.Context) {
	snap := h.snapshots.Collect(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"stats": snap.Stats})
}

func (h *Handler) listEntities(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusOK, gin.H{"entities": []models.Entity{}})
		return
	}
	entities, err := h.records.ListEntities(c.Request.Context())
	if err != nil {
		h.writeStoreError(c, "entities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

func (h *Handler) listContracts(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusOK, gin.H{"contracts": []models.Contract{}})
		return
	}
	contracts, err := h.records.ListContracts(c.Request.Context())
	if err != nil {
		h.writeStoreError(c, "contracts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

func (h *Handler) listBills(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusOK, gin.H{"bills": []models.LegalBill{}})
		return
	}
	bills, err := h.records.ListBills(c.Request.Context())
	if err != nil {
		h.writeStoreError(c, "legal_bills", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func (h *Handler) listPlaybook(c *gin.Context) {
	position := models.ClausePosition(strings.ToLower(strings.TrimSpace(c.Query("position"))))
	if position == "all" {
		position = ""
	}
	if position != "" && !position.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position must be one of accept, reject, negotiate", "code": codeBadRequest})
		return
	}
	if h.records == nil {
		c.JSON(http.StatusOK, gin.H{"clauses": []models.PlaybookClause{}})
		return
	}
	clauses, err := h.records.ListPlaybook(c.Request.Context(), position)
	if err != nil {
		h.writeStoreError(c, "contract_playbook", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clauses": clauses})
}

func (h *Handler) writeStoreError(c *gin.Context, collection string, err error) {
	h.logger.Warn("list records failed", zap.String("collection", collection), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "record store unavailable", "code": codeStore})
}

// Portal interface
func (h *Handler) getCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, portal.CurrentUser())
}

func (h *Handler) listModules(c *gin.Context) {
	user := portal.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"modules": portal.ModulesFor(user.Role)})
}
