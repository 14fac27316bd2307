package cards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"idcard/internal/store"
)

// Readiness reports whether the storage connection is usable.
type Readiness interface {
	Ready() bool
}

// ListCache caches list-endpoint payloads keyed by route path.
// Implemented by store.Cache; faked in tests.
type ListCache interface {
	Get(ctx context.Context, path string) ([]byte, bool)
	Set(ctx context.Context, path string, payload []byte)
	Invalidate(ctx context.Context, paths ...string)
}

// Route paths, shared with the cache keys.
const (
	PathPrinted  = "/api/printed"
	PathHistory  = "/api/acchistoryids"
	PathAccepted = "/api/accepted-idcards"
)

// Handler exposes the REST surface over the card service.
type Handler struct {
	svc   *Service
	db    Readiness
	cache ListCache
	rds   *store.Redis
}

// New creates a handler. cache and rds may be nil when caching is disabled.
func New(svc *Service, db Readiness, cache ListCache, rds *store.Redis) *Handler {
	return &Handler{svc: svc, db: db, cache: cache, rds: rds}
}

// Healthz reports current connection state. Registered outside the DB gate so
// it stays reachable while the store is still connecting. When the list cache
// is configured, redis connectivity is reported alongside; it never affects
// ok/db, which mirror the store readiness alone.
func (h *Handler) Healthz(c *gin.Context) {
	ready := h.db.Ready()
	payload := gin.H{"ok": ready, "db": ready}
	if h.rds != nil {
		payload["cache"] = h.rds.Healthy(c.Request.Context())
	}
	c.JSON(http.StatusOK, payload)
}

// ListPrinted returns all pending print requests.
func (h *Handler) ListPrinted(c *gin.Context) {
	h.respondList(c, PathPrinted, func(ctx context.Context) (any, error) {
		return h.svc.ListPrintRequests(ctx)
	})
}

// ListHistory returns the acceptance audit trail.
func (h *Handler) ListHistory(c *gin.Context) {
	h.respondList(c, PathHistory, func(ctx context.Context) (any, error) {
		return h.svc.ListHistory(ctx)
	})
}

// ListAccepted returns all accepted ID cards.
func (h *Handler) ListAccepted(c *gin.Context) {
	h.respondList(c, PathAccepted, func(ctx context.Context) (any, error) {
		return h.svc.ListAccepted(ctx)
	})
}

func (h *Handler) respondList(c *gin.Context, path string, fetch func(context.Context) (any, error)) {
	ctx := c.Request.Context()
	if h.cache != nil {
		if payload, ok := h.cache.Get(ctx, path); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}
	docs, err := fetch(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
	if h.cache != nil {
		if payload, err := json.Marshal(docs); err == nil {
			h.cache.Set(ctx, path, payload)
		}
	}
}

// invalidateLists drops the cached list payloads touched by an accept. The
// context must outlive the request: a client disconnect right after the
// insert would otherwise leave stale lists for a full TTL.
func (h *Handler) invalidateLists(c *gin.Context) {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(context.WithoutCancel(c.Request.Context()), PathPrinted, PathAccepted)
}

// AcceptIDCard moves one record from pending-print to accepted.
func (h *Handler) AcceptIDCard(c *gin.Context) {
	var req AcceptedIDCard
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.svc.Accept(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrRegisterNumberRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrAlreadyAccepted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		// The insert may already be durable even when the delete failed, so
		// the cached lists are stale either way.
		h.invalidateLists(c)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.invalidateLists(c)
	c.JSON(http.StatusCreated, gin.H{"message": "ID card accepted", "data": saved})
}

type loginRequest struct {
	AdminID string `json:"adminId" binding:"required"`
}

// Login verifies a submitted admin identifier against the allow-list.
// Existence check only; no session or token is issued.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.svc.Login(c.Request.Context(), req.AdminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid admin ID"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
