package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yashp/portfolio-assistant/internal/assistant"
	"github.com/yashp/portfolio-assistant/internal/knowledge"
	"github.com/yashp/portfolio-assistant/internal/pkg/errcode"
	"github.com/yashp/portfolio-assistant/internal/pkg/jwt"
	"github.com/yashp/portfolio-assistant/internal/pkg/password"
	"github.com/yashp/portfolio-assistant/internal/pkg/response"
)

type AdminHandler struct {
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
	store        *knowledge.Store
	responder    *assistant.Responder
	startedAt    time.Time
}

func NewAdminHandler(passwordHash string, jwtSecret []byte, tokenTTL time.Duration, store *knowledge.Store, responder *assistant.Responder) *AdminHandler {
	return &AdminHandler{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		store:        store,
		responder:    responder,
		startedAt:    time.Now(),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := password.Compare(h.passwordHash, req.Password); err != nil {
		response.Error(c, errcode.ErrUnauthorized, "invalid credentials")
		return
	}
	token, err := jwt.GenerateToken(jwt.RoleAdmin, h.jwtSecret, h.tokenTTL)
	if err != nil {
		response.Error(c, errcode.ErrInternal, "token generation failed")
		return
	}
	response.Success(c, gin.H{"token": token})
}

// Reload re-reads the knowledge-base file, picking up a fresh run of the
// embed batch without a restart.
func (h *AdminHandler) Reload(c *gin.Context) {
	if err := h.store.Load(c.Request.Context()); err != nil {
		response.Error(c, errcode.ErrKnowledgeUnavailable, err.Error())
		return
	}
	response.Success(c, gin.H{"chunks": h.store.Len()})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	response.Success(c, gin.H{
		"chunks":           h.store.Len(),
		"query_cache":      h.store.QueryCacheLen(),
		"rate_limit_peers": h.responder.Limiter().Size(),
		"uptime_seconds":   int(time.Since(h.startedAt).Seconds()),
	})
}
