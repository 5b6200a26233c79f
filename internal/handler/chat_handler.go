package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yashp/portfolio-assistant/internal/assistant"
	"github.com/yashp/portfolio-assistant/internal/model"
	"github.com/yashp/portfolio-assistant/internal/pkg/errcode"
	"github.com/yashp/portfolio-assistant/internal/pkg/response"
)

type ChatHandler struct {
	responder *assistant.Responder
}

func NewChatHandler(responder *assistant.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

type chatRequest struct {
	Message   string              `json:"message"`
	SessionID string              `json:"session_id"`
	History   []model.ChatMessage `json:"history"`
}

// Chat is the single public entry point of the pipeline. It never fails
// with a chat-level error: whatever the visitor sends, the responder
// resolves it to some answer.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	clientID := req.SessionID
	if clientID == "" {
		clientID = c.ClientIP()
	}
	res := h.responder.Respond(c.Request.Context(), req.Message, clientID, req.History)
	response.Success(c, res)
}
