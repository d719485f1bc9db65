package delivery

import (
	"errors"
	"net/http"
	"strconv"

	chatdto "moodchat-backend/internal/chat/dto"
	"moodchat-backend/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

func (h *ChatHandler) CreateRoom(c *gin.Context) {
	var req chatdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.chatUsecase.CreateRoom(c.GetString("userID"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	rooms, err := h.chatUsecase.ListRooms(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *ChatHandler) JoinRoom(c *gin.Context) {
	if err := h.chatUsecase.JoinRoom(c.Param("id"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.chatUsecase.ListMessages(c.GetString("userID"), c.Param("id"), c.Query("before"), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrNotMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage stores the message and returns immediately; classification and
// notification fanout happen in the background.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chatUsecase.SendMessage(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotMember):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, message)
}
