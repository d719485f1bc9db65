package delivery

import (
	"net/http"
	"strconv"

	chatrepo "moodchat-backend/internal/chat/repository"
	emotionrepo "moodchat-backend/internal/emotion/repository"

	"github.com/gin-gonic/gin"
)

// EmotionHandler serves the read side of the emotion pipeline: a user's own
// profile and samples, and per-room trend buckets.
type EmotionHandler struct {
	profileRepo emotionrepo.ProfileRepository
	trendRepo   emotionrepo.TrendRepository
	sampleRepo  emotionrepo.SampleRepository
	roomRepo    chatrepo.RoomRepository
}

func NewEmotionHandler(profileRepo emotionrepo.ProfileRepository, trendRepo emotionrepo.TrendRepository, sampleRepo emotionrepo.SampleRepository, roomRepo chatrepo.RoomRepository) *EmotionHandler {
	return &EmotionHandler{
		profileRepo: profileRepo,
		trendRepo:   trendRepo,
		sampleRepo:  sampleRepo,
		roomRepo:    roomRepo,
	}
}

// GetMyProfile returns the caller's rolling emotion profile
func (h *EmotionHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.profileRepo.FindByUser(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no emotion profile yet"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMySamples returns the caller's recent emotion samples
func (h *EmotionHandler) GetMySamples(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	samples, err := h.sampleRepo.ListByAuthor(c.GetString("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, samples)
}

// GetRoomTrends returns recent daily trend buckets for a room the caller
// belongs to
func (h *EmotionHandler) GetRoomTrends(c *gin.Context) {
	roomID := c.Param("id")
	userID := c.GetString("userID")

	member, err := h.roomRepo.IsMember(roomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this room"})
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))
	buckets, err := h.trendRepo.ListByRoom(roomID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, buckets)
}
