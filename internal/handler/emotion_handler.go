package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirrormood/internal/service"
)

type emotionPayload struct {
	EmotionDate string `json:"emotion_date"`
	EmotionCode int    `json:"emotion_code"`
	EmotionList []int  `json:"emotion_list"`
}

// RecordEmotion 保存当前用户一天的情绪提交
func (a *API) RecordEmotion(c *gin.Context) {
	var payload emotionPayload
	if !bindJSON(c, &payload, "无效的情绪提交参数") {
		return
	}

	emotionID, err := a.emotions.Record(service.EmotionInput{
		UserID:      currentUserID(c),
		EmotionDate: payload.EmotionDate,
		EmotionCode: payload.EmotionCode,
		Intensities: payload.EmotionList,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmotionDate) {
			respondError(c, http.StatusBadRequest, "日期格式应为 yyyyMMdd")
			return
		}
		respondError(c, http.StatusInternalServerError, "情绪记录保存失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"emotion_id": emotionID})
}

// GetMyEmotion 返回当前用户最近七天的情绪
func (a *API) GetMyEmotion(c *gin.Context) {
	emotions, err := a.emotions.History(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取情绪记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"emotions": emotions})
}

// GetFamilyEmotion 返回当前用户所有家人最近七天的情绪
func (a *API) GetFamilyEmotion(c *gin.Context) {
	family, err := a.emotions.FamilyHistory(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取家人情绪失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"family": family})
}

// GetFamilyAngryList 返回昨天记录了愤怒情绪的家人
func (a *API) GetFamilyAngryList(c *gin.Context) {
	users, err := a.emotions.FamilyAngryList(currentUserID(c), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "家人用户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取家人状态失败")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, user := range users {
		items = append(items, userToPayload(user))
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}
