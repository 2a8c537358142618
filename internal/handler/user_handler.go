package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirrormood/internal/db"
	"github.com/mirrormood/internal/service"
)

type registerPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// Register 创建新用户
func (a *API) Register(c *gin.Context) {
	var payload registerPayload
	if !bindJSON(c, &payload, "无效的注册参数") {
		return
	}

	user, err := a.users.Register(service.RegisterInput{
		Username: payload.Username,
		Password: payload.Password,
		Nickname: payload.Nickname,
		Email:    payload.Email,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			respondError(c, http.StatusBadRequest, "用户名已被占用")
			return
		}
		respondError(c, http.StatusBadRequest, "注册失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userToPayload(*user)})
}

// GetMe 返回当前登录用户的档案
func (a *API) GetMe(c *gin.Context) {
	user, err := a.users.Get(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "用户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取用户失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(*user)})
}

func userToPayload(user db.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"nickname": user.Nickname,
		"email":    user.Email,
	}
}
