package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirrormood/internal/db"
	"github.com/mirrormood/internal/service"
)

type connectPayload struct {
	ConnectUserID uint   `json:"connect_user_id"`
	Alias         string `json:"alias"`
}

// CreateConnection 为当前用户新增一条家人连接
func (a *API) CreateConnection(c *gin.Context) {
	var payload connectPayload
	if !bindJSON(c, &payload, "无效的连接参数") {
		return
	}

	edge, err := a.connects.Create(service.ConnectInput{
		UserID:        currentUserID(c),
		ConnectUserID: payload.ConnectUserID,
		Alias:         payload.Alias,
	})
	if err != nil {
		handleConnectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"connection": connectToPayload(*edge)})
}

// ListConnections 返回当前用户的家人连接列表
func (a *API) ListConnections(c *gin.Context) {
	edges, err := a.connects.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取连接列表失败")
		return
	}

	items := make([]gin.H, 0, len(edges))
	for _, edge := range edges {
		items = append(items, connectToPayload(edge))
	}

	c.JSON(http.StatusOK, gin.H{"connections": items})
}

// DeleteConnection 删除当前用户的一条家人连接
func (a *API) DeleteConnection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的连接ID")
		return
	}

	if err := a.connects.Delete(currentUserID(c), id); err != nil {
		handleConnectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "连接已删除"})
}

func handleConnectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "目标用户不存在")
	case errors.Is(err, service.ErrConnectionNotFound):
		respondError(c, http.StatusNotFound, "连接不存在")
	case errors.Is(err, service.ErrConnectionExists):
		respondError(c, http.StatusBadRequest, "连接已存在")
	case errors.Is(err, service.ErrSelfConnection):
		respondError(c, http.StatusBadRequest, "不能连接自己")
	default:
		respondError(c, http.StatusInternalServerError, "连接操作失败")
	}
}

func connectToPayload(edge db.ConnectUser) gin.H {
	return gin.H{
		"id":              edge.ID,
		"connect_user_id": edge.ConnectUserID,
		"alias":           edge.ConnectUserAlias,
	}
}
