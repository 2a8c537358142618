package handler

import (
	"github.com/mirrormood/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	emotions *service.EmotionService
	connects *service.ConnectService
	users    *service.UserService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	return &API{
		emotions: service.NewEmotionService(gdb),
		connects: service.NewConnectService(gdb),
		users:    service.NewUserService(gdb),
	}
}
