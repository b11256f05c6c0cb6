package api

import "Inkpost/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler        *handler.AuthHandler
	DocumentHandler    *handler.DocumentHandler
	BlogHandler        *handler.BlogHandler
	InteractionHandler *handler.InteractionHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	SysBoxHandler      *handler.SysBoxHandler
	MediaHandler       *handler.MediaHandler
	WsHandler          *handler.WsHandler
}
