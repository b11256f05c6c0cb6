package handler

import (
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/service"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct{}

func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

// Live 推送单篇博客的实时计数，无需登录
func (s *WsHandler) Live(c *gin.Context) {
	blogID, ok := pathID(c, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WarnContext(c.Request.Context(), "ws upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	ctx := c.Request.Context()
	pubsub := redis.Subscribe(ctx, service.LiveChannel(blogID))
	defer func() {
		_ = pubsub.Close()
	}()

	log.InfoContext(ctx, "live connection established", "blogId", blogID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	redisCh := pubsub.Channel()
	for {
		select {
		case msg, ok := <-redisCh:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.WarnContext(ctx, "live push failed", "blogId", blogID, "err", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-stopChan:
			log.InfoContext(ctx, "live connection closed", "blogId", blogID)
			return
		}
	}
}
