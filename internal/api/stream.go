package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kondate-ai/backend/internal/service"
	"github.com/kondate-ai/backend/internal/types"
)

// Frame types exchanged over the streaming socket.
const (
	frameGenerate = "generate-recipes"
	frameChunk    = "recipe-chunk"
	frameComplete = "recipe-complete"
	frameError    = "recipe-error"
)

// ClientFrame is a message from the browser. Only generate-recipes is
// understood; anything else produces a recipe-error frame.
type ClientFrame struct {
	Type      string            `json:"type"`
	RequestID string            `json:"requestId"`
	Input     types.RecipeInput `json:"input"`
}

// ServerFrame is a message to the browser, keyed by the request id the
// client chose for the session.
type ServerFrame struct {
	Type      string                     `json:"type"`
	RequestID string                     `json:"requestId"`
	Chunk     *service.RecipeStreamChunk `json:"chunk,omitempty"`
	Message   string                     `json:"message,omitempty"`
}

// StreamHandler serves the WebSocket streaming generation endpoint.
type StreamHandler struct {
	streaming service.IStreamingService
	upgrader  websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler instance
func NewStreamHandler(streaming service.IStreamingService) *StreamHandler {
	return &StreamHandler{
		streaming: streaming,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser origin checks are handled by the CORS layer in
			// front of the HTTP routes; the socket accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/stream", h.Stream)
}

// Stream upgrades the connection and serves generation sessions until
// the client disconnects. One connection can run several sessions,
// each under its own request id.
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[StreamHandler] upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// gorilla/websocket allows one concurrent writer per connection.
	var writeMu sync.Mutex
	send := func(frame ServerFrame) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("[StreamHandler] write failed: %v", err)
		}
	}

	for {
		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[StreamHandler] read failed: %v", err)
			}
			return
		}

		if frame.Type != frameGenerate {
			send(ServerFrame{Type: frameError, RequestID: frame.RequestID, Message: "unknown frame type: " + frame.Type})
			continue
		}
		if frame.RequestID == "" {
			send(ServerFrame{Type: frameError, Message: "requestId is required"})
			continue
		}
		if err := frame.Input.Validate(); err != nil {
			send(ServerFrame{Type: frameError, RequestID: frame.RequestID, Message: err.Error()})
			continue
		}

		requestID := frame.RequestID
		cb := service.StreamCallbacks{
			OnChunk: func(chunk service.RecipeStreamChunk) {
				send(ServerFrame{Type: frameChunk, RequestID: requestID, Chunk: &chunk})
			},
			OnComplete: func() {
				send(ServerFrame{Type: frameComplete, RequestID: requestID})
			},
		}

		// Sessions outlive the read loop iteration, so they run under
		// their own context rather than the upgrade request's.
		if err := h.streaming.StartSession(context.Background(), requestID, frame.Input, cb); err != nil {
			send(ServerFrame{Type: frameError, RequestID: requestID, Message: err.Error()})
		}
	}
}
