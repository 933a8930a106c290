package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const streamWriteWait = 10 * time.Second

// StreamMessage is one frame on the trace progress stream.
type StreamMessage struct {
	Type    string      `json:"type"` // "progress", "result" or "error"
	Page    int         `json:"page,omitempty"`
	Fetched int         `json:"fetched,omitempty"`
	Status  int         `json:"status,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// streamConn serializes writes to a single websocket connection.
type streamConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *streamConn) send(msg StreamMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return s.conn.WriteJSON(msg)
}

func (h *APIHandler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || originAllowed(h.allowedOrigins, origin)
		},
	}
}

// GET /api/v1/trace/:address/stream?start_date&end_date (websocket)
//
// Emits a progress frame per fetched page, then exactly one result or error
// frame, then closes. Closing the socket early cancels the analysis.
func (h *APIHandler) handleStream(c *gin.Context) {
	address := c.Param("address")
	startDate, endDate := c.Query("start_date"), c.Query("end_date")

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client never sends; reading only surfaces the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sc := &streamConn{conn: conn}
	onPage := func(page, fetched int) {
		if err := sc.send(StreamMessage{Type: "progress", Page: page, Fetched: fetched}); err != nil {
			cancel()
		}
	}

	resp, err := h.analyzer.AnalyzeWithProgress(ctx, address, startDate, endDate, onPage)
	if err != nil {
		status, body := analysisErrorResponse(err)
		if ctx.Err() != nil && c.Request.Context().Err() == nil {
			log.Printf("[WS] Client left before trace of %s finished", address)
			return
		}
		_ = sc.send(StreamMessage{Type: "error", Status: status, Data: body})
	} else {
		_ = sc.send(StreamMessage{Type: "result", Data: resp})
	}

	sc.mu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(streamWriteWait))
	sc.mu.Unlock()
}
