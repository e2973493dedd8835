package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"nhooyr.io/websocket"

	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
)

// SocketReply is written back to the client for every action message it sends.
type SocketReply struct {
	Type    string `json:"type"`
	Applied bool   `json:"applied,omitempty"`
	Error   string `json:"error,omitempty"`
}

const socketSessionLimit = 6 * time.Hour

// originPatterns turns CORS origins such as "http://localhost:5173" into the
// host patterns the websocket origin check matches against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

// handleGameSocket serves the live game over a WebSocket. Every client gets
// snapshots; clients holding a scorer session may also send action envelopes.
// Cross-origin upgrades are accepted only from the configured CORS origins.
func handleGameSocket(logger *slog.Logger, store Store, keeper *scorekeeper.Keeper, broker *Broker, origins []string) http.HandlerFunc {
	patterns := originPatterns(origins)
	return func(w http.ResponseWriter, r *http.Request) {
		sess, authErr := scorerFromRequest(r, store)
		canWrite := authErr == nil

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: patterns,
		})
		if err != nil {
			logger.Warn("websocket accept failed", "origin", r.Header.Get("Origin"), "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), socketSessionLimit)
		defer cancel()

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		if err := conn.Write(ctx, websocket.MessageText, encodeSnapshot(keeper.Snapshot())); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		go func() {
			defer cancel()
			for {
				_, msg, err := conn.Read(ctx)
				if err != nil {
					logger.Debug("websocket read ended", "error", err)
					return
				}
				reply := socketDispatch(keeper, msg, canWrite)
				if reply.Applied {
					logger.Info("action dispatched", "type", reply.Type, "scorer", sess.Email, "via", "websocket")
				}
				data, _ := json.Marshal(reply)
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case data := <-ch:
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func socketDispatch(keeper *scorekeeper.Keeper, msg []byte, canWrite bool) SocketReply {
	if !canWrite {
		return SocketReply{Type: "error", Error: "not authenticated"}
	}
	action, err := minibasket.DecodeAction(msg)
	if err != nil {
		return SocketReply{Type: "error", Error: decodeErrorMessage(err)}
	}
	_, applied := keeper.Dispatch(action)
	return SocketReply{Type: string(action.Type()), Applied: applied}
}
