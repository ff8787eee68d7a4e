package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"BitwoodRPG/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type keysPayload struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

type pressPayload struct {
	Action  string `json:"action"` // interact, cancel, nav_up, nav_down, choose
	Ordinal int    `json:"ordinal,omitempty"`
}

func parseViewDim(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func serveWS(h *Hub, cfg Config, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID := query.Get("room")
	if roomID == "" {
		roomID = uuid.NewString()
	}
	viewW := parseViewDim(query.Get("viewW"), cfg.ViewWidth)
	viewH := parseViewDim(query.Get("viewH"), cfg.ViewHeight)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	runner, err := h.Acquire(roomID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: err.Error()})
		return
	}
	defer h.Release(roomID)

	playerID := uuid.NewString()
	h.log.Info().Str("room", roomID).Str("player", playerID).Msg("player joined")
	_ = conn.WriteJSON(outboundMessage{Type: "joined", Payload: map[string]string{
		"room":   roomID,
		"player": playerID,
	}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			switch inbound.Type {
			case "keys":
				var keys keysPayload
				if err := json.Unmarshal(inbound.Payload, &keys); err != nil {
					h.log.Warn().Err(err).Msg("invalid keys payload")
					continue
				}
				runner.box.SetHeld(keys.Up, keys.Down, keys.Left, keys.Right)
			case "press":
				var press pressPayload
				if err := json.Unmarshal(inbound.Payload, &press); err != nil {
					h.log.Warn().Err(err).Msg("invalid press payload")
					continue
				}
				runner.box.Press(pressToInput(press))
			default:
				h.log.Warn().Str("type", inbound.Type).Msg("unknown message type")
			}
		}
	}()

	sendInterval := float64(time.Second) / game.UpdateRateHz
	sendTick := time.NewTicker(time.Duration(sendInterval))
	defer sendTick.Stop()
	for {
		select {
		case <-done:
			h.log.Info().Str("room", roomID).Str("player", playerID).Msg("player left")
			return
		case <-sendTick.C:
			frame := runner.BuildFrame(viewW, viewH)
			dto := frameToDTO(frame, runner.room.Tiles.TileSize)
			if err := conn.WriteJSON(outboundMessage{Type: "frame", Payload: dto}); err != nil {
				return
			}
		}
	}
}

func pressToInput(p pressPayload) game.Input {
	var in game.Input
	switch p.Action {
	case "interact":
		in.Interact = true
	case "cancel":
		in.Cancel = true
	case "nav_up":
		in.NavDelta = -1
	case "nav_down":
		in.NavDelta = 1
	case "choose":
		if p.Ordinal >= 1 && p.Ordinal <= 9 {
			in.Ordinal = p.Ordinal
		}
	}
	return in
}
