package protocol

import "riftcast.gg/internal/sim/engine"

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ViewerName      string `json:"viewer_name,omitempty"`
	SinceIndex      int    `json:"since_index,omitempty"` // replay scrub position
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	MatchID         string         `json:"match_id"`
	Teams           [2]string      `json:"teams"`
	TickRateHz      int            `json:"tick_rate_hz"`
	Catalogs        CatalogDigests `json:"catalogs"`
}

type CatalogDigests struct {
	Items      string `json:"items_digest"`
	BuildPaths string `json:"build_paths_digest"`
	Weathers   string `json:"weathers_digest"`
}

// EVENT (server -> client): one simulation event, delivered in log order.
type EventMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	Index           int          `json:"index"` // position in the event log
	Event           engine.Event `json:"event"`
}

// RESULT (server -> client): final snapshot after match.end.
type ResultMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	Result          engine.Result `json:"result"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}

// Error codes.
const (
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrMatchNotFound   = "E_MATCH_NOT_FOUND"
	ErrInternal        = "E_INTERNAL"
)
