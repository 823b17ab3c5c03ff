package service

// Message types pushed over the staff alert feed
const (
	MsgRiskAlert = "risk_alert"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToStaff(msgType string, payload interface{})
}
