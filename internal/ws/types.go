package ws

// server - client
const (
	MsgReady    = "ready"
	MsgSnapshot = "snapshot"
	MsgRound    = "round"
)
