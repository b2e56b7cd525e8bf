package ws

// Message is the envelope of every frame on the feed.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
