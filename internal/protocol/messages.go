// Package protocol holds the frames exchanged over the room channel. Every
// frame is a flat JSON object whose "type" field selects its shape.
package protocol

import "math"

type MessageType string

const (
	TypeChat        MessageType = "chat"
	TypeEmoji       MessageType = "emoji"
	TypePlayPause   MessageType = "play_pause"
	TypeSeek        MessageType = "seek"
	TypeSyncRequest MessageType = "sync_request"
)

type Action string

const (
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
)

func ActionFor(isPlaying bool) Action {
	if isPlaying {
		return ActionPlay
	}

	return ActionPause
}

// Position is a playback offset in seconds. Peers may send fractional
// values.
type Position float64

// Seconds floors p to whole seconds.
func (p Position) Seconds() int {
	return int(math.Floor(float64(p)))
}

type ChatMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
	UserID  string      `json:"user_id"`
}

type EmojiMessage struct {
	Type   MessageType `json:"type"`
	Emoji  string      `json:"emoji"`
	UserID string      `json:"user_id"`
}

type PlayPauseMessage struct {
	Type     MessageType `json:"type"`
	Action   Action      `json:"action"`
	Position Position    `json:"position"`
}

type SeekMessage struct {
	Type     MessageType `json:"type"`
	Position Position    `json:"position"`
}

type SyncRequestMessage struct {
	Type   MessageType `json:"type"`
	UserID string      `json:"user_id"`
}

func NewChat(userID, message string) *ChatMessage {
	return &ChatMessage{Type: TypeChat, Message: message, UserID: userID}
}

func NewEmoji(userID, emoji string) *EmojiMessage {
	return &EmojiMessage{Type: TypeEmoji, Emoji: emoji, UserID: userID}
}

func NewPlayPause(isPlaying bool, position int) *PlayPauseMessage {
	return &PlayPauseMessage{Type: TypePlayPause, Action: ActionFor(isPlaying), Position: Position(position)}
}

func NewSeek(position int) *SeekMessage {
	return &SeekMessage{Type: TypeSeek, Position: Position(position)}
}

func NewSyncRequest(userID string) *SyncRequestMessage {
	return &SyncRequestMessage{Type: TypeSyncRequest, UserID: userID}
}
