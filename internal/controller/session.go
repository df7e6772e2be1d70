package controller

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultRoomID = "room_1"

type Session struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

// NewUserID returns an opaque identifier that is unique per client start.
func NewUserID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user_" + id[:9]
}
