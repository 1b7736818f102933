package api

import (
	"time"

	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/inbound"
)

// Handler carries the collaborators the HTTP endpoints need.
type Handler struct {
	router      *inbound.Router
	userRepo    database.UserRepository
	sourceRepo  database.SourceRepository
	contentRepo database.ContentRepository
}

// InboundRequest is the payload the mail-transport webhook delivers for each
// forwarded message.
type InboundRequest struct {
	To         string    `json:"to" binding:"required"`
	From       string    `json:"from" binding:"required"`
	Subject    string    `json:"subject"`
	HTML       string    `json:"html"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}
