package inbound

import (
	"time"
)

// RawMessage is an inbound email as delivered by the mail-transport webhook.
// Ephemeral; the router owns it only for the duration of one routing pass.
type RawMessage struct {
	ID         string
	To         string
	From       string
	Subject    string
	HTML       string
	Text       string
	ReceivedAt time.Time
}

// Approval dispositions assigned to newly extracted content.
const (
	DispositionApproved     = "approved"
	DispositionAutoApproved = "auto_approved"
	DispositionPending      = "pending"
	DispositionRejected     = "rejected"
)

// RouteResult is the router's answer to the webhook caller. Success is false
// only when the message could not be attributed to a user; blocked messages
// succeed without producing content.
type RouteResult struct {
	Success        bool   `json:"success"`
	Blocked        bool   `json:"blocked,omitempty"`
	ContentID      string `json:"content_id,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	Message        string `json:"message"`
}
