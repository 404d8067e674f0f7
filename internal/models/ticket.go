package models

import "time"

// TicketType is the admission tier of a ticket.
type TicketType string

const (
	TicketGeneral TicketType = "general"
	TicketVIP     TicketType = "vip"
)

// Ticket is an event registration issued to a user.
type Ticket struct {
	ID           string     `json:"id"`
	Type         TicketType `json:"type"`
	Price        int        `json:"price"`
	EventID      string     `json:"event_id"`
	EventTitle   string     `json:"event_title"`
	OwnerID      string     `json:"owner_id"`
	OwnerEmail   string     `json:"owner_email"`
	PurchaseDate time.Time  `json:"purchase_date"`
	QRCode       string     `json:"qr_code"`
}
