package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotificationType keys the variant carried in Notification.Data
type NotificationType string

const (
	NotificationInvestmentInterest NotificationType = "investment_interest"
	NotificationWatchlistAdded     NotificationType = "watchlist_added"
)

// NotificationData is the type-specific payload of a notification.
// Each variant reports the type it belongs to.
type NotificationData interface {
	NotificationType() NotificationType
}

// InvestmentInterest is sent to a founder when an investor acknowledges a proposal
type InvestmentInterest struct {
	InvestmentAmount float64        `json:"investmentAmount"`
	InvestmentType   InvestmentType `json:"investmentType"`
	Timeline         Timeline       `json:"timeline"`
	AcknowledgmentID string         `json:"acknowledgmentId"`
	InvestorID       string         `json:"investorId"`
	InvestorName     string         `json:"investorName"`
}

func (InvestmentInterest) NotificationType() NotificationType { return NotificationInvestmentInterest }

// WatchlistAdded is sent to a founder when an investor starts tracking the startup
type WatchlistAdded struct {
	InvestorID   string `json:"investorId"`
	InvestorName string `json:"investorName"`
	StartupName  string `json:"startupName"`
}

func (WatchlistAdded) NotificationType() NotificationType { return NotificationWatchlistAdded }

// Unknown is a notification type written by another flow sharing the
// collection. Its payload is kept verbatim.
type Unknown struct {
	Type NotificationType
	Raw  json.RawMessage
}

func (u Unknown) NotificationType() NotificationType { return u.Type }

func (u Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("null"), nil
	}
	return u.Raw, nil
}

// Notification is a message addressed to a recipient identity. Only Read
// ever changes after creation.
type Notification struct {
	ID          string
	RecipientID string
	StartupID   string
	Title       string
	Message     string
	Data        NotificationData
	Read        bool
	CreatedAt   time.Time

	// original record of an Unknown notification, re-emitted while Read is unchanged
	raw     json.RawMessage
	rawRead bool
}

// Type is derived from the payload variant
func (n Notification) Type() NotificationType {
	if n.Data == nil {
		return ""
	}
	return n.Data.NotificationType()
}

type notificationJSON struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId"`
	StartupID   string           `json:"startupId"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        json.RawMessage  `json:"data"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// MarshalJSON flattens the variant under "data" with its "type" alongside
func (n Notification) MarshalJSON() ([]byte, error) {
	if n.Data == nil {
		return nil, fmt.Errorf("notification %s: missing data", n.ID)
	}
	if _, ok := n.Data.(Unknown); ok && n.raw != nil && n.Read == n.rawRead {
		return n.raw, nil
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal notification data: %w", err)
	}
	return json.Marshal(notificationJSON{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		StartupID:   n.StartupID,
		Type:        n.Type(),
		Title:       n.Title,
		Message:     n.Message,
		Data:        data,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	})
}

// UnmarshalJSON picks the data variant from "type". Types not modeled here
// decode as Unknown.
func (n *Notification) UnmarshalJSON(b []byte) error {
	var raw notificationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data NotificationData
	switch raw.Type {
	case NotificationInvestmentInterest:
		var d InvestmentInterest
		if err := unmarshalData(raw.Data, &d); err != nil {
			return err
		}
		data = d
	case NotificationWatchlistAdded:
		var d WatchlistAdded
		if err := unmarshalData(raw.Data, &d); err != nil {
			return err
		}
		data = d
	default:
		data = Unknown{Type: raw.Type, Raw: append(json.RawMessage(nil), raw.Data...)}
	}

	*n = Notification{
		ID:          raw.ID,
		RecipientID: raw.RecipientID,
		StartupID:   raw.StartupID,
		Title:       raw.Title,
		Message:     raw.Message,
		Data:        data,
		Read:        raw.Read,
		CreatedAt:   raw.CreatedAt,
	}
	if _, ok := data.(Unknown); ok {
		n.raw = append(json.RawMessage(nil), b...)
		n.rawRead = raw.Read
	}
	return nil
}

func unmarshalData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal notification data: %w", err)
	}
	return nil
}
