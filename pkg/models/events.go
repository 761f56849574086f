package models

import "time"

// CloudEvent is the envelope published to the change-event stream. Dashboards
// subscribe to these instead of polling the store.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// HostPairedEventData is emitted when a pairing token is redeemed.
type HostPairedEventData struct {
	HostID         string    `json:"host_id"`
	OrganizationID string    `json:"organization_id"`
	Hostname       string    `json:"hostname"`
	PairedAt       time.Time `json:"paired_at"`
}

// AlertEventData is emitted when the rule engine raises an alert.
type AlertEventData struct {
	AlertID        string        `json:"alert_id"`
	OrganizationID string        `json:"organization_id"`
	HostID         string        `json:"host_id"`
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Title          string        `json:"title"`
	RaisedAt       time.Time     `json:"raised_at"`
}
