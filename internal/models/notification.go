package models

// BanNotification is the moderation-service's audit record. One row is
// written per executed moderation action, after the remote ban/delete calls
// have been attempted; their outcome does not gate its creation.
type BanNotification struct {
	ID          int64
	UserID      int64
	Reason      string
	Duration    string // display text: "45 minutos", "Permanente"
	AppealGuide string
	Timestamp   int64
	IsRead      bool
}
