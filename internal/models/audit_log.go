package models

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuditLog records one administrative action. Actor and target emails
// are denormalized at write time so that entries stay readable after a
// user is deleted.
type AuditLog struct {
	DefaultModel
	ActorID          uuid.UUID  `gorm:"index" json:"actorId"`
	ActorEmail       string     `json:"actorEmail"`
	TargetID         *uuid.UUID `gorm:"index" json:"targetId"`
	TargetEmail      string     `json:"targetEmail"`
	Action           string     `gorm:"index" json:"action"`
	Detail           string     `json:"detail"`
	RequestIP        string     `json:"requestIp"`
	RequestUserAgent string     `json:"requestUserAgent"`
}

// RequestMeta carries the request attribution stored with an audit
// entry.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// RecordAudit writes an audit entry. Auditing is best effort: a failure
// is logged but never aborts the action it describes.
func RecordAudit(db *gorm.DB, actorID uuid.UUID, targetID *uuid.UUID, action, detail string, meta RequestMeta) {
	entry := AuditLog{
		ActorID:          actorID,
		TargetID:         targetID,
		Action:           action,
		Detail:           detail,
		RequestIP:        meta.IP,
		RequestUserAgent: meta.UserAgent,
	}

	actor, err := UserByID(db, actorID)
	if err == nil {
		entry.ActorEmail = actor.Email
	}

	if targetID != nil {
		target, err := UserByID(db, *targetID)
		if err == nil {
			entry.TargetEmail = target.Email
		}
	}

	err = db.Create(&entry).Error
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("could not write audit entry")
	}
}

// AuditLogs returns the most recent audit entries, newest first.
// Action filtering happens in the API layer.
func AuditLogs(db *gorm.DB, limit int) ([]AuditLog, error) {
	var entries []AuditLog
	err := db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
