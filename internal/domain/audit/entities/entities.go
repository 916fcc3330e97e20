package entities

import "time"

// AuditEntry is an immutable record of a privileged action. Entries are only
// ever appended; nothing in the service mutates or deletes them
type AuditEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *int64    `gorm:"index:idx_audit_user" json:"userId,omitempty"`
	Action     string    `gorm:"size:64;not null" json:"action"`
	TargetType *string   `gorm:"size:32" json:"targetType,omitempty"`
	TargetID   *int64    `json:"targetId,omitempty"`
	TS         time.Time `gorm:"autoCreateTime" json:"ts"`
	ExtraJSON  *string   `gorm:"type:text" json:"extraJson,omitempty"` // JSON object stored as string
}

// TableName returns the table name for AuditEntry
func (AuditEntry) TableName() string {
	return "audit"
}
