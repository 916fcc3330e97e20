package entities

import (
	"encoding/json"
	"time"
)

// Status is a post lifecycle status
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusQueued    Status = "queued"
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
)

// transitions lists the allowed outbound statuses for each status.
// published and deleted are terminal
var transitions = map[Status]map[Status]bool{
	StatusDraft:     {StatusScheduled: true, StatusQueued: true, StatusPublished: true, StatusDeleted: true},
	StatusScheduled: {StatusQueued: true, StatusPublished: true, StatusDeleted: true},
	StatusQueued:    {StatusPublished: true, StatusDeleted: true},
	StatusPublished: {},
	StatusDeleted:   {},
}

// Valid reports whether s is one of the five known statuses
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s has no outbound transitions
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether from -> to is an allowed status change
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// ParseMode values accepted for post text
const (
	ParseModeHTML     = "HTML"
	ParseModeMarkdown = "Markdown"
	ParseModeNone     = "None"
)

// Post represents a unit of content targeted at one or more channels
type Post struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AuthorUserID     int64      `gorm:"not null;index:idx_posts_author" json:"authorUserId"`
	Status           string     `gorm:"size:16;not null;default:'draft';check:posts_status_chk,status IN ('draft','scheduled','queued','published','deleted')" json:"status"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	ScheduledAt      *time.Time `json:"scheduledAt,omitempty"`
	ChannelIDsJSON   string     `gorm:"column:channel_ids;type:text;not null" json:"channelIdsJson"` // JSON array stored as string
	Text             *string    `gorm:"type:text" json:"text,omitempty"`
	ParseMode        string     `gorm:"size:16;default:'HTML';check:posts_parse_mode_chk,parse_mode IN ('HTML','Markdown','None')" json:"parseMode"`
	MediaJSON        *string    `gorm:"type:text" json:"mediaJson,omitempty"`
	ButtonsJSON      *string    `gorm:"type:text" json:"buttonsJson,omitempty"`
	ReactionsJSON    *string    `gorm:"type:text" json:"reactionsJson,omitempty"`
	PreviewMessageID *int64     `json:"previewMessageId,omitempty"`
}

// TableName returns the table name for Post
func (Post) TableName() string {
	return "posts"
}

// ChannelIDs decodes the targeted channel id list
func (p *Post) ChannelIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if p.ChannelIDsJSON == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(p.ChannelIDsJSON), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetChannelIDs encodes the targeted channel id list
func (p *Post) SetChannelIDs(ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	p.ChannelIDsJSON = string(data)
	return nil
}
