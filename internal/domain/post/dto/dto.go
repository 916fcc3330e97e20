package dto

import "time"

// CreateDraftRequest carries the parameters of a new draft coming out of the
// post wizard
type CreateDraftRequest struct {
	AuthorUserID int64
	ChannelIDs   []uint
	Text         *string
	ParseMode    string
	MediaJSON    *string
	ButtonsJSON  *string
	Reactions    []string
	ScheduledAt  *time.Time
}

// PostPatch carries a partial update of draft content fields. Nil fields are
// left untouched
type PostPatch struct {
	ChannelIDs       []uint
	Text             *string
	ParseMode        *string
	MediaJSON        *string
	ButtonsJSON      *string
	ReactionsJSON    *string
	ScheduledAt      *time.Time
	PreviewMessageID *int64
}
