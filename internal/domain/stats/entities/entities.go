package entities

import "time"

// ClickCounter aggregates clicks on one button of one post in one channel
type ClickCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_stats_clicks_key,unique" json:"postId"`
	ChannelID uint      `gorm:"not null;index:idx_stats_clicks_key,unique" json:"channelId"`
	ButtonKey string    `gorm:"size:64;not null;index:idx_stats_clicks_key,unique" json:"buttonKey"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for ClickCounter
func (ClickCounter) TableName() string {
	return "stats_clicks"
}

// ReactionCounter aggregates reaction-emoji counts on one post in one channel
type ReactionCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_stats_reactions_key,unique" json:"postId"`
	ChannelID uint      `gorm:"not null;index:idx_stats_reactions_key,unique" json:"channelId"`
	Emoji     string    `gorm:"size:32;not null;index:idx_stats_reactions_key,unique" json:"emoji"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for ReactionCounter
func (ReactionCounter) TableName() string {
	return "stats_reactions"
}
