package entities

import (
	"encoding/json"
	"time"
)

// Channel represents a managed broadcast destination
type Channel struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TgChatID        int64     `gorm:"not null;uniqueIndex:idx_channels_tg_chat_id" json:"tgChatId"`
	Username        *string   `json:"username,omitempty"`
	Title           string    `gorm:"not null" json:"title"`
	TZ              string    `gorm:"size:64;default:'Asia/Tashkent'" json:"tz"`
	PostIntervalMin int       `gorm:"default:60" json:"postIntervalMin"`
	SettingsJSON    string    `gorm:"type:text" json:"settingsJson"` // JSON object stored as string
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for Channel
func (Channel) TableName() string {
	return "channels"
}

// Settings decodes the stored settings object. An empty column decodes to an
// empty map
func (c *Channel) Settings() (map[string]any, error) {
	settings := make(map[string]any)
	if c.SettingsJSON == "" {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(c.SettingsJSON), &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// MergeSettings applies patch on top of the stored settings: patch keys
// overwrite, all other keys are retained
func (c *Channel) MergeSettings(patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}
	settings, err := c.Settings()
	if err != nil {
		return err
	}
	for key, value := range patch {
		settings[key] = value
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	c.SettingsJSON = string(data)
	return nil
}

// UserChannelLink represents a user's role on one channel
type UserChannelLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_user_channels_user_channel,unique" json:"userId"`
	ChannelID uint      `gorm:"not null;index:idx_user_channels_user_channel,unique" json:"channelId"`
	Role      string    `gorm:"size:16;not null;check:user_channels_role_chk,role IN ('owner','admin','editor','analyst')" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for UserChannelLink
func (UserChannelLink) TableName() string {
	return "user_channels"
}
