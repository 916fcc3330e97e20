package dto

// RegisterChannelRequest carries the parameters of a channel registration
// coming from the conversation layer
type RegisterChannelRequest struct {
	ActorUserID int64
	TgChatID    int64
	Title       string
	Username    *string
	Settings    map[string]any
}

// ChannelOption is the compact channel view the conversation layer renders
// into keyboards
type ChannelOption struct {
	ID    uint
	Title string
}

// SetMemberRoleRequest carries a role assignment request
type SetMemberRoleRequest struct {
	ActorUserID  int64
	TargetUserID int64
	ChannelID    uint
	Role         string
}
