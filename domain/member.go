package domain

// Member is a chat platform user seen in a voice channel.
type Member struct {
	ID          string
	DisplayName string
}

// Route tells where a member has to be moved once they acknowledge a published split.
type Route struct {
	MessageID string
	MemberID  string
	ChannelID string
}
