package dto

type CreateRoomRequest struct {
	Name      string   `json:"name" binding:"required"`
	IsGroup   bool     `json:"is_group"`
	MemberIDs []string `json:"member_ids"`
}

type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type"`
}

type ListMessagesQuery struct {
	Before string `form:"before"` // message id cursor
	Limit  int    `form:"limit"`
}
