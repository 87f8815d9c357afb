package dto

type UpdateNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}
