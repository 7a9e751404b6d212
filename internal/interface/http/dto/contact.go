package dto

import (
	"time"

	"github.com/xiebiao/moongift/internal/domain/contact"
)

// ContactRequest 联系留言
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactMessageResponse 留言
type ContactMessageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactMessageResponse 领域实体 → 响应
func NewContactMessageResponse(m *contact.Message) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// NewContactMessageList 留言列表
func NewContactMessageList(messages []*contact.Message) []ContactMessageResponse {
	list := make([]ContactMessageResponse, len(messages))
	for i, m := range messages {
		list[i] = NewContactMessageResponse(m)
	}
	return list
}
