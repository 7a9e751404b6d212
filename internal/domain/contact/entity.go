package contact

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
	"github.com/xiebiao/moongift/pkg/validate"
)

// Message 联系留言
// 由匿名访客提交,后台可以标记已读/未读
type Message struct {
	ID        uint
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"omitempty,max=254,email"`
	Phone     string `json:"phone" validate:"required,max=20,phone"`
	Body      string `json:"message" validate:"required"`
	IsRead    bool
	CreatedAt time.Time
}

// NewMessage 创建留言并校验
func NewMessage(name, email, phone, body string) (*Message, error) {
	m := &Message{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Body:      strings.TrimSpace(body),
		CreatedAt: time.Now(),
	}
	if err := validate.Struct(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ErrMessageNotFound 留言不存在
var ErrMessageNotFound = apperrors.New(apperrors.ErrCodeMessageNotFound, "留言不存在")

// ListParams 后台查询参数
type ListParams struct {
	Page     int
	PageSize int
	IsRead   *bool // nil表示全部
}

// Repository 留言仓储接口
type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context, params ListParams) ([]*Message, int64, error)
	SetRead(ctx context.Context, id uint, read bool) error
}
