package contact

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/contact"
	"github.com/xiebiao/moongift/pkg/metrics"
)

// SubmitMessageUseCase 访客提交联系留言
// 不需要登录,校验通过后直接保存
type SubmitMessageUseCase struct {
	repo contact.Repository
}

// NewSubmitMessageUseCase 创建提交留言用例
func NewSubmitMessageUseCase(repo contact.Repository) *SubmitMessageUseCase {
	metrics.InitMetrics()
	return &SubmitMessageUseCase{repo: repo}
}

// SubmitMessageRequest 留言请求
type SubmitMessageRequest struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Execute 校验并保存留言
func (uc *SubmitMessageUseCase) Execute(ctx context.Context, req SubmitMessageRequest) (*contact.Message, error) {
	m, err := contact.NewMessage(req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.ContactMessagesTotal)
	zap.L().Info("contact message received", zap.Uint("message_id", m.ID))
	return m, nil
}

// ListMessagesUseCase 后台留言列表
type ListMessagesUseCase struct {
	repo contact.Repository
}

// NewListMessagesUseCase 创建留言列表用例
func NewListMessagesUseCase(repo contact.Repository) *ListMessagesUseCase {
	return &ListMessagesUseCase{repo: repo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, params contact.ListParams) ([]*contact.Message, int64, error) {
	return uc.repo.List(ctx, params)
}

// MarkMessageUseCase 标记已读/未读
type MarkMessageUseCase struct {
	repo contact.Repository
}

// NewMarkMessageUseCase 创建标记留言用例
func NewMarkMessageUseCase(repo contact.Repository) *MarkMessageUseCase {
	return &MarkMessageUseCase{repo: repo}
}

func (uc *MarkMessageUseCase) Execute(ctx context.Context, id uint, read bool) error {
	return uc.repo.SetRead(ctx, id, read)
}
