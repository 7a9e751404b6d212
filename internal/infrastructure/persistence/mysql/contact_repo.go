package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/contact"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

const defaultContactPageSize = 20

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建留言仓储
func NewContactRepository(db *gorm.DB) contact.Repository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, m *contact.Message) error {
	model := &ContactMessageModel{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Message: m.Body,
		IsRead:  m.IsRead,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存留言失败")
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	return nil
}

// List 分页查询留言,最新的在前
func (r *contactRepository) List(ctx context.Context, params contact.ListParams) ([]*contact.Message, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, defaultContactPageSize)

	query := dbFrom(ctx, r.db).Model(&ContactMessageModel{})
	if params.IsRead != nil {
		query = query.Where("is_read = ?", *params.IsRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询留言总数失败")
	}

	var models []ContactMessageModel
	err := query.Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询留言列表失败")
	}

	messages := make([]*contact.Message, len(models))
	for i, model := range models {
		messages[i] = &contact.Message{
			ID:        model.ID,
			Name:      model.Name,
			Email:     model.Email,
			Phone:     model.Phone,
			Body:      model.Message,
			IsRead:    model.IsRead,
			CreatedAt: model.CreatedAt,
		}
	}
	return messages, total, nil
}

// SetRead 标记已读/未读
func (r *contactRepository) SetRead(ctx context.Context, id uint, read bool) error {
	db := dbFrom(ctx, r.db)
	var model ContactMessageModel
	if err := db.Select("id").First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return contact.ErrMessageNotFound
		}
		return apperrors.Wrap(err, "查询留言失败")
	}
	if err := db.Model(&ContactMessageModel{}).Where("id = ?", id).Update("is_read", read).Error; err != nil {
		return apperrors.Wrap(err, "更新留言失败")
	}
	return nil
}
