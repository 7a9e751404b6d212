package user

import (
	"context"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/domain/user"
)

// GetProfileUseCase 个人信息
type GetProfileUseCase struct {
	userRepo  user.Repository
	orderRepo order.Repository
}

// NewGetProfileUseCase 创建个人信息用例
func NewGetProfileUseCase(userRepo user.Repository, orderRepo order.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, orderRepo: orderRepo}
}

// Profile 个人信息响应
type Profile struct {
	*UserInfo
	OrdersCount int64  `json:"orders_count"`
	DateJoined  string `json:"date_joined"`
}

// Execute 查询当前用户信息和订单数
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*Profile, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := uc.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserInfo:    toUserInfo(u),
		OrdersCount: count,
		DateJoined:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
