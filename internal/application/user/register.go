package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 1. 格式和密码强度校验由领域服务负责
// 2. 新用户默认不是管理员,管理员只能在数据库中设置
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.Uint("user_id", u.ID))
	return toUserInfo(u), nil
}

// UserInfo 用户信息(不含密码)
type UserInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	IsStaff  bool   `json:"is_staff"`
}

func toUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		IsStaff:  u.IsStaff,
	}
}
