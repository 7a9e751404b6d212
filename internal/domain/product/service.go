package product

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// maxPrice decimal(10,2)能存储的上限
var maxPrice = decimal.RequireFromString("99999999.99")

// Service 商品领域服务
// 设计说明:
// 1. 封装后台维护商品时的业务规则(价格、折扣、分类、slug)
// 2. 前台查询直接走Repository,不经过Service
type Service interface {
	// Create 创建商品
	// 业务规则:
	// - 名称1-200个字符
	// - 价格必须大于0
	// - 折扣必须在0-100之间
	// - 分类必须存在
	// - slug为空时由名称生成,自动生成的slug冲突时追加随机后缀
	Create(ctx context.Context, p *Product) error

	// Update 更新商品,规则同Create
	Update(ctx context.Context, p *Product) error

	// Validate 校验商品字段
	Validate(p *Product) error
}

type service struct {
	repo         Repository
	categoryRepo CategoryRepository
}

// NewService 创建商品领域服务
func NewService(repo Repository, categoryRepo CategoryRepository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) Create(ctx context.Context, p *Product) error {
	if err := s.Validate(p); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return err
	}

	generated := p.Slug == ""
	if generated {
		p.Slug = Slugify(p.Name)
		if p.Slug == "" {
			p.Slug = withSuffix("")
		}
	}

	err := s.repo.Create(ctx, p)
	if errors.Is(err, ErrSlugDuplicate) && generated {
		p.Slug = withSuffix(p.Slug)
		err = s.repo.Create(ctx, p)
	}
	return err
}

func (s *service) Update(ctx context.Context, p *Product) error {
	if err := s.Validate(p); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return err
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return s.repo.Update(ctx, p)
}

func (s *service) Validate(p *Product) error {
	if n := utf8.RuneCountInString(p.Name); n == 0 || n > 200 {
		return ErrInvalidName
	}
	if !p.Price.IsPositive() || p.Price.GreaterThan(maxPrice) {
		return ErrInvalidPrice
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

func (s *service) checkCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrCategoryNotFound
	}
	_, err := s.categoryRepo.FindByID(ctx, id)
	return err
}
