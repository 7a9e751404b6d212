package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type fakeRepo struct {
	Repository
	slugs   map[string]bool
	created []*Product
}

func (f *fakeRepo) Create(_ context.Context, p *Product) error {
	if f.slugs[p.Slug] {
		return ErrSlugDuplicate
	}
	f.slugs[p.Slug] = true
	f.created = append(f.created, p)
	return nil
}

type fakeCategoryRepo struct {
	CategoryRepository
}

func (fakeCategoryRepo) FindByID(_ context.Context, id uint) (*Category, error) {
	if id == 1 {
		return &Category{ID: 1, Name: "Gifts", Slug: "gifts"}, nil
	}
	return nil, ErrCategoryNotFound
}

func newTestService() (Service, *fakeRepo) {
	repo := &fakeRepo{slugs: map[string]bool{}}
	return NewService(repo, fakeCategoryRepo{}), repo
}

func TestService_Validate(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name  string
		p     Product
		field string
	}{
		{"价格为0", Product{Name: "Box", Price: d("0")}, "price"},
		{"价格为负", Product{Name: "Box", Price: d("-1")}, "price"},
		{"折扣超过100", Product{Name: "Box", Price: d("10"), DiscountPercentage: 101}, "discount_percentage"},
		{"折扣为负", Product{Name: "Box", Price: d("10"), DiscountPercentage: -1}, "discount_percentage"},
		{"名称为空", Product{Price: d("10")}, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Validate(&tc.p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidParams))
			assert.Contains(t, apperrors.GetAppError(err).Fields, tc.field)
		})
	}

	assert.NoError(t, svc.Validate(&Product{Name: "Box", Price: d("10"), DiscountPercentage: 100}))
}

func TestService_Create(t *testing.T) {
	t.Run("根据名称生成slug", func(t *testing.T) {
		svc, repo := newTestService()
		p := &Product{Name: "Gift Box", Price: d("10"), CategoryID: 1}
		require.NoError(t, svc.Create(context.Background(), p))
		assert.Equal(t, "gift-box", p.Slug)
		assert.Len(t, repo.created, 1)
	})

	t.Run("自动生成的slug冲突时追加后缀", func(t *testing.T) {
		svc, repo := newTestService()
		repo.slugs["gift-box"] = true

		p := &Product{Name: "Gift Box", Price: d("10"), CategoryID: 1}
		require.NoError(t, svc.Create(context.Background(), p))
		assert.NotEqual(t, "gift-box", p.Slug)
		assert.Contains(t, p.Slug, "gift-box-")
	})

	t.Run("手动指定的slug冲突直接报错", func(t *testing.T) {
		svc, repo := newTestService()
		repo.slugs["taken"] = true

		p := &Product{Name: "Gift Box", Slug: "taken", Price: d("10"), CategoryID: 1}
		assert.ErrorIs(t, svc.Create(context.Background(), p), ErrSlugDuplicate)
	})

	t.Run("分类不存在", func(t *testing.T) {
		svc, _ := newTestService()
		p := &Product{Name: "Gift Box", Price: d("10"), CategoryID: 9}
		assert.ErrorIs(t, svc.Create(context.Background(), p), ErrCategoryNotFound)
	})
}
