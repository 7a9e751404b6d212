package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"购物车为空", ErrEmptyCart, http.StatusBadRequest},
		{"订单状态非法", ErrInvalidOrderStatus, http.StatusBadRequest},
		{"购物车正忙", ErrLockTimeout, http.StatusConflict},
		{"资源不存在", New(ErrCodeOrderNotFound, "订单不存在"), http.StatusNotFound},
		{"未登录", ErrUnauthorized, http.StatusUnauthorized},
		{"无权限", ErrForbidden, http.StatusForbidden},
		{"内部错误", Wrap(errors.New("boom"), "失败"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestAppError_Is(t *testing.T) {
	t.Run("复制后的错误按错误码匹配", func(t *testing.T) {
		err := ErrInvalidParams.WithField("quantity", "数量必须在1-99之间")
		assert.True(t, errors.Is(err, ErrInvalidParams))
		assert.False(t, errors.Is(err, ErrEmptyCart))
		assert.Equal(t, "数量必须在1-99之间", err.Fields["quantity"])
		assert.Empty(t, ErrInvalidParams.Fields, "预定义错误不能被修改")
	})

	t.Run("包装后仍能识别", func(t *testing.T) {
		err := fmt.Errorf("create order: %w", ErrEmptyCart)
		assert.True(t, errors.Is(err, ErrEmptyCart))
		assert.True(t, HasCode(err, ErrCodeEmptyCart))
	})
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		raw := errors.New("connection refused")
		appErr := GetAppError(raw)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, raw)
	})

	t.Run("AppError原样返回", func(t *testing.T) {
		appErr := GetAppError(ErrForbidden)
		assert.Same(t, ErrForbidden, appErr)
	})
}

func TestValidation(t *testing.T) {
	err := Validation(map[string]string{"phone": "格式不正确"})
	assert.Equal(t, ErrCodeInvalidParams, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Fields, "phone")
}
