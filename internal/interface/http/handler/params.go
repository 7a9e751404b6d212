package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 分页默认值，与仓储层保持一致
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pathID 解析路径中的数字ID
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidParams.WithField(name, "必须是正整数")
	}
	return uint(id), nil
}

// pageQuery 读取page、page_size，非法值回退默认
func pageQuery(c *gin.Context, defaultSize int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// uintQuery 可选的数字查询参数，缺省为0
func uintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidParams.WithField(name, "必须是正整数")
	}
	return uint(v), nil
}

// boolQuery 可选的布尔查询参数，缺省为nil
func boolQuery(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidParams.WithField(name, "必须是true或false")
	}
	return &v, nil
}
