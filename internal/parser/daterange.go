package parser

import (
	"strconv"
	"strings"
	"time"
)

// 单段经历的年限上限, 防止异常区间压垮总年限
const maxYearsPerPosition = 10.0

// DateRangeResolver 把 "2018 - 2022" / "2020 to present" 一类的区间解析为年数
// 时钟可注入, 便于测试 present/current 分支
type DateRangeResolver struct {
	now func() time.Time
}

// NewDateRangeResolver 创建解析器, 使用系统时钟
func NewDateRangeResolver() *DateRangeResolver {
	return &DateRangeResolver{now: time.Now}
}

// NewDateRangeResolverWithClock 注入时钟
func NewDateRangeResolverWithClock(now func() time.Time) *DateRangeResolver {
	return &DateRangeResolver{now: now}
}

// ResolveYears 解析区间文本为年数
// 无法识别返回0 (宽松策略, 不报错); 单段结果封顶 maxYearsPerPosition
func (r *DateRangeResolver) ResolveYears(rangeText string) float64 {
	m := DateRangeResolvePattern.FindStringSubmatch(rangeText)
	if m == nil {
		return 0
	}

	startYear, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	var endYear int
	endToken := strings.ToLower(m[2])
	if endToken == "present" || endToken == "current" {
		endYear = r.now().Year()
	} else {
		endYear, err = strconv.Atoi(m[2])
		if err != nil {
			return 0
		}
	}

	years := float64(endYear - startYear)
	if years < 0 {
		return 0
	}
	if years > maxYearsPerPosition {
		return maxYearsPerPosition
	}
	return years
}
