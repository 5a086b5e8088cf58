package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 15, 0, 0, 0, 0, time.UTC)
	}
}

func TestResolveYears(t *testing.T) {
	r := NewDateRangeResolverWithClock(fixedClock(2024))

	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"普通区间", "2018 - 2022", 4},
		{"紧凑连字符", "2018-2022", 4},
		{"to 连接词", "2015 to 2019", 4},
		{"长破折号", "2016 – 2020", 4},
		{"present 终点", "2020 - present", 4},
		{"current 终点", "2021 to Current", 3},
		{"同年起止", "2022 - 2022", 0},
		{"倒序区间", "2022 - 2018", 0},
		{"超长区间封顶", "2000 - 2022", maxYearsPerPosition},
		{"嵌在描述文本中", "Senior Engineer, 2019 - 2023, Acme Corp", 4},
		{"无法识别", "about five years", 0},
		{"空串", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.ResolveYears(tt.input), "区间 %q 的解析结果不对", tt.input)
		})
	}
}

func TestResolveYearsPresentUsesClock(t *testing.T) {
	// present 分支应使用注入的时钟年份
	r := NewDateRangeResolverWithClock(fixedClock(2030))
	assert.Equal(t, 10.0, r.ResolveYears("2020 - present"), "present 应解析为注入时钟的年份")

	r2 := NewDateRangeResolverWithClock(fixedClock(2021))
	assert.Equal(t, 1.0, r2.ResolveYears("2020 - present"))
}
