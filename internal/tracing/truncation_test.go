package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "jo****************om", MaskPII("john.doe@example.com"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10), "短于上限的字符串应原样返回")

	long := strings.Repeat("x", 300)
	truncated := TruncateString(long, DefaultMaxLength)
	assert.LessOrEqual(t, len([]rune(truncated)), DefaultMaxLength)
	assert.Contains(t, truncated, "...", "截断处应有省略号")
}

func TestSafeAttributeValue(t *testing.T) {
	// 敏感属性名走掩码
	masked := SafeAttributeValue("contact.email", "john.doe@example.com", DefaultMaxLength)
	assert.NotContains(t, masked, "john.doe", "邮箱属性应被掩码")

	// 普通属性名只做截断
	plain := SafeAttributeValue("db.operation", "SELECT", DefaultMaxLength)
	assert.Equal(t, "SELECT", plain)
}
