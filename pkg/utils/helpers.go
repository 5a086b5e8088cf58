package utils

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// TimePtr 返回时间指针
func TimePtr(t time.Time) *time.Time {
	return &t
}

// IntPtr 返回整数指针
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr 返回浮点数指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// CalculateMD5 计算字节切片的MD5值
func CalculateMD5(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}

// CalculateStringMD5 计算字符串的MD5值
func CalculateStringMD5(s string) string {
	return CalculateMD5([]byte(s))
}

// ConvertArrayToJSON 将字符串数组序列化为 datatypes.JSON
func ConvertArrayToJSON(arr []string) (datatypes.JSON, error) {
	if arr == nil {
		arr = []string{}
	}
	data, err := json.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("序列化字符串数组失败: %w", err)
	}
	return datatypes.JSON(data), nil
}

// ConvertJSONToArray 将 datatypes.JSON 反序列化为字符串数组
func ConvertJSONToArray(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("反序列化字符串数组失败: %w", err)
	}
	return arr, nil
}

// ConvertMapToJSON 将map序列化为 datatypes.JSON
func ConvertMapToJSON(m map[string]string) (datatypes.JSON, error) {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("序列化map失败: %w", err)
	}
	return datatypes.JSON(data), nil
}
