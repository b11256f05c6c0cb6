package kafka

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Canal 将所有列值序列化为字符串，NULL 为 nil
const canalTimeLayout = "2006-01-02 15:04:05.999"

func StrToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func StrToUint64(v any) uint64 {
	n, _ := strconv.ParseUint(StrToString(v), 10, 64)
	return n
}

func StrToInt64(v any) int64 {
	n, _ := strconv.ParseInt(StrToString(v), 10, 64)
	return n
}

func StrToDateTime(v any) time.Time {
	s := StrToString(v)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(canalTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StrToTimePtr NULL 列返回 nil
func StrToTimePtr(v any) *time.Time {
	if v == nil {
		return nil
	}
	t := StrToDateTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

// StrToStrings 解析 JSON 数组列
func StrToStrings(v any) []string {
	out := make([]string, 0)
	s := StrToString(v)
	if s == "" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	return out
}
