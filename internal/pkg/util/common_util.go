package util

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeTags 去空白、小写、去重，保持首次出现的顺序
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

// SplitCSV 解析逗号分隔的查询参数
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// GetMidnight 返回服务器本地时区当天零点
func GetMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseUint64 路径参数解析
func ParseUint64(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}

// ClampInt 限制到 [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPage page 最小为 1，最大保证 page*pageSize 不溢出
func ClampPage(page, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	return ClampInt(page, 1, math.MaxInt/pageSize)
}
