package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxSlugLength 与 blog_posts.slug 列宽一致
const MaxSlugLength = 255

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)
	fileExtRegex  = regexp.MustCompile(`(?i)\.(md|txt)$`)
)

// NormalizeSlug 小写，非字母数字连续段替换为单个连字符，去除首尾连字符
func NormalizeSlug(s string) string {
	s = nonAlnumRegex.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// BaseSlug 依次尝试标题、去扩展名的文件名，最后回退为时间戳
func BaseSlug(title, fileName string, now time.Time) string {
	if base := NormalizeSlug(title); base != "" {
		return base
	}
	if base := NormalizeSlug(fileExtRegex.ReplaceAllString(fileName, "")); base != "" {
		return base
	}
	return "blog-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// SlugCandidate 第 n 次尝试的候选值：base, base-1, base-2 ...
// 超出 MaxSlugLength 时截断 base，保留数字后缀
func SlugCandidate(base string, n int) string {
	suffix := ""
	if n > 0 {
		suffix = "-" + strconv.Itoa(n)
	}
	if len(base)+len(suffix) > MaxSlugLength {
		base = strings.TrimRight(base[:MaxSlugLength-len(suffix)], "-")
	}
	return base + suffix
}
