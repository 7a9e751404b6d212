package product

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Slugify 生成URL友好的slug
// 规则：NFKD分解后丢弃非ASCII字符，字母数字转小写，空白和连字符合并为单个"-"
//
//	Slugify("Gift Box  Deluxe!") == "gift-box-deluxe"
//	Slugify("Café") == "cafe"
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		}
	}
	return b.String()
}

// uniqueSuffix slug冲突或为空时追加的随机后缀
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// withSuffix 追加随机后缀
func withSuffix(slug string) string {
	if slug == "" {
		return "product-" + uniqueSuffix()
	}
	return slug + "-" + uniqueSuffix()
}
