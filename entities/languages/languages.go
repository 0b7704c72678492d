package languages

import "golang.org/x/text/language"

// Canonical language tag strings used by documents and lexica.
var (
	ZH_CN = language.MustParse("zh-CN").String()
	ZH_TW = language.MustParse("zh-TW").String()
)
