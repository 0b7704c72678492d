package fetcher

import (
	"regexp"

	"github.com/qwwqe/pyime/entities/languages"
)

// Fetchers enumerates the fetchers available to drivers.
var Fetchers = []Fetcher{
	NewArticleFetcher(People),
	NewArticleFetcher(Xinhua),
}

// People crawls 人民网, the online edition of People's Daily.
// Article pages carry no OpenGraph type, so presence of the body
// container marks a page as an article.
var People = Site{
	Name:      "people",
	CanonName: "人民网",
	Language:  languages.ZH_CN,

	Domains: []string{
		"people.com.cn",
		"www.people.com.cn",
		"politics.people.com.cn",
		"society.people.com.cn",
		"world.people.com.cn",
		"finance.people.com.cn",
		"opinion.people.com.cn",
	},
	DeparturePoint: "http://www.people.com.cn/",

	UniversalTags: []string{"人民网", "新闻"},

	ArticleSelector: "div.rm_txt_con",
	TitleTrailer:    regexp.MustCompile("--.*人民网$"),
	BodySelector:    "div.rm_txt_con",
	RemoveSelectors: []string{".edit", ".paper_num", "script", "style"},
	AuthorSelector:  "p.author",
	DefaultAuthor:   "人民网",
}

// Xinhua crawls 新华网.
var Xinhua = Site{
	Name:      "xinhua",
	CanonName: "新华网",
	Language:  languages.ZH_CN,

	Domains: []string{
		"news.cn",
		"www.news.cn",
		"xinhuanet.com",
		"www.xinhuanet.com",
	},
	DeparturePoint: "http://www.news.cn/",

	UniversalTags: []string{"新华网", "新闻"},

	TitleTrailer:    regexp.MustCompile("-新华网$"),
	BodySelector:    "#detail",
	RemoveSelectors: []string{"#articleEdit", "script", "style"},
	DefaultAuthor:   "新华网",
}
