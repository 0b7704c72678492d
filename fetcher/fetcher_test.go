package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/qwwqe/pyime/entities/corpus"
	"github.com/qwwqe/pyime/entities/languages"
	"github.com/qwwqe/pyime/repository"
)

var testSite = Site{
	CanonName: "测试新闻网",
	Language:  languages.ZH_CN,

	UniversalTags: []string{"测试新闻网", "民生"},

	TitleTrailer:    regexp.MustCompile(" - 测试新闻网$"),
	BodySelector:    "div.content",
	RemoveSelectors: []string{".ad", ".editor"},
	AuthorSelector:  "p.author",
	DefaultAuthor:   "测试新闻网",
}

const testArticleHTML = `<!DOCTYPE html>
<html>
<head>
<title>城市更新提速 老旧小区焕发新生机 - 测试新闻网</title>
<meta property="og:type" content="article" />
<meta property="og:title" content="城市更新提速 老旧小区焕发新生机 - 测试新闻网" />
<meta property="og:description" content="多地加快推进城市更新改造，居民生活环境持续改善。" />
<meta property="article:published_time" content="2023-05-12T09:30:00+08:00" />
<meta name="keywords" content="城市更新,民生，住房" />
</head>
<body>
<div class="article">
<p class="author">记者 王小明</p>
<div class="content">
<p>本报讯 多地加快推进城市更新改造。</p>
<p> </p>
<p>居民生活环境持续改善。</p>
<span class="ad">广告内容</span>
<div class="editor"><p>责任编辑：李华</p></div>
</div>
</div>
</body>
</html>`

const testBareHTML = `<html>
<head>
<title>最简文章 - 测试新闻网</title>
</head>
<body>
<div class="content"><p>正文内容。</p></div>
</body>
</html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("goquery.NewDocumentFromReader(...) returned error: %v", err)
	}
	return doc
}

func TestProcessArticle(t *testing.T) {
	f := NewArticleFetcher(testSite)
	doc := parseDoc(t, testArticleHTML)

	uri := "https://example.com/articles/1"
	got, err := f.processArticle(uri, doc)
	if err != nil {
		t.Fatalf("processArticle(%q, doc) returned error: %v", uri, err)
	}

	want := &corpus.Document{
		Title:     "城市更新提速 老旧小区焕发新生机",
		Date:      "2023-05-12 09:30:00",
		Author:    "记者 王小明",
		Abstract:  "多地加快推进城市更新改造，居民生活环境持续改善。",
		Body:      "本报讯 多地加快推进城市更新改造。\n\n居民生活环境持续改善。",
		Tags:      []string{"城市更新", "民生", "住房", "测试新闻网"},
		CanonName: "测试新闻网",
		Uri:       uri,
		Language:  languages.ZH_CN,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("processArticle(%q, doc) == %+v, want %+v", uri, got, want)
	}
}

func TestProcessArticleFallbacks(t *testing.T) {
	f := NewArticleFetcher(testSite)
	doc := parseDoc(t, testBareHTML)

	uri := "https://example.com/articles/2"
	got, err := f.processArticle(uri, doc)
	if err != nil {
		t.Fatalf("processArticle(%q, doc) returned error: %v", uri, err)
	}

	if got.Title != "最简文章" {
		t.Errorf("processArticle(%q, doc).Title == %q, want %q", uri, got.Title, "最简文章")
	}

	if got.Author != "测试新闻网" {
		t.Errorf("processArticle(%q, doc).Author == %q, want %q", uri, got.Author, "测试新闻网")
	}

	if got.Abstract != got.Title {
		t.Errorf("processArticle(%q, doc).Abstract == %q, want title %q", uri, got.Abstract, got.Title)
	}

	if _, err := time.Parse(dateFormat, got.Date); err != nil {
		t.Errorf("processArticle(%q, doc).Date == %q, want a %q timestamp", uri, got.Date, dateFormat)
	}

	wantTags := []string{"测试新闻网", "民生"}
	if !reflect.DeepEqual(got.Tags, wantTags) {
		t.Errorf("processArticle(%q, doc).Tags == %v, want %v", uri, got.Tags, wantTags)
	}
}

func TestProcessArticleMissingTitle(t *testing.T) {
	f := NewArticleFetcher(testSite)
	doc := parseDoc(t, `<html><body><div class="content"><p>正文。</p></div></body></html>`)

	if _, err := f.processArticle("https://example.com/x", doc); !errors.Is(err, ErrNoTitle) {
		t.Errorf("processArticle on a titleless page returned %v, want ErrNoTitle", err)
	}
}

func TestProcessArticleMissingBody(t *testing.T) {
	f := NewArticleFetcher(testSite)
	doc := parseDoc(t, `<html><head><title>只有标题</title></head><body></body></html>`)

	if _, err := f.processArticle("https://example.com/y", doc); !errors.Is(err, ErrNoBody) {
		t.Errorf("processArticle on a bodyless page returned %v, want ErrNoBody", err)
	}
}

func TestIsArticle(t *testing.T) {
	var s Site

	articleDoc := parseDoc(t, `<html><head><meta property="og:type" content="article" /></head></html>`)
	if !s.isArticle(articleDoc) {
		t.Errorf("isArticle(doc) == false for a page with og:type article, want true")
	}

	indexDoc := parseDoc(t, `<html><head><meta property="og:type" content="website" /></head></html>`)
	if s.isArticle(indexDoc) {
		t.Errorf("isArticle(doc) == true for a page with og:type website, want false")
	}

	s.ArticleSelector = "div.content"
	overrideDoc := parseDoc(t, `<html><body><div class="content"></div></body></html>`)
	if !s.isArticle(overrideDoc) {
		t.Errorf("isArticle(doc) == false with a matching ArticleSelector, want true")
	}
}

func TestArticleDate(t *testing.T) {
	var s Site

	doc := parseDoc(t, `<html><head><meta name="pubdate" content="2022-11-03T18:00:00+08:00" /></head></html>`)
	got := s.articleDate(doc)

	want := time.Date(2022, 11, 3, 18, 0, 0, 0, time.FixedZone("", 8*60*60))
	if !got.Equal(want) {
		t.Errorf("articleDate(doc) == %v, want %v", got, want)
	}

	empty := parseDoc(t, `<html><head></head></html>`)
	if got := s.articleDate(empty); !got.IsZero() {
		t.Errorf("articleDate(doc) == %v for a dateless page, want the zero time", got)
	}
}

func TestSiteTitleTrailers(t *testing.T) {
	cases := []struct {
		site Site
		raw  string
		want string
	}{
		{People, "全国秋粮收获过半--经济·科技--人民网", "全国秋粮收获过半"},
		{Xinhua, "神舟十九号载人飞船顺利返回-新华网", "神舟十九号载人飞船顺利返回"},
	}

	for _, c := range cases {
		doc := parseDoc(t, "<html><head><title>"+c.raw+"</title></head></html>")
		if got := c.site.articleTitle(doc); got != c.want {
			t.Errorf("articleTitle(doc) == %q for %s, want %q", got, c.site.Name, c.want)
		}
	}
}

// crawlRepo is an in-memory stand-in for the postgres repository,
// implementing just enough for a collector to run against it.
type crawlRepo struct {
	mu      sync.Mutex
	docs    []corpus.Document
	visited map[uint64]bool
}

func (r *crawlRepo) SaveDocument(d *corpus.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *d)
	return nil
}

func (r *crawlRepo) GetDocuments(language string, limit int) ([]corpus.Document, error) {
	return nil, nil
}

func (r *crawlRepo) AddLexeme(name, language, lexeme string, frequency int) error { return nil }

func (r *crawlRepo) AddLexemes(name, language string, lexemes []string, frequencies []int) error {
	return nil
}

func (r *crawlRepo) GetLexemes(name, language string) ([]string, []int, error) {
	return nil, nil, nil
}

func (r *crawlRepo) SaveUserPhrase(word string, encoded []byte, frequency int) error { return nil }

func (r *crawlRepo) GetUserPhrases() ([]repository.UserPhrase, error) { return nil, nil }

func (r *crawlRepo) Init() error {
	r.visited = map[uint64]bool{}
	return nil
}

func (r *crawlRepo) Visited(requestId uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visited[requestId] = true
	return nil
}

func (r *crawlRepo) IsVisited(requestId uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visited[requestId], nil
}

func (r *crawlRepo) Cookies(u *url.URL) string { return "" }

func (r *crawlRepo) SetCookies(u *url.URL, cookies string) {}

func crawlServer(t *testing.T) *httptest.Server {
	t.Helper()

	article := `<html>
<head>
<title>%s</title>
<meta property="og:type" content="article" />
<meta property="article:published_time" content="2023-05-12T09:30:00+08:00" />
</head>
<body><div class="content"><p>%s</p></div></body>
</html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<a href="/articles/1">文章一</a>
<a href="/articles/2">文章二</a>
<a href="/about">关于</a>
</body></html>`)
	})
	mux.HandleFunc("/articles/1", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, article, "文章一", "第一篇正文。")
	})
	mux.HandleFunc("/articles/2", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, article, "文章二", "第二篇正文。")
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>关于</title></head><body><p>站点介绍。</p></body></html>`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func crawlSite() Site {
	return Site{
		CanonName:    "测试新闻网",
		Language:     languages.ZH_CN,
		BodySelector: "div.content",
	}
}

func TestFetch(t *testing.T) {
	server := crawlServer(t)
	repo := &crawlRepo{}

	f := NewArticleFetcher(crawlSite())
	f.SetFetcherOptions(&FetcherOptions{Repository: repo})

	err := f.Fetch(FetchOptions{DeparturePoint: server.URL, MaxDepth: 2})
	if err != nil {
		t.Fatalf("Fetch(...) returned error: %v", err)
	}

	if len(repo.docs) != 2 {
		t.Fatalf("Fetch(...) saved %d documents, want 2", len(repo.docs))
	}

	titles := map[string]bool{}
	for _, d := range repo.docs {
		titles[d.Title] = true
		if d.CanonName != "测试新闻网" {
			t.Errorf("saved document has CanonName %q, want %q", d.CanonName, "测试新闻网")
		}
		if d.Language != languages.ZH_CN {
			t.Errorf("saved document has Language %q, want %q", d.Language, languages.ZH_CN)
		}
	}

	for _, title := range []string{"文章一", "文章二"} {
		if !titles[title] {
			t.Errorf("Fetch(...) did not save an article titled %q", title)
		}
	}

	if len(repo.visited) == 0 {
		t.Errorf("Fetch(...) recorded no visited requests in the repository")
	}
}

func TestFetchArticleLimit(t *testing.T) {
	server := crawlServer(t)
	repo := &crawlRepo{}

	f := NewArticleFetcher(crawlSite())
	f.SetFetcherOptions(&FetcherOptions{Repository: repo})

	err := f.Fetch(FetchOptions{DeparturePoint: server.URL, MaxDepth: 2, ArticleLimit: 1})
	if err != nil {
		t.Fatalf("Fetch(...) returned error: %v", err)
	}

	if len(repo.docs) != 1 {
		t.Errorf("Fetch(...) with ArticleLimit 1 saved %d documents, want 1", len(repo.docs))
	}
}

func TestFetchBeforeTime(t *testing.T) {
	server := crawlServer(t)
	repo := &crawlRepo{}

	f := NewArticleFetcher(crawlSite())
	f.SetFetcherOptions(&FetcherOptions{Repository: repo})

	cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	err := f.Fetch(FetchOptions{DeparturePoint: server.URL, MaxDepth: 2, BeforeTime: cutoff})
	if err != nil {
		t.Fatalf("Fetch(...) returned error: %v", err)
	}

	if len(repo.docs) != 0 {
		t.Errorf("Fetch(...) with a 2020 BeforeTime saved %d documents, want 0", len(repo.docs))
	}
}

func TestFetchWithoutRepository(t *testing.T) {
	f := NewArticleFetcher(crawlSite())

	if err := f.Fetch(FetchOptions{DeparturePoint: "http://localhost/"}); err == nil {
		t.Errorf("Fetch(...) without a repository returned nil, want error")
	}
}
