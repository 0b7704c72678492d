package fetcher

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"github.com/qwwqe/pyime/entities/corpus"
)

var (
	ErrNoTitle = errors.New("fetcher: article missing title")
	ErrNoBody  = errors.New("fetcher: article missing body")
)

var dateFormat = "2006-01-02 15:04:05"

// Site describes one crawl target. Articles are recognized and picked
// apart with OpenGraph metadata by default; the selector fields below
// override the defaults where a site deviates from them.
type Site struct {
	Name      string // short ascii name, used for logging and the response cache
	CanonName string // canonical source name recorded on documents
	Language  string

	Domains        []string
	DeparturePoint string

	// UniversalTags are appended to every document fetched from the site.
	UniversalTags []string

	// ArticleSelector distinguishes article pages from index pages.
	// When empty, a page counts as an article if its og:type is "article".
	ArticleSelector string

	// TitleTrailer is stripped from the end of extracted titles.
	TitleTrailer *regexp.Regexp

	// BodySelector locates the element containing the article text.
	BodySelector string

	// RemoveSelectors are stripped out of the body element before its
	// paragraphs are collected.
	RemoveSelectors []string

	// AuthorSelector locates the author, either as element text or as a
	// content attribute. DefaultAuthor is used when nothing matches.
	AuthorSelector string
	DefaultAuthor  string

	// TagsSelector locates a metatag whose content attribute holds a
	// comma-separated keyword list. Defaults to meta[name="keywords"].
	TagsSelector string
}

// ArticleFetcher crawls a single site and commits every article it can
// extract to the repository.
type ArticleFetcher struct {
	Site           Site
	FetcherOptions *FetcherOptions
}

func NewArticleFetcher(site Site) *ArticleFetcher {
	return &ArticleFetcher{Site: site}
}

func (f *ArticleFetcher) SetFetcherOptions(fetcherOptions *FetcherOptions) {
	f.FetcherOptions = fetcherOptions
}

func (f *ArticleFetcher) GetFetcherOptions() *FetcherOptions {
	return f.FetcherOptions
}

func (f *ArticleFetcher) logf(format string, a ...interface{}) (n int, err error) {
	return fmt.Printf("["+strings.ToUpper(f.Site.Name)+" FETCHER] "+format, a...)
}

func (f *ArticleFetcher) cacheDir() string {
	if f.Site.Name == "" {
		return ""
	}
	return CacheDir + f.Site.Name + "_cache"
}

func (f *ArticleFetcher) Fetch(fetchOptions FetchOptions) error {
	if f.FetcherOptions == nil || f.FetcherOptions.Repository == nil {
		return errors.New("fetcher: no repository configured")
	}
	repo := f.FetcherOptions.Repository

	c := colly.NewCollector(
		colly.AllowedDomains(f.Site.Domains...),
		colly.CacheDir(f.cacheDir()),
		colly.IgnoreRobotsTxt(),
		colly.MaxDepth(fetchOptions.MaxDepth),
		colly.Async(fetchOptions.Async),
	)

	if fetchOptions.UserAgent != "" {
		c.UserAgent = fetchOptions.UserAgent
	}

	if fetchOptions.Parallelism > 1 {
		c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: fetchOptions.Parallelism})
	}

	if err := c.SetStorage(repo); err != nil {
		return fmt.Errorf("fetcher: setting storage: %w", err)
	}

	var mu sync.Mutex
	saved := 0

	c.OnRequest(func(r *colly.Request) {
		f.logf("VISITING: %s\n", r.URL.String())
	})

	c.OnResponse(func(r *colly.Response) {
		uri := r.Request.URL.String()

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			f.logf("ERROR PROCESSING RESPONSE BODY: %v\n", err)
			return
		}

		if !f.Site.isArticle(doc) {
			return
		}

		articleDate := f.Site.articleDate(doc)

		if !fetchOptions.BeforeTime.IsZero() && !articleDate.Before(fetchOptions.BeforeTime) {
			return
		}

		if !fetchOptions.AfterTime.IsZero() && !articleDate.After(fetchOptions.AfterTime) {
			return
		}

		d, err := f.processArticle(uri, doc)
		if err != nil {
			return
		}

		mu.Lock()
		if fetchOptions.ArticleLimit > 0 && saved >= fetchOptions.ArticleLimit {
			mu.Unlock()
			return
		}
		if err := repo.SaveDocument(d); err != nil {
			mu.Unlock()
			f.logf("ERROR SAVING DOCUMENT: %v\n", err)
			return
		}
		saved++
		mu.Unlock()

		f.logf("SUCCESS: %s\n", uri)
	})

	c.OnHTML(`a[href]`, func(e *colly.HTMLElement) {
		e.Request.Visit(e.Request.AbsoluteURL(e.Attr("href")))
	})

	c.OnError(func(r *colly.Response, err error) {
		f.logf("ERROR: %v\n", err)
	})

	departurePoint := fetchOptions.DeparturePoint
	if departurePoint == "" {
		departurePoint = f.Site.DeparturePoint
	}

	if err := c.Visit(departurePoint); err != nil {
		f.logf("ERROR VISITING %s: %v\n", departurePoint, err)
	}

	if fetchOptions.Async {
		c.Wait()
	}

	f.logf("TOTAL SUCCESSFUL: %d\n", saved)

	return nil
}

// processArticle assembles a corpus document from an article page.
// Title and body are required; everything else falls back to a default.
func (f *ArticleFetcher) processArticle(uri string, doc *goquery.Document) (*corpus.Document, error) {
	f.logf("PROCESS: %s\n", uri)

	d := &corpus.Document{}
	d.Uri = uri

	title := f.Site.articleTitle(doc)
	if title == "" {
		f.logf("FAILED (TITLE): %s\n", uri)
		return nil, ErrNoTitle
	}
	d.Title = title

	date := f.Site.articleDate(doc)
	if date.IsZero() {
		d.Date = time.Now().Format(dateFormat)
	} else {
		d.Date = date.Format(dateFormat)
	}

	author := f.Site.articleAuthor(doc)
	if author == "" {
		author = f.Site.DefaultAuthor
	}
	if author == "" {
		author = f.Site.CanonName
	}
	d.Author = author

	abstract := f.Site.articleAbstract(doc)
	if abstract == "" {
		abstract = d.Title
	}
	d.Abstract = abstract

	tags := f.Site.articleTags(doc)
	tags = append(tags, f.Site.UniversalTags...)

	tagMap := map[string]bool{}
	for _, tag := range tags {
		if !tagMap[tag] {
			tagMap[tag] = true
			d.Tags = append(d.Tags, tag)
		}
	}

	d.CanonName = f.Site.CanonName
	d.Language = f.Site.Language

	body := f.Site.articleBody(doc)
	if body == "" {
		f.logf("FAILED (BODY): %s\n", uri)
		return nil, ErrNoBody
	}
	d.Body = body

	return d, nil
}

// isArticle reports whether the page holds an article. Index and
// section pages fail this check and are only mined for links.
// Default format:
// <meta property="og:type" content="article" />
func (s *Site) isArticle(doc *goquery.Document) bool {
	selector := s.ArticleSelector
	if selector == "" {
		selector = `meta[property="og:type"][content="article"]`
	}
	return doc.Find(selector).Length() > 0
}

// articleTitle returns the article title as a string.
// Format:
// <meta property="og:title" content="..." />
// with the document <title> as a fallback.
func (s *Site) articleTitle(doc *goquery.Document) string {
	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = strings.TrimSpace(doc.Find(`title`).First().Text())
	}

	if s.TitleTrailer != nil {
		title = s.TitleTrailer.ReplaceAllString(title, "")
	}

	return strings.TrimSpace(title)
}

// articleDate returns the Time representation of the article's
// publication date.
// Format:
// <meta property="article:published_time" content="2019-06-22T05:22:32+00:00" />
// with meta[name="pubdate"] as a fallback.
func (s *Site) articleDate(doc *goquery.Document) time.Time {
	rawDate := metaContent(doc, `meta[property="article:published_time"]`)
	if rawDate == "" {
		rawDate = metaContent(doc, `meta[name="pubdate"]`)
	}

	date, _ := time.Parse(time.RFC3339, rawDate)
	return date
}

// articleAbstract returns the article abstract as a string.
// Format:
// <meta property="og:description" content="..." />
// with meta[name="description"] as a fallback.
func (s *Site) articleAbstract(doc *goquery.Document) string {
	abstract := metaContent(doc, `meta[property="og:description"]`)
	if abstract == "" {
		abstract = metaContent(doc, `meta[name="description"]`)
	}
	return abstract
}

// articleTags returns the article's keywords.
// Format:
// <meta name="keywords" content="中国,科技,航天" />
func (s *Site) articleTags(doc *goquery.Document) []string {
	selector := s.TagsSelector
	if selector == "" {
		selector = `meta[name="keywords"]`
	}

	tags := []string{}
	tagString := metaContent(doc, selector)
	for _, tag := range strings.FieldsFunc(tagString, isTagSeparator) {
		trimTag := strings.TrimSpace(tag)
		if trimTag != "" {
			tags = append(tags, trimTag)
		}
	}

	return tags
}

// Keyword lists on Chinese sites mix ascii and fullwidth commas.
func isTagSeparator(r rune) bool {
	return r == ',' || r == '，'
}

// articleAuthor returns the author, taking element text if the matched
// element has any and its content attribute otherwise.
func (s *Site) articleAuthor(doc *goquery.Document) string {
	if s.AuthorSelector == "" {
		return ""
	}

	var author string
	doc.Find(s.AuthorSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			text, _ = sel.Attr("content")
		}
		if text != "" {
			author = text
		}
	})

	return strings.TrimSpace(author)
}

// articleBody returns the article body as a string, paragraphs joined
// by blank lines.
func (s *Site) articleBody(doc *goquery.Document) string {
	body := doc.Find(s.BodySelector).First()
	if body.Length() == 0 {
		return ""
	}

	for _, selector := range s.RemoveSelectors {
		body.Find(selector).Remove()
	}

	paras := []string{}
	body.Find(`p, h1, h2, h3, h4, h5, h6`).Each(func(_ int, sel *goquery.Selection) {
		trimmedText := strings.TrimSpace(sel.Text())
		if trimmedText != "" {
			paras = append(paras, trimmedText)
		}
	})

	return strings.Join(paras, "\n\n")
}

func metaContent(doc *goquery.Document, selector string) string {
	var content string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if c, exists := sel.Attr("content"); exists {
			content = c
		}
	})
	return content
}
