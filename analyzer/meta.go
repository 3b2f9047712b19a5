package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AnalyzeMeta extracts document metadata and scores it against the
// 28-point meta rubric. Relative canonical, favicon and hreflang URLs are
// resolved against baseURL.
func AnalyzeMeta(doc *goquery.Document, baseURL *url.URL) (*MetaData, CategoryScore) {
	meta := &MetaData{}
	points := 0.0

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if meta.Title != "" {
		points += pointsTitle
	}

	if desc, ok := attrContent(doc, "meta[name='description']"); ok {
		meta.Description = desc
		points += pointsDescription
	}

	// Captured for the report, never scored: search engines ignore it.
	meta.Keywords, _ = attrContent(doc, "meta[name='keywords']")

	if robots, ok := attrContent(doc, "meta[name='robots']"); ok {
		meta.Robots = robots
		points += pointsRobotsTag
	}

	if href, ok := doc.Find("link[rel='canonical']").First().Attr("href"); ok && href != "" {
		meta.Canonical = resolveRef(baseURL, href)
		points += pointsCanonical
	}

	doc.Find("meta[property^='og:']").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		switch prop {
		case "og:title":
			meta.OGTitle = content
		case "og:description":
			meta.OGDescription = content
		case "og:image":
			meta.OGImage = content
		case "og:url":
			meta.OGURL = content
		}
	})
	if meta.OGTitle != "" && meta.OGDescription != "" && meta.OGImage != "" {
		points += pointsOpenGraph
	}

	doc.Find("meta[name^='twitter:']").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		switch name {
		case "twitter:card":
			meta.TwitterCard = content
		case "twitter:title":
			meta.TwitterTitle = content
		case "twitter:description":
			meta.TwitterDescription = content
		case "twitter:image":
			meta.TwitterImage = content
		}
	})
	if meta.TwitterCard != "" && meta.TwitterTitle != "" && meta.TwitterDescription != "" {
		points += pointsTwitterCard
	}

	if viewport, ok := attrContent(doc, "meta[name='viewport']"); ok {
		meta.Viewport = viewport
		if strings.Contains(viewport, "width=device-width") && strings.Contains(viewport, "initial-scale=1") {
			points += pointsViewportFull
		} else if strings.Contains(viewport, "width=device-width") {
			points += pointsViewportPartial
		}
	}

	if author, ok := attrContent(doc, "meta[name='author']"); ok {
		meta.Author = author
		points += pointsAuthor
	}

	if charset, ok := doc.Find("meta[charset]").First().Attr("charset"); ok && strings.TrimSpace(charset) != "" {
		meta.Charset = strings.TrimSpace(charset)
		points += pointsCharset
	} else if content, ok := attrContent(doc, "meta[http-equiv='Content-Type']"); ok {
		// Legacy declaration form: content="text/html; charset=utf-8".
		if idx := strings.LastIndex(content, "charset="); idx >= 0 {
			meta.Charset = strings.TrimSpace(content[idx+len("charset="):])
			points += pointsCharset
		}
	}

	if lang, ok := doc.Find("html").First().Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		meta.Language = strings.TrimSpace(lang)
		points += pointsLanguage
	}

	if favicon := findFavicon(doc, baseURL); favicon != "" {
		meta.Favicon = favicon
		points += pointsFavicon
	}

	doc.Find("link[rel='alternate'][hreflang][href]").Each(func(_ int, s *goquery.Selection) {
		meta.Alternates = append(meta.Alternates, AlternateLink{
			Hreflang: s.AttrOr("hreflang", ""),
			Href:     resolveRef(baseURL, s.AttrOr("href", "")),
		})
	})
	if len(meta.Alternates) > 0 {
		points += pointsHreflang
	}

	return meta, newCategoryScore(points, metaMaxPoints)
}

// attrContent returns the trimmed content attribute of the first match.
func attrContent(doc *goquery.Document, selector string) (string, bool) {
	content, ok := doc.Find(selector).First().Attr("content")
	content = strings.TrimSpace(content)
	return content, ok && content != ""
}

// findFavicon prefers rel=icon, then rel="shortcut icon", then any link
// whose rel mentions icon.
func findFavicon(doc *goquery.Document, baseURL *url.URL) string {
	for _, sel := range []string{"link[rel='icon']", "link[rel='shortcut icon']"} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && href != "" {
			return resolveRef(baseURL, href)
		}
	}
	favicon := ""
	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "icon") {
			return true
		}
		if href, ok := s.Attr("href"); ok && href != "" {
			favicon = resolveRef(baseURL, href)
			return false
		}
		return true
	})
	return favicon
}

// resolveRef resolves href against base, falling back to the raw value
// when it does not parse.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
