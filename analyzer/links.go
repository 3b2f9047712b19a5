package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AnalyzeLinks resolves every anchor against baseURL and classifies it as
// internal, external, or other (non-http schemes such as mailto and tel).
// Other links stay in the full list but are excluded from counts and
// scoring. Scored against the 15-point link rubric.
func AnalyzeLinks(doc *goquery.Document, baseURL *url.URL) (*LinkData, CategoryScore) {
	links := &LinkData{}
	anchors := newOrderedCounter()
	baseDomain := ""
	if baseURL != nil {
		baseDomain = baseURL.Host
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		text := strings.TrimSpace(s.Text())
		resolved := resolveRef(baseURL, href)

		if text != "" {
			anchors.add(text)
		} else {
			anchors.add(EmptyAnchorMarker)
		}

		link := Link{Href: resolved, Text: text}
		parsed, err := url.Parse(resolved)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			link.Type = LinkOther
			links.All = append(links.All, link)
			return
		}

		if parsed.Host == baseDomain {
			link.Type = LinkInternal
			links.Internal = append(links.Internal, resolved)
			links.InternalCount++
		} else {
			link.Type = LinkExternal
			links.External = append(links.External, resolved)
			links.ExternalCount++
		}
		links.All = append(links.All, link)
	})

	links.AnchorTexts = anchors.mostCommon(-1)

	points := 0.0
	total := links.InternalCount + links.ExternalCount
	if total > 0 {
		points += pointsAnyLinks

		if links.InternalCount > 0 && links.ExternalCount > 0 && total > 5 {
			points += pointsLinkMix
		}

		emptyCount := anchors.count(EmptyAnchorMarker)
		if anchors.len() > 3 && float64(emptyCount) < float64(total)*0.5 {
			points += pointsAnchorVaried
		} else if anchors.len() > 1 {
			points += pointsAnchorSome
		}
	}

	return links, newCategoryScore(points, linkMaxPoints)
}
