package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AnalyzeTechnical runs the crawlability and performance checks against
// the 27-point technical rubric. It reads the already-built MetaData for
// the viewport value and uses prober for the robots.txt and sitemap
// fetches; probe failures degrade the affected check's status instead of
// failing the analysis.
func AnalyzeTechnical(ctx context.Context, finalURL string, doc *goquery.Document, elapsedSeconds float64, meta *MetaData, prober Prober) (*TechnicalData, CategoryScore) {
	tech := &TechnicalData{LoadTime: elapsedSeconds}
	points := 0.0

	parsed, err := url.Parse(finalURL)
	if err != nil {
		parsed = &url.URL{}
	}
	origin := parsed.Scheme + "://" + parsed.Host

	if parsed.Scheme == "https" {
		tech.HTTPS = true
		points += pointsHTTPS
	}

	sitemapDirective := checkRobots(ctx, origin, tech, prober)
	if tech.Robots.Found {
		points += pointsRobotsFound
	}

	if checkSitemap(ctx, origin, sitemapDirective, tech, prober) {
		points += pointsSitemapFound
	}

	switch {
	case elapsedSeconds < 0:
		tech.LoadTimeStatus = "error"
	case elapsedSeconds <= goodLoadTime:
		tech.LoadTimeStatus = "good"
		points += pointsLoadFast
	case elapsedSeconds <= okLoadTime:
		tech.LoadTimeStatus = "warning"
		points += pointsLoadOkay
	default:
		tech.LoadTimeStatus = "bad"
	}

	points += checkMobile(meta, tech)
	points += checkSchema(doc, tech)

	return tech, newCategoryScore(points, technicalMaxPoints)
}

// checkRobots fetches /robots.txt and returns any Sitemap directive found
// in its body.
func checkRobots(ctx context.Context, origin string, tech *TechnicalData, prober Prober) string {
	tech.Robots.URL = origin + "/robots.txt"

	status, body, err := prober.FetchRobots(ctx, tech.Robots.URL)
	if err != nil {
		tech.Robots.Status = fmt.Sprintf("Error fetching: %v", err)
		return ""
	}

	switch status {
	case 200:
		tech.Robots.Found = true
		tech.Robots.Status = "Found"
		tech.Robots.Content = body
	case 404:
		tech.Robots.Status = "Not Found"
	default:
		tech.Robots.Status = fmt.Sprintf("Error (Status: %d)", status)
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			return strings.TrimSpace(line[len("sitemap:"):])
		}
	}
	return ""
}

// checkSitemap probes candidate sitemap URLs in order, stopping on the
// first 200. A robots.txt directive takes priority over the common
// locations.
func checkSitemap(ctx context.Context, origin, directive string, tech *TechnicalData, prober Prober) bool {
	// A declared sitemap is authoritative; common locations are only
	// guessed at when robots.txt names nothing.
	var candidates []string
	if directive != "" {
		tech.Sitemap.FoundInRobots = true
		candidates = []string{directive}
	} else {
		candidates = []string{origin + "/sitemap.xml", origin + "/sitemap_index.xml"}
	}

	for _, candidate := range candidates {
		tech.Sitemap.URL = candidate
		status, err := prober.ProbeSitemap(ctx, candidate)
		if err != nil {
			tech.Sitemap.Status = "Error Fetching"
			continue // the next candidate may still work
		}
		switch status {
		case 200:
			tech.Sitemap.Found = true
			tech.Sitemap.Status = "Found"
			return true
		case 404:
			tech.Sitemap.Status = "Not Found"
		default:
			tech.Sitemap.Status = fmt.Sprintf("Error (Status: %d)", status)
		}
	}

	if directive == "" {
		tech.Sitemap.Status = "Not Found (Common Locations)"
	}
	return false
}

func checkMobile(meta *MetaData, tech *TechnicalData) float64 {
	viewport := ""
	if meta != nil {
		viewport = meta.Viewport
	}
	switch {
	case viewport == "":
		tech.Mobile = MobileCheck{Status: "bad", Reason: "Viewport meta tag not found."}
		return 0
	case strings.Contains(viewport, "width=device-width") && strings.Contains(viewport, "initial-scale=1"):
		tech.Mobile = MobileCheck{Status: "good", Reason: "Viewport tag correctly configured."}
		return pointsMobileFull
	case strings.Contains(viewport, "width=device-width"):
		tech.Mobile = MobileCheck{Status: "warning", Reason: "Viewport tag found, but might lack initial-scale=1."}
		return pointsMobilePartial
	default:
		tech.Mobile = MobileCheck{Status: "bad", Reason: "Viewport tag present but seems incorrectly configured."}
		return 0
	}
}

// checkSchema finds ld+json blocks. A block that fails to parse still
// counts as present, since the markup exists even when malformed.
func checkSchema(doc *goquery.Document, tech *TechnicalData) float64 {
	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		tech.Schema.Present = true

		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			tech.Schema.Types = append(tech.Schema.Types, "Error Parsing")
			return
		}

		switch v := payload.(type) {
		case map[string]interface{}:
			appendSchemaType(tech, v)
		case []interface{}:
			for _, item := range v {
				if obj, ok := item.(map[string]interface{}); ok {
					appendSchemaType(tech, obj)
				}
			}
		}
	})

	if tech.Schema.Present {
		return pointsSchemaPresent
	}
	return 0
}

func appendSchemaType(tech *TechnicalData, obj map[string]interface{}) {
	switch t := obj["@type"].(type) {
	case string:
		tech.Schema.Types = append(tech.Schema.Types, t)
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				tech.Schema.Types = append(tech.Schema.Types, s)
			}
		}
	}
}
