package analyzer

import "fmt"

// buildRecommendations derives advice strings from the report findings.
// Ordering follows the category order of the report.
func buildRecommendations(r *Report) []string {
	var recs []string

	if r.Meta.Title == "" {
		recs = append(recs, "Add a title tag to your page")
	}
	if r.Meta.Description == "" {
		recs = append(recs, "Add a meta description to control how the page appears in search results")
	}
	if r.Meta.Canonical == "" {
		recs = append(recs, "Declare a canonical URL to avoid duplicate content issues")
	}
	if r.Meta.OGTitle == "" || r.Meta.OGDescription == "" || r.Meta.OGImage == "" {
		recs = append(recs, "Add the full Open Graph triple (og:title, og:description, og:image) for link previews")
	}
	if r.Meta.TwitterCard == "" || r.Meta.TwitterTitle == "" || r.Meta.TwitterDescription == "" {
		recs = append(recs, "Add Twitter Card tags (twitter:card, twitter:title, twitter:description)")
	}
	if r.Meta.Language == "" {
		recs = append(recs, "Set the lang attribute on the html element")
	}

	switch {
	case r.Content.H1Count == 0:
		recs = append(recs, "Add an H1 heading; it defines the main topic of the page")
	case r.Content.H1Count > 1:
		recs = append(recs, fmt.Sprintf("Found %d H1 headings - use only one per page", r.Content.H1Count))
	}
	if r.Content.H1Count > 0 && !r.Content.HierarchyValid {
		recs = append(recs, "Fix the heading hierarchy: avoid skipping levels (e.g. H1 followed by H3)")
	}
	if r.Content.WordCount < minContentWords {
		recs = append(recs, fmt.Sprintf("Add more content (currently %d words, aim for at least %d)", r.Content.WordCount, minContentWords))
	}
	if r.Content.ImageAlts.MissingAlt > 0 {
		recs = append(recs, fmt.Sprintf("Add alt text to %d image(s) missing it", r.Content.ImageAlts.MissingAlt))
	}

	if r.Links.InternalCount == 0 && r.Links.ExternalCount == 0 {
		recs = append(recs, "Add links: internal links aid navigation, external links add credibility")
	} else {
		if r.Links.InternalCount == 0 {
			recs = append(recs, "Add internal links to other pages on your site")
		}
		if r.Links.ExternalCount == 0 {
			recs = append(recs, "Link to relevant authoritative external sources")
		}
	}

	if !r.Technical.HTTPS {
		recs = append(recs, "Serve the page over HTTPS")
	}
	if !r.Technical.Robots.Found {
		recs = append(recs, "Add a robots.txt file at the site root")
	}
	if !r.Technical.Sitemap.Found {
		recs = append(recs, "Publish a sitemap.xml and declare it in robots.txt")
	}
	if r.Technical.LoadTimeStatus == "warning" || r.Technical.LoadTimeStatus == "bad" {
		recs = append(recs, fmt.Sprintf("Improve page load time (%.2fs; aim for under %.1fs)", r.Technical.LoadTime, goodLoadTime))
	}
	if r.Technical.Mobile.Status != "good" {
		recs = append(recs, "Add a viewport meta tag with width=device-width and initial-scale=1")
	}
	if !r.Technical.Schema.Present {
		recs = append(recs, "Add structured data (application/ld+json) to qualify for rich results")
	}

	return recs
}
