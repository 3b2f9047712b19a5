package analyzer

import (
	"math"
	"testing"
)

func TestAnalyzeMetaFullPage(t *testing.T) {
	doc := parseDoc(t, fullFeaturedPage())
	base := mustParseURL(t, "https://a.com/products/widget")

	meta, score := AnalyzeMeta(doc, base)

	if meta.Title != "Example Product Page" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description == "" || meta.Author == "" || meta.Robots == "" {
		t.Errorf("Missing extracted fields: %+v", meta)
	}
	if meta.Canonical != "https://a.com/products/widget" {
		t.Errorf("Canonical = %q, want resolved absolute URL", meta.Canonical)
	}
	if meta.Favicon != "https://a.com/favicon.ico" {
		t.Errorf("Favicon = %q", meta.Favicon)
	}
	if meta.Charset != "utf-8" || meta.Language != "en" {
		t.Errorf("Charset/Language = %q/%q", meta.Charset, meta.Language)
	}
	if len(meta.Alternates) != 1 || meta.Alternates[0].Hreflang != "de" {
		t.Errorf("Alternates = %v", meta.Alternates)
	}
	if meta.Alternates[0].Href != "https://a.com/de/products/widget" {
		t.Errorf("Alternate href not resolved: %q", meta.Alternates[0].Href)
	}

	// Every scored signal present: the full 28 points.
	if score.Points != metaMaxPoints {
		t.Errorf("Points = %v, want %v", score.Points, metaMaxPoints)
	}
	if math.Abs(score.Percentage-100) > 1e-9 {
		t.Errorf("Percentage = %v, want 100", score.Percentage)
	}
}

func TestAnalyzeMetaEmptyPage(t *testing.T) {
	doc := parseDoc(t, "<html><head></head><body></body></html>")
	base := mustParseURL(t, "https://a.com/")

	meta, score := AnalyzeMeta(doc, base)

	if meta.Title != "" || meta.Description != "" {
		t.Errorf("Expected empty fields, got %+v", meta)
	}
	if score.Points != 0 {
		t.Errorf("Points = %v, want 0", score.Points)
	}
	if score.Percentage < 0 || score.Percentage > 100 {
		t.Errorf("Percentage %v out of range", score.Percentage)
	}
}

func TestAnalyzeMetaViewportScoring(t *testing.T) {
	tests := []struct {
		name     string
		viewport string
		want     float64
	}{
		{"Full", `<meta name="viewport" content="width=device-width, initial-scale=1">`, pointsViewportFull},
		{"Partial", `<meta name="viewport" content="width=device-width">`, pointsViewportPartial},
		{"Wrong", `<meta name="viewport" content="width=1024">`, 0},
		{"Absent", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, "<html><head>"+tt.viewport+"</head><body></body></html>")
			_, score := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))
			if score.Points != tt.want {
				t.Errorf("Points = %v, want %v", score.Points, tt.want)
			}
		})
	}
}

func TestAnalyzeMetaCharsetFallback(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<meta http-equiv="Content-Type" content="text/html; charset=iso-8859-1">
</head><body></body></html>`)

	meta, score := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))

	if meta.Charset != "iso-8859-1" {
		t.Errorf("Charset = %q, want iso-8859-1", meta.Charset)
	}
	if score.Points != pointsCharset {
		t.Errorf("Points = %v, want %v", score.Points, float64(pointsCharset))
	}
}

func TestAnalyzeMetaKeywordsNotScored(t *testing.T) {
	doc := parseDoc(t, `<html><head><meta name="keywords" content="a, b, c"></head><body></body></html>`)

	meta, score := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))

	if meta.Keywords != "a, b, c" {
		t.Errorf("Keywords = %q", meta.Keywords)
	}
	if score.Points != 0 {
		t.Errorf("Keywords tag should not score, got %v points", score.Points)
	}
}

func TestAnalyzeMetaPartialSocialTriples(t *testing.T) {
	// Missing og:image and twitter:description: neither triple scores.
	doc := parseDoc(t, `<html><head>
<meta property="og:title" content="T">
<meta property="og:description" content="D">
<meta name="twitter:card" content="summary">
<meta name="twitter:title" content="T">
</head><body></body></html>`)

	_, score := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))
	if score.Points != 0 {
		t.Errorf("Incomplete triples should not score, got %v", score.Points)
	}
}

func TestAnalyzeMetaFaviconPreference(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<link rel="apple-touch-icon" href="/apple.png">
<link rel="icon" href="/main.ico">
</head><body></body></html>`)

	meta, _ := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))
	if meta.Favicon != "https://a.com/main.ico" {
		t.Errorf("Favicon = %q, want rel=icon to win", meta.Favicon)
	}
}

func TestAnalyzeMetaFaviconFallbackToAnyIconRel(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<link rel="apple-touch-icon" href="/apple.png">
</head><body></body></html>`)

	meta, _ := AnalyzeMeta(doc, mustParseURL(t, "https://a.com/"))
	if meta.Favicon != "https://a.com/apple.png" {
		t.Errorf("Favicon = %q, want any rel containing icon", meta.Favicon)
	}
}
