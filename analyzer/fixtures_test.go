package analyzer

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return doc
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Failed to parse URL %q: %v", raw, err)
	}
	return u
}

// fullFeaturedPage exercises every scored signal: complete head metadata,
// a single H1 with clean hierarchy, a 350+ word body, mixed links and
// structured data.
func fullFeaturedPage() string {
	body := strings.Repeat("The quick brown fox jumps over the lazy dog near the quiet river bank. ", 28)
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Example Product Page</title>
<meta name="description" content="A detailed product description page.">
<meta name="keywords" content="product, example">
<meta name="robots" content="index, follow">
<meta name="author" content="Jordan Example">
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="canonical" href="/products/widget">
<link rel="icon" href="/favicon.ico">
<link rel="alternate" hreflang="de" href="/de/products/widget">
<meta property="og:title" content="Example Product">
<meta property="og:description" content="The best widget available.">
<meta property="og:image" content="https://a.com/widget.png">
<meta name="twitter:card" content="summary">
<meta name="twitter:title" content="Example Product">
<meta name="twitter:description" content="The best widget available.">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Product","name":"Widget"}</script>
</head>
<body>
<h1>Example Product</h1>
<h2>Overview</h2>
<p>` + body + `</p>
<h2>Details</h2>
<h3>Specifications</h3>
<p>` + body + `</p>
<a href="/about">About us</a>
<a href="/contact">Contact page</a>
<a href="/pricing">Pricing details</a>
<a href="https://b.com/review">Independent review</a>
<a href="https://c.com/docs">External docs</a>
<a href="https://d.com/news">Industry news</a>
</body>
</html>`
}
