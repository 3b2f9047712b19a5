package analyzer

import (
	"testing"
)

func TestLinkClassification(t *testing.T) {
	doc := parseDoc(t, page(`
<a href="/about">About</a>
<a href="https://a.com/pricing">Pricing</a>
<a href="https://b.com/x">External</a>
<a href="mailto:x@y.com">Mail</a>
<a href="tel:+123456789">Call</a>`))
	base := mustParseURL(t, "https://a.com/")

	links, _ := AnalyzeLinks(doc, base)

	if links.InternalCount != 2 {
		t.Errorf("InternalCount = %d, want 2", links.InternalCount)
	}
	if links.ExternalCount != 1 {
		t.Errorf("ExternalCount = %d, want 1", links.ExternalCount)
	}
	if len(links.All) != 5 {
		t.Fatalf("All = %d records, want 5", len(links.All))
	}

	if links.Internal[0] != "https://a.com/about" {
		t.Errorf("Relative link not resolved: %q", links.Internal[0])
	}

	types := map[string]int{}
	for _, l := range links.All {
		types[l.Type]++
	}
	if types[LinkOther] != 2 {
		t.Errorf("Expected 2 other-scheme links, got %d", types[LinkOther])
	}
}

func TestEmptyAnchorMarker(t *testing.T) {
	doc := parseDoc(t, page(`<a href="/a"></a><a href="/b">Real text</a>`))
	links, _ := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))

	found := false
	for _, ac := range links.AnchorTexts {
		if ac.Text == EmptyAnchorMarker && ac.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected empty anchor marker in %v", links.AnchorTexts)
	}
}

func TestLinkScoring(t *testing.T) {
	t.Run("NoLinks", func(t *testing.T) {
		doc := parseDoc(t, page("<p>no links</p>"))
		_, score := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))
		if score.Points != 0 {
			t.Errorf("Points = %v, want 0", score.Points)
		}
	})

	t.Run("OnlyOtherSchemes", func(t *testing.T) {
		doc := parseDoc(t, page(`<a href="mailto:a@b.c">Mail</a>`))
		_, score := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))
		if score.Points != 0 {
			t.Errorf("Other-scheme links should not score, got %v", score.Points)
		}
	})

	t.Run("FullMix", func(t *testing.T) {
		doc := parseDoc(t, page(`
<a href="/one">First page</a>
<a href="/two">Second page</a>
<a href="/three">Third page</a>
<a href="https://b.com/a">Review site</a>
<a href="https://c.com/b">Docs site</a>
<a href="https://d.com/c">News site</a>`))
		_, score := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))

		// Any links +5, mix over five links +5, varied anchors +5.
		if score.Points != linkMaxPoints {
			t.Errorf("Points = %v, want %v", score.Points, linkMaxPoints)
		}
		if score.Percentage != 100 {
			t.Errorf("Percentage = %v, want 100", score.Percentage)
		}
	})

	t.Run("SomeAnchorVariety", func(t *testing.T) {
		doc := parseDoc(t, page(`<a href="/a">One</a><a href="/b">Two</a>`))
		_, score := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))

		// Any links +5; two distinct anchors only reach the lesser award.
		want := float64(pointsAnyLinks + pointsAnchorSome)
		if score.Points != want {
			t.Errorf("Points = %v, want %v", score.Points, want)
		}
	})

	t.Run("MostlyEmptyAnchors", func(t *testing.T) {
		doc := parseDoc(t, page(`
<a href="/a"></a><a href="/b"></a><a href="/c"></a><a href="/d"></a>
<a href="/e">One</a><a href="/f">Two</a><a href="/g">Three</a>`))
		_, score := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))

		// 4 distinct anchor texts but 4 of 7 links empty: no variety
		// bonus, falls back to the lesser award. No external links, so no
		// mix bonus either.
		want := float64(pointsAnyLinks + pointsAnchorSome)
		if score.Points != want {
			t.Errorf("Points = %v, want %v", score.Points, want)
		}
	})
}

func TestAnchorTextOrdering(t *testing.T) {
	doc := parseDoc(t, page(`
<a href="/1">Repeat</a>
<a href="/2">Unique one</a>
<a href="/3">Repeat</a>
<a href="/4">Unique two</a>`))
	links, _ := AnalyzeLinks(doc, mustParseURL(t, "https://a.com/"))

	if links.AnchorTexts[0].Text != "Repeat" || links.AnchorTexts[0].Count != 2 {
		t.Errorf("Expected Repeat:2 first, got %v", links.AnchorTexts[0])
	}
	// Count ties keep first-occurrence order.
	if links.AnchorTexts[1].Text != "Unique one" {
		t.Errorf("Tie-break broken: %v", links.AnchorTexts)
	}
}
