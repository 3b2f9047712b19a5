package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Regions stripped from the body before text extraction; they hold
// navigation and boilerplate rather than page content.
const nonContentSelector = "script, style, nav, footer, aside"

// AnalyzeContent examines heading structure, body text, readability,
// keyword frequency and image alt coverage, scored against the 30-point
// content rubric. The document itself is never mutated.
func AnalyzeContent(doc *goquery.Document) (*ContentData, CategoryScore) {
	content := &ContentData{
		Headings:        make(map[string][]string),
		HierarchyValid:  true,
		ReadabilityDesc: "Not calculated",
	}
	points := 0.0

	// Headings, in document order. The hierarchy flag is a one-way latch:
	// a jump of more than one level down (H1 -> H3) with a nonzero
	// previous level flags it and nothing un-flags it.
	hasH1 := false
	lastLevel := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		level := int(name[1] - '0')
		content.Headings[name] = append(content.Headings[name], text)
		if name == "h1" {
			hasH1 = true
		}
		if level > lastLevel+1 && lastLevel != 0 {
			content.HierarchyValid = false
		}
		lastLevel = level
	})
	content.H1Count = len(content.Headings["h1"])

	if hasH1 {
		points += pointsHasH1
		if content.H1Count > 1 {
			points -= penaltyMultipleH1
			content.HierarchyValid = false
		}
	}
	if hasH1 && content.HierarchyValid {
		points += pointsHierarchyValid
	} else if hasH1 {
		points += pointsHierarchyBroken
	}

	content.Text = extractBodyText(doc)
	content.WordCount = len(strings.Fields(content.Text))

	if content.WordCount >= minContentWords {
		points += pointsWordCountFull
	} else if content.WordCount > 0 {
		points += pointsWordCountPartial
	}

	// Readability is unreliable on short text.
	if content.WordCount > minReadabilityWords {
		if score, ok := fleschReadingEase(content.Text); ok {
			content.Readability = &score
			switch {
			case score >= goodReadabilityScore:
				content.ReadabilityDesc = fmt.Sprintf("Good (%.1f - Fairly easy to read)", score)
				points += pointsReadabilityGood
			case score >= okayReadabilityScore:
				content.ReadabilityDesc = fmt.Sprintf("Okay (%.1f - Plain English)", score)
				points += pointsReadabilityOkay
			default:
				content.ReadabilityDesc = fmt.Sprintf("Difficult (%.1f - Very confusing)", score)
			}
		} else {
			content.ReadabilityDesc = "Calculation Error"
		}
	} else {
		content.ReadabilityDesc = "Not enough content to calculate"
	}

	if content.WordCount > 0 {
		tokens := filterStopwords(tokenize(normalizeText(content.Text)))
		content.TopKeywords = topTerms(tokens, maxKeywords)
		if len(content.TopKeywords) > 0 {
			points += pointsKeywordsFound
		}
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "No Source")
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		img := ImageAlt{Src: src, Alt: alt, HasAlt: alt != ""}
		content.ImageAlts.Total++
		if img.HasAlt {
			content.ImageAlts.WithAlt++
		} else {
			content.ImageAlts.MissingAlt++
		}
		content.ImageAlts.Images = append(content.ImageAlts.Images, img)
	})

	if content.ImageAlts.Total > 0 {
		coverage := float64(content.ImageAlts.WithAlt) / float64(content.ImageAlts.Total) * 100
		if coverage >= 90 {
			points += pointsAltsGood
		} else if coverage >= 50 {
			points += pointsAltsPartial
		}
	} else {
		// No images is neutral, not a defect.
		points += pointsAltsGood
	}

	return content, newCategoryScore(points, contentMaxPoints)
}

// extractBodyText returns the visible body text with non-content regions
// removed, text nodes joined by single spaces. Works on a clone so the
// shared document stays intact for the other analyzers.
func extractBodyText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	clone := body.Clone()
	clone.Find(nonContentSelector).Remove()

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, whitespaceRe.ReplaceAllString(t, " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range clone.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
