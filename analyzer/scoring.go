package analyzer

// Rubric point values. Each category awards points independently per
// signal; percentages come from the category maximum so re-tuning a weight
// is a single-constant change.

// Meta category (max 28).
const (
	metaMaxPoints         = 28.0
	pointsTitle           = 5 // first non-empty <title>
	pointsDescription     = 4
	pointsRobotsTag       = 1 // absence implies index,follow; no penalty
	pointsCanonical       = 3
	pointsOpenGraph       = 3 // full og:title + og:description + og:image triple
	pointsTwitterCard     = 2 // full card + title + description triple
	pointsViewportFull    = 3 // width=device-width AND initial-scale=1
	pointsViewportPartial = 1 // width=device-width only
	pointsAuthor          = 1
	pointsCharset         = 1
	pointsLanguage        = 1
	pointsFavicon         = 1
	pointsHreflang        = 3
)

// Content category (max 30).
const (
	contentMaxPoints       = 30.0
	pointsHasH1            = 5
	penaltyMultipleH1      = 2 // also forces the hierarchy flag invalid
	pointsHierarchyValid   = 3 // requires an H1
	pointsHierarchyBroken  = 1 // H1 present but hierarchy invalid
	pointsWordCountFull    = 5 // >= minContentWords
	pointsWordCountPartial = 2 // nonzero but thin
	pointsReadabilityGood  = 5
	pointsReadabilityOkay  = 2
	pointsKeywordsFound    = 5
	pointsAltsGood         = 4 // >= 90% coverage, or no images at all
	pointsAltsPartial      = 2 // >= 50% coverage
)

// Link category (max 15).
const (
	linkMaxPoints      = 15.0
	pointsAnyLinks     = 5
	pointsLinkMix      = 5 // internal and external both present, total > 5
	pointsAnchorVaried = 5 // > 3 distinct anchors, < 50% empty
	pointsAnchorSome   = 2 // > 1 distinct anchor
)

// Technical category (max 27).
const (
	technicalMaxPoints  = 27.0
	pointsHTTPS         = 3
	pointsRobotsFound   = 4
	pointsSitemapFound  = 5
	pointsLoadFast      = 7 // <= goodLoadTime
	pointsLoadOkay      = 3 // <= okLoadTime
	pointsMobileFull    = 5
	pointsMobilePartial = 2
	pointsSchemaPresent = 3
)

// Analysis thresholds.
const (
	minContentWords      = 300
	minReadabilityWords  = 50
	goodReadabilityScore = 60.0
	okayReadabilityScore = 30.0
	goodLoadTime         = 2.0 // seconds
	okLoadTime           = 4.0
	maxKeywords          = 10
)

// Category weights for the overall score; they sum to 1.0.
const (
	weightMeta      = 0.20
	weightContent   = 0.35
	weightLinks     = 0.15
	weightTechnical = 0.30
)

// newCategoryScore derives the percentage from points out of max.
func newCategoryScore(points, max float64) CategoryScore {
	pct := 0.0
	if max > 0 {
		pct = points / max * 100
	}
	return CategoryScore{Points: points, MaxPoints: max, Percentage: pct}
}

// Aggregate combines the four category percentages into the weighted
// overall score. Pure arithmetic; inputs are expected in [0, 100].
func Aggregate(metaPct, contentPct, linkPct, techPct float64) float64 {
	return metaPct*weightMeta +
		contentPct*weightContent +
		linkPct*weightLinks +
		techPct*weightTechnical
}
