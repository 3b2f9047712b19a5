package analyzer

// CategoryScore holds the points awarded for one scoring category.
// Percentage is always in [0, 100] and equals 100*Points/MaxPoints
// (0 when MaxPoints is 0).
type CategoryScore struct {
	Points     float64 `json:"points"`
	MaxPoints  float64 `json:"maxPoints"`
	Percentage float64 `json:"percentage"`
}

// AlternateLink is one hreflang alternate declared in the document head.
type AlternateLink struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// MetaData holds everything extracted from the document head. Fields are
// empty strings when the corresponding tag is missing; the keywords tag is
// captured for reporting but never scored.
type MetaData struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Keywords           string          `json:"keywords"`
	Robots             string          `json:"robots"`
	Canonical          string          `json:"canonical"`
	OGTitle            string          `json:"ogTitle"`
	OGDescription      string          `json:"ogDescription"`
	OGImage            string          `json:"ogImage"`
	OGURL              string          `json:"ogUrl"`
	TwitterCard        string          `json:"twitterCard"`
	TwitterTitle       string          `json:"twitterTitle"`
	TwitterDescription string          `json:"twitterDescription"`
	TwitterImage       string          `json:"twitterImage"`
	Viewport           string          `json:"viewport"`
	Author             string          `json:"author"`
	Charset            string          `json:"charset"`
	Language           string          `json:"language"`
	Favicon            string          `json:"favicon"`
	Alternates         []AlternateLink `json:"alternates"`
}

// Keyword is one ranked term from the body text. Density is the share of
// the term among all stop-word-filtered tokens, in percent.
type Keyword struct {
	Term    string  `json:"term"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// ImageAlt records the alt attribute state of a single img element.
type ImageAlt struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"hasAlt"`
}

// ImageAltSummary tallies alt-text coverage across all images.
type ImageAltSummary struct {
	Total      int        `json:"total"`
	WithAlt    int        `json:"withAlt"`
	MissingAlt int        `json:"missingAlt"`
	Images     []ImageAlt `json:"images"`
}

// ContentData holds the on-page content findings.
type ContentData struct {
	Headings        map[string][]string `json:"headings"` // "h1".."h6" -> heading texts in document order
	H1Count         int                 `json:"h1Count"`
	HierarchyValid  bool                `json:"hierarchyValid"`
	WordCount       int                 `json:"wordCount"`
	Text            string              `json:"-"`
	Readability     *float64            `json:"readability"`
	ReadabilityDesc string              `json:"readabilityDesc"`
	TopKeywords     []Keyword           `json:"topKeywords"`
	ImageAlts       ImageAltSummary     `json:"imageAlts"`
}

// Link classification values.
const (
	LinkInternal = "internal"
	LinkExternal = "external"
	LinkOther    = "other" // mailto:, tel:, fragment-only, etc.
)

// EmptyAnchorMarker stands in for blank anchor text in the frequency tally.
const EmptyAnchorMarker = "[Empty Anchor]"

// Link is one resolved anchor element.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// AnchorCount is one entry of the anchor-text frequency tally, in first
// occurrence order.
type AnchorCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// LinkData holds classified outbound links and the anchor-text tally.
type LinkData struct {
	Internal      []string      `json:"internal"`
	External      []string      `json:"external"`
	InternalCount int           `json:"internalCount"`
	ExternalCount int           `json:"externalCount"`
	AnchorTexts   []AnchorCount `json:"anchorTexts"`
	All           []Link        `json:"all"`
}

// RobotsCheck is the robots.txt verdict. Status is "Found", "Not Found" or
// an error description; Content is the body when found.
type RobotsCheck struct {
	URL     string `json:"url"`
	Status  string `json:"status"`
	Content string `json:"content,omitempty"`
	Found   bool   `json:"found"`
}

// SitemapCheck is the sitemap.xml verdict. URL is the last candidate
// probed; FoundInRobots reports whether a robots.txt Sitemap directive
// supplied the location.
type SitemapCheck struct {
	URL           string `json:"url"`
	Status        string `json:"status"`
	Found         bool   `json:"found"`
	FoundInRobots bool   `json:"foundInRobots"`
}

// MobileCheck is the viewport-based mobile-friendliness verdict.
type MobileCheck struct {
	Status string `json:"status"` // good, warning, bad
	Reason string `json:"reason"`
}

// SchemaMarkup reports application/ld+json structured data. A script block
// that fails to parse still counts as present, with a parse-error type.
type SchemaMarkup struct {
	Present bool     `json:"present"`
	Types   []string `json:"types"`
}

// TechnicalData holds the crawlability and performance check verdicts.
type TechnicalData struct {
	HTTPS          bool         `json:"https"`
	Robots         RobotsCheck  `json:"robotsTxt"`
	Sitemap        SitemapCheck `json:"sitemapXml"`
	LoadTime       float64      `json:"loadTime"` // seconds; negative when unavailable
	LoadTimeStatus string       `json:"loadTimeStatus"`
	Mobile         MobileCheck  `json:"mobileFriendly"`
	Schema         SchemaMarkup `json:"schemaMarkup"`
}

// Report is the full analysis handed to the presentation layer.
type Report struct {
	RequestedURL    string         `json:"requestedUrl"`
	FinalURL        string         `json:"finalUrl"`
	Redirected      bool           `json:"redirected"`
	ContentTypeWarn string         `json:"contentTypeWarning,omitempty"`
	ElapsedSeconds  float64        `json:"elapsedSeconds"`
	Meta            *MetaData      `json:"meta"`
	Content         *ContentData   `json:"content"`
	Links           *LinkData      `json:"links"`
	Technical       *TechnicalData `json:"technical"`
	MetaScore       CategoryScore  `json:"metaScore"`
	ContentScore    CategoryScore  `json:"contentScore"`
	LinkScore       CategoryScore  `json:"linkScore"`
	TechnicalScore  CategoryScore  `json:"technicalScore"`
	OverallScore    float64        `json:"overallScore"`
	Recommendations []string       `json:"recommendations"`
}
