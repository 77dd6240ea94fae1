package enrich

import (
	"strings"
)

// Coarse outlet-size buckets for major US news outlets, based on monthly
// traffic tiers. Matching is by substring on the lowercased source label.
var largeOutlets = []string{
	"cnn", "nytimes", "new york times", "foxnews", "fox news", "yahoo news",
	"msn news", "google news",
	"washington post", "wsj", "wall street journal", "usa today",
	"nbcnews", "nbc news", "bbc", "abc news", "cbs news",
	"nypost", "new york post", "huffpost", "forbes",
}

var mediumOutlets = []string{
	"politico", "the hill", "bloomberg", "reuters", "business insider",
	"los angeles times", "latimes", "newsweek", "the atlantic",
	"vox", "axios", "buzzfeed news", "daily beast", "slate",
	"marketwatch", "cnbc", "npr", "time", "economist",
}

// OutletSize classifies a source label into the three-level reach bucket:
// 1.0 for large outlets, 0.5 for medium, 0.0 for small or unknown.
func OutletSize(source string) float64 {
	source = strings.ToLower(source)

	for _, outlet := range largeOutlets {
		if strings.Contains(source, outlet) {
			return 1.0
		}
	}
	for _, outlet := range mediumOutlets {
		if strings.Contains(source, outlet) {
			return 0.5
		}
	}
	return 0.0
}
