package article

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// cacheKeyVersion is bumped whenever the set of fields feeding the hash
// changes, so stale cache entries from older schemas are never matched.
const cacheKeyVersion = "v1"

// SummaryCacheKey derives a stable cache key for a topic summary from the
// topic and the titles of the articles it covers. Titles are sorted before
// hashing, so the key survives reordering of the same article set.
func SummaryCacheKey(topic string, articles []Article) string {
	titles := make([]string, 0, min(len(articles), 5))
	for _, a := range articles {
		titles = append(titles, a.Title)
		if len(titles) == 5 {
			break
		}
	}
	sort.Strings(titles)

	input := fmt.Sprintf("%s\x00%s\x00%s", cacheKeyVersion, topic, strings.Join(titles, "\x00"))
	hash := sha256.Sum256([]byte(input))
	return cacheKeyVersion + ":" + hex.EncodeToString(hash[:])
}
