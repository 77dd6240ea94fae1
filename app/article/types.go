package article

import (
	"time"
)

// Raw is the adapter-level article shape. Field formats vary by backend:
// Published in particular is an unparsed string that the normalizer resolves.
type Raw struct {
	Title       string
	Link        string
	Description string
	Published   string
	Source      string
}

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Enrichment holds the optional fields computed by the reasoning service.
// A nil Enrichment on an Article means the enhancement pass did not run or
// failed for that article's batch.
type Enrichment struct {
	BiasScore     float64   `json:"bias_score"`
	Sentiment     Sentiment `json:"sentiment"`
	PoliticalBias float64   `json:"political_bias"`
	OutletSize    float64   `json:"outlet_size"`
}

// Article is the canonical post-normalization record. Articles are built
// fresh on every fetch run and never mutate after assembly.
type Article struct {
	Title       string      `json:"title"`
	Source      string      `json:"source"`
	Content     string      `json:"content"`
	URL         string      `json:"url"`
	PublishedAt time.Time   `json:"published_at"`
	Enrichment  *Enrichment `json:"enrichment,omitempty"`
}

// Key is the duplicate-detection identity within one fetch cycle.
type Key struct {
	Title  string
	Source string
}

func (a Article) Key() Key {
	return Key{Title: a.Title, Source: a.Source}
}
