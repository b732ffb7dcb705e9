package api

import "time"

type HealthResponse struct {
	Status    string                   `json:"status"`
	Version   string                   `json:"version"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

type ServiceHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedCategoryInfo lists one analysis feed exposed by the analysis routes.
type FeedCategoryInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type CategoriesResponse struct {
	Categories []FeedCategoryInfo `json:"categories"`
}

// ArticleResponse wraps a single feed article with its source metadata.
type ArticleResponse struct {
	Article  any `json:"article"`
	FeedInfo any `json:"feedInfo"`
}

// ArticlesResponse wraps a latest-N feed fetch.
type ArticlesResponse struct {
	Articles any `json:"articles"`
	FeedInfo any `json:"feedInfo"`
}
