package scrape

import (
	"context"

	"smartprice-backend/internal/model"
)

// Scraper is the collaborator the HTTP layer consumes: given a query it
// returns raw product records keyed by platform name. A platform that fails
// or times out yields an empty slice for that platform; the call as a whole
// only errors on setup problems (e.g. no browser available), never on a
// single-platform failure.
type Scraper interface {
	Scrape(ctx context.Context, query string, maxPerPlatform int) (map[string][]model.RawProduct, error)
}
