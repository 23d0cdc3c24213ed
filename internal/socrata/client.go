// Package socrata fetches full table contents from a Socrata open-data API
// (datos.gov.co) by paginating with $limit/$offset.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Row is one raw dataset row. The upstream schema is not stable release to
// release, so rows stay loosely typed and callers resolve fields by alias.
type Row map[string]any

// Query holds the optional SoQL clauses supported by the fetcher.
type Query struct {
	Where  string
	Select string
}

// Client is a paginated Socrata reader. Requests are issued strictly one at a
// time with a fixed polite delay between pages. No timeout is set, so a hung
// endpoint stalls the run. There is no retry and no partial-result
// checkpointing; a failed run is re-invoked from the beginning.
type Client struct {
	http     *resty.Client
	pageSize int
	delay    time.Duration
	log      zerolog.Logger
}

// NewClient creates a Client for the given base URL, e.g.
// https://www.datos.gov.co/resource.
func NewClient(baseURL string, pageSize int, delay time.Duration, log zerolog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 50000
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     http,
		pageSize: pageSize,
		delay:    delay,
		log:      log.With().Str("component", "socrata").Logger(),
	}
}

// FetchAll retrieves every row of the dataset. It stops when a page comes back
// empty or smaller than the requested page size.
func (c *Client) FetchAll(ctx context.Context, datasetID string, q Query) ([]Row, error) {
	var out []Row
	offset := 0

	for {
		page, err := c.fetchPage(ctx, datasetID, q, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		out = append(out, page...)
		offset += len(page)

		c.log.Debug().
			Str("dataset", datasetID).
			Int("rows", len(out)).
			Msg("page fetched")

		if len(page) < c.pageSize {
			break
		}

		if c.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, datasetID string, q Query, offset int) ([]Row, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("$limit", strconv.Itoa(c.pageSize)).
		SetQueryParam("$offset", strconv.Itoa(offset))
	if q.Where != "" {
		req.SetQueryParam("$where", q.Where)
	}
	if q.Select != "" {
		req.SetQueryParam("$select", q.Select)
	}

	resp, err := req.Get("/" + datasetID + ".json")
	if err != nil {
		return nil, fmt.Errorf("fetch %s offset %d: %w", datasetID, offset, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s offset %d: status %s", datasetID, offset, resp.Status())
	}

	var page []Row
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("decode %s offset %d: %w", datasetID, offset, err)
	}
	return page, nil
}
