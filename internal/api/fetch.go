package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rickgao/debtwatch/internal/metrics"
	"github.com/rickgao/debtwatch/internal/model"
)

// Fetch queries one dataset and normalizes the response.
//
// Network, HTTP, and malformed-response failures are logged and returned as
// an empty series with a nil error. The only error returned is the context's,
// when the caller cancelled the cycle.
func (c *Client) Fetch(ctx context.Context, req Request) (model.TimeSeries, error) {
	body, err := c.doWithRetry(ctx, http.MethodGet, "/"+req.Dataset, req.Params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.TimeSeries{}, fmt.Errorf("fetch %s: %w", req.ID, ctxErr)
		}
		c.logger.Warn("dataset fetch failed, needs fallback",
			"dataset", req.ID,
			"eurostat_dataset", req.Dataset,
			"error", err,
		)
		metrics.RecordFetch(string(req.ID), classify(err))
		return model.TimeSeries{}, nil
	}

	series, err := ParseDocument(body)
	if err != nil {
		c.logger.Warn("malformed dataset response, needs fallback",
			"dataset", req.ID,
			"error", err,
		)
		metrics.RecordFetch(string(req.ID), metrics.OutcomeMalformed)
		return model.TimeSeries{}, nil
	}

	if series.Len() == 0 {
		metrics.RecordFetch(string(req.ID), metrics.OutcomeEmpty)
	} else {
		metrics.RecordFetch(string(req.ID), metrics.OutcomeOK)
	}

	c.logger.Debug("dataset fetched",
		"dataset", req.ID,
		"points", series.Len(),
	)
	return series, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrHTTPFailure):
		return metrics.OutcomeHTTP
	case errors.Is(err, ErrMalformedResponse):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeNetwork
	}
}
