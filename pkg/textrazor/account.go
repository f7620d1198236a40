// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"context"
	"net/http"
)

// Account describes the state and usage of the API account the client's key
// belongs to.
type Account struct {
	// Plan is the ID of the account's subscription plan.
	Plan string `json:"plan"`
	// ConcurrentRequestLimit is the maximum number of requests the account
	// may have in flight at once.
	ConcurrentRequestLimit int `json:"concurrentRequestLimit"`
	// ConcurrentRequestsUsed is the number of requests in flight right now.
	ConcurrentRequestsUsed int `json:"concurrentRequestsUsed"`
	// PlanDailyRequestsIncluded is the number of requests the plan includes
	// per day.
	PlanDailyRequestsIncluded int `json:"planDailyRequestsIncluded"`
	// RequestsUsedToday is the number of requests made in the current UTC
	// day.
	RequestsUsedToday int `json:"requestsUsedToday"`
}

// Account retrieves the state of the account this client's key belongs to.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var out struct {
		Account Account `json:"account"`
	}
	if err := c.manage(ctx, http.MethodGet, "account/", nil, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}
