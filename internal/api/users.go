package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wrenhollow/reel/internal/models"
)

// User retrieves a user's public summary (username, avatar).
func (c *Client) User(ctx context.Context, userID string) (*models.UserSummary, error) {
	var summary models.UserSummary
	endpoint := fmt.Sprintf("/users/%s", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, c.bearer, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Profile retrieves a user's full profile including their video list.
func (c *Client) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	endpoint := fmt.Sprintf("/users/%s/profile", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, c.bearer, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
