package api

import (
	"context"
	"net/http"
	"net/url"

	"makernet/internal/models"
)

// Me returns the authenticated user's account record.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	return getOne[models.User](ctx, c, "/account/me")
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged server-side.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// UpdateProfile applies the given profile changes and returns the updated
// account record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error) {
	return mutate[models.User](ctx, c, http.MethodPatch, "/account/profile", update)
}

// CheckUsernameAvailable asks the server whether the candidate username is
// free. An error means the check could not be performed; callers must not
// treat that as available.
func (c *Client) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	q := url.Values{"username": {username}}
	if err := c.get(ctx, "/account/username_available?"+q.Encode(), &out); err != nil {
		return false, err
	}
	return out.Available, nil
}
