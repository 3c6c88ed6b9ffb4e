package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"makernet/internal/models"
)

// ListReports returns a page of moderation reports for admin review.
func (c *Client) ListReports(ctx context.Context, p ListParams) ([]models.Report, int, error) {
	return getList[models.Report](ctx, c, "/admin/reports", p)
}

// UpdateReportStatus moves a report to the given status and returns the
// updated report.
func (c *Client) UpdateReportStatus(ctx context.Context, id uint, status models.ReportStatus) (models.Report, error) {
	body := map[string]any{"status": status}
	return mutate[models.Report](ctx, c, http.MethodPatch, fmt.Sprintf("/admin/reports/%d", id), body)
}

// DeleteReportedContent removes the content a report targets, which resolves
// the report server-side.
func (c *Client) DeleteReportedContent(ctx context.Context, targetType models.ReportableType, targetID uint) error {
	path := fmt.Sprintf("/admin/%ss/%d", strings.ToLower(string(targetType)), targetID)
	return c.delete(ctx, path)
}

// ListUsers returns a page of user accounts for the admin panel.
func (c *Client) ListUsers(ctx context.Context, p ListParams) ([]models.AdminUser, int, error) {
	return getList[models.AdminUser](ctx, c, "/admin/users", p)
}

// ToggleVerified flips a user's verified badge and returns the updated row.
func (c *Client) ToggleVerified(ctx context.Context, id uint) (models.AdminUser, error) {
	return mutate[models.AdminUser](ctx, c, http.MethodPatch, fmt.Sprintf("/admin/users/%d/verify", id), nil)
}

// DeleteUser permanently removes a user account. Irreversible.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}
