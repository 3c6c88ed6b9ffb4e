package service

import (
	"context"
	"fmt"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/view"
)

// AdminAPI is the slice of the API client the admin screens use.
type AdminAPI interface {
	ListReports(ctx context.Context, p api.ListParams) ([]models.Report, int, error)
	UpdateReportStatus(ctx context.Context, id uint, status models.ReportStatus) (models.Report, error)
	DeleteReportedContent(ctx context.Context, targetType models.ReportableType, targetID uint) error
	ListUsers(ctx context.Context, p api.ListParams) ([]models.AdminUser, int, error)
	ToggleVerified(ctx context.Context, id uint) (models.AdminUser, error)
	DeleteUser(ctx context.Context, id uint) error
}

func reportID(r models.Report) uint       { return r.ID }
func adminUserID(u models.AdminUser) uint { return u.ID }

// AdminService drives the moderation report queue and the user admin panel.
type AdminService struct {
	api     AdminAPI
	log     *observability.RequestLogger
	Reports *view.Controller[models.Report]
	Users   *view.Controller[models.AdminUser]
}

// NewAdminService returns an AdminService with fresh controllers.
func NewAdminService(apiClient AdminAPI, pageSize int) *AdminService {
	s := &AdminService{
		api: apiClient,
		log: observability.NewRequestLogger("admin"),
	}
	s.Reports = view.NewController("admin_reports", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Report], error) {
		items, total, err := apiClient.ListReports(ctx, f.Params())
		return view.Page[models.Report]{Items: items, Total: total}, err
	}, reportID)
	s.Users = view.NewController("admin_users", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.AdminUser], error) {
		items, total, err := apiClient.ListUsers(ctx, f.Params())
		return view.Page[models.AdminUser]{Items: items, Total: total}, err
	}, adminUserID)
	return s
}

func (s *AdminService) reportByID(id uint) (models.Report, bool) {
	for _, r := range s.Reports.Items() {
		if r.ID == id {
			return r, true
		}
	}
	return models.Report{}, false
}

func (s *AdminService) transitionReport(ctx context.Context, id uint, next models.ReportStatus, action string) error {
	report, ok := s.reportByID(id)
	if ok && !report.Status.CanTransition(next) {
		return fmt.Errorf("report %d cannot move from %s to %s", id, report.Status, next)
	}
	updated, err := s.api.UpdateReportStatus(ctx, id, next)
	s.log.LogAction(ctx, action, err, map[string]interface{}{"report_id": id})
	if err != nil {
		return err
	}
	s.Reports.Replace(id, updated)
	return nil
}

// MarkReviewed moves a pending report to reviewed.
func (s *AdminService) MarkReviewed(ctx context.Context, id uint) error {
	return s.transitionReport(ctx, id, models.ReportStatusReviewed, "mark_reviewed")
}

// Dismiss closes a report without action. Dismissed is terminal.
func (s *AdminService) Dismiss(ctx context.Context, id uint) error {
	return s.transitionReport(ctx, id, models.ReportStatusDismissed, "dismiss_report")
}

// Resolve deletes the reported content, which resolves the report
// server-side, then refetches the current page to pick up the cascade.
func (s *AdminService) Resolve(ctx context.Context, id uint) error {
	report, ok := s.reportByID(id)
	if !ok {
		return fmt.Errorf("report %d is not in the current page", id)
	}
	if report.Status.Terminal() {
		return fmt.Errorf("report %d is already %s", id, report.Status)
	}
	err := s.api.DeleteReportedContent(ctx, report.ReportableType, report.ReportableID)
	s.log.LogAction(ctx, "resolve_report", err, map[string]interface{}{
		"report_id":   id,
		"target_type": report.ReportableType,
		"target_id":   report.ReportableID,
	})
	if err != nil {
		return err
	}
	s.Reports.Refresh(ctx)
	return nil
}

// ToggleVerified flips a user's verified badge, patching the row with the
// server echo.
func (s *AdminService) ToggleVerified(ctx context.Context, id uint) error {
	updated, err := s.api.ToggleVerified(ctx, id)
	s.log.LogAction(ctx, "toggle_verified", err, map[string]interface{}{"user_id": id})
	if err != nil {
		return err
	}
	s.Users.Replace(id, updated)
	return nil
}

// DeleteUser permanently removes an account. The local row is dropped and
// the total decremented; a row already gone (concurrent deletion) is a
// no-op on the client list.
func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	err := s.api.DeleteUser(ctx, id)
	s.log.LogAction(ctx, "delete_user", err, map[string]interface{}{"user_id": id})
	if err != nil {
		return err
	}
	s.Users.Remove(id)
	return nil
}
