package services

import (
	"bytes"
	"context"
	"time"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/report"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/storage"
)

type ReportService struct {
	repos     *repositories.Repos
	store     storage.Store
	generator *report.Generator
}

func NewReportService(repos *repositories.Repos, store storage.Store) *ReportService {
	return &ReportService{
		repos:     repos,
		store:     store,
		generator: report.NewGenerator(),
	}
}

func (s *ReportService) loadForm(actor authz.Actor, formID uint) (models.Form, models.Site, error) {
	form, err := s.repos.Form.GetFormByID(formID)
	if err != nil {
		return models.Form{}, models.Site{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{Kind: authz.KindForm, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return models.Form{}, models.Site{}, err
	}
	if actor.Role == models.RoleUser {
		// Reports expose other users' submissions.
		return models.Form{}, models.Site{}, ErrForbidden
	}

	site, err := s.repos.Site.GetSiteByID(form.SiteID)
	if err != nil {
		return models.Form{}, models.Site{}, err
	}
	return form, site, nil
}

// GenerateResponseReport renders one submission to a PDF and stores it
// under pdfs/; the returned path is what gets persisted or served.
func (s *ReportService) GenerateResponseReport(ctx context.Context, actor authz.Actor, formID, responseID uint) (string, error) {
	form, site, err := s.loadForm(actor, formID)
	if err != nil {
		return "", err
	}

	resp, err := s.repos.Form.GetResponse(formID, responseID)
	if err != nil {
		return "", ErrNotFound
	}
	user, err := s.repos.User.GetUserByID(resp.UserID)
	if err != nil {
		return "", err
	}

	doc, err := s.generator.FormResponse(&site, &form, &resp, &user)
	if err != nil {
		return "", err
	}

	name := report.ResponseFilename(resp.ID, time.Now())
	return s.store.Save(ctx, name, "application/pdf", bytes.NewReader(doc), int64(len(doc)))
}

// GenerateSummaryReport renders every submission of a form plus
// aggregate counts.
func (s *ReportService) GenerateSummaryReport(ctx context.Context, actor authz.Actor, formID uint) (string, error) {
	form, site, err := s.loadForm(actor, formID)
	if err != nil {
		return "", err
	}

	responses, err := s.repos.Form.ListResponses(formID)
	if err != nil {
		return "", err
	}

	doc, err := s.generator.Summary(&site, &form, responses)
	if err != nil {
		return "", err
	}

	name := report.SummaryFilename(form.ID, time.Now())
	return s.store.Save(ctx, name, "application/pdf", bytes.NewReader(doc), int64(len(doc)))
}
