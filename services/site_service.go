package services

import (
	"errors"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"gorm.io/gorm"
)

type SiteService struct {
	repos *repositories.Repos
}

func NewSiteService(repos *repositories.Repos) *SiteService {
	return &SiteService{repos: repos}
}

func (s *SiteService) CreateSite(actor authz.Actor, input dto.CreateSiteInput) (models.Site, error) {
	if actor.Role != models.RoleSuperAdmin {
		return models.Site{}, ErrForbidden
	}

	if _, err := s.repos.Site.GetSiteByName(input.Name); err == nil {
		return models.Site{}, ErrSiteNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Site{}, err
	}
	if _, err := s.repos.Site.GetSiteBySubdomain(input.Subdomain); err == nil {
		return models.Site{}, ErrSubdomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Site{}, err
	}

	site := models.Site{Name: input.Name, Subdomain: input.Subdomain}
	if err := s.repos.Site.CreateSite(&site); err != nil {
		return models.Site{}, err
	}
	return site, nil
}

func (s *SiteService) ListSites(actor authz.Actor, skip, limit int) ([]models.Site, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	return s.repos.Site.ListSites(skip, limit)
}

func (s *SiteService) GetSite(actor authz.Actor, id uint) (models.Site, error) {
	site, err := s.repos.Site.GetSiteByID(id)
	if err != nil {
		return models.Site{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{Kind: authz.KindSite, SiteID: &site.ID})
	if err := decisionErr(d); err != nil {
		return models.Site{}, err
	}
	return site, nil
}

func (s *SiteService) UpdateSite(actor authz.Actor, id uint, input dto.UpdateSiteInput) (models.Site, error) {
	if actor.Role != models.RoleSuperAdmin {
		return models.Site{}, ErrForbidden
	}

	site, err := s.repos.Site.GetSiteByID(id)
	if err != nil {
		return models.Site{}, ErrNotFound
	}

	if input.Name != nil && *input.Name != site.Name {
		if _, err := s.repos.Site.GetSiteByName(*input.Name); err == nil {
			return models.Site{}, ErrSiteNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Site{}, err
		}
		site.Name = *input.Name
	}
	if input.Subdomain != nil && *input.Subdomain != site.Subdomain {
		if _, err := s.repos.Site.GetSiteBySubdomain(*input.Subdomain); err == nil {
			return models.Site{}, ErrSubdomainTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Site{}, err
		}
		site.Subdomain = *input.Subdomain
	}

	if err := s.repos.Site.SaveSite(&site); err != nil {
		return models.Site{}, err
	}
	return site, nil
}

func (s *SiteService) DeleteSite(actor authz.Actor, id uint) error {
	if actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}

	if _, err := s.repos.Site.GetSiteByID(id); err != nil {
		return ErrNotFound
	}
	return s.repos.Site.DeleteSite(id)
}
