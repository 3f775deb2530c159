package repositories

import (
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/models"
)

type SiteRepo interface {
	GetSiteByID(id uint) (models.Site, error)
	GetSiteByName(name string) (models.Site, error)
	GetSiteBySubdomain(subdomain string) (models.Site, error)
	ListSites(skip, limit int) ([]models.Site, error)
	CreateSite(site *models.Site) error
	SaveSite(site *models.Site) error
	DeleteSite(id uint) error
}

type DBSiteRepo struct{}

func (r *DBSiteRepo) GetSiteByID(id uint) (models.Site, error) {
	var site models.Site
	err := db.DB.First(&site, id).Error
	return site, err
}

func (r *DBSiteRepo) GetSiteByName(name string) (models.Site, error) {
	var site models.Site
	err := db.DB.Where("name = ?", name).First(&site).Error
	return site, err
}

func (r *DBSiteRepo) GetSiteBySubdomain(subdomain string) (models.Site, error) {
	var site models.Site
	err := db.DB.Where("subdomain = ?", subdomain).First(&site).Error
	return site, err
}

func (r *DBSiteRepo) ListSites(skip, limit int) ([]models.Site, error) {
	var sites []models.Site
	query := db.DB.Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Offset(skip).Find(&sites).Error
	return sites, err
}

func (r *DBSiteRepo) CreateSite(site *models.Site) error {
	return db.DB.Create(site).Error
}

func (r *DBSiteRepo) SaveSite(site *models.Site) error {
	return db.DB.Save(site).Error
}

func (r *DBSiteRepo) DeleteSite(id uint) error {
	return db.DB.Delete(&models.Site{}, id).Error
}
