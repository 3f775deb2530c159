package repositories

import (
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/models"
)

type FormRepo interface {
	GetFormByID(id uint) (models.Form, error)
	ListForms(siteID *uint, skip, limit int) ([]models.Form, error)
	CreateForm(form *models.Form) error
	SaveForm(form *models.Form) error
	DeleteForm(id uint) error

	CreateResponse(resp *models.FormResponse) error
	GetResponse(formID, responseID uint) (models.FormResponse, error)
	ListResponses(formID uint) ([]models.FormResponse, error)

	CreateUploadedFile(file *models.UploadedFile) error
	ListUploadedFiles(responseID uint) ([]models.UploadedFile, error)
}

type DBFormRepo struct{}

func (r *DBFormRepo) GetFormByID(id uint) (models.Form, error) {
	var form models.Form
	err := db.DB.First(&form, id).Error
	return form, err
}

func (r *DBFormRepo) ListForms(siteID *uint, skip, limit int) ([]models.Form, error) {
	var forms []models.Form
	query := db.DB.Model(&models.Form{})
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Offset(skip).Order("id").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) CreateForm(form *models.Form) error {
	return db.DB.Create(form).Error
}

func (r *DBFormRepo) SaveForm(form *models.Form) error {
	return db.DB.Save(form).Error
}

func (r *DBFormRepo) DeleteForm(id uint) error {
	return db.DB.Delete(&models.Form{}, id).Error
}

func (r *DBFormRepo) CreateResponse(resp *models.FormResponse) error {
	return db.DB.Create(resp).Error
}

func (r *DBFormRepo) GetResponse(formID, responseID uint) (models.FormResponse, error) {
	var resp models.FormResponse
	err := db.DB.Preload("User").
		Where("id = ? AND form_id = ?", responseID, formID).
		First(&resp).Error
	return resp, err
}

func (r *DBFormRepo) ListResponses(formID uint) ([]models.FormResponse, error) {
	var responses []models.FormResponse
	err := db.DB.Preload("User").
		Where("form_id = ?", formID).
		Order("created_at").
		Find(&responses).Error
	return responses, err
}

func (r *DBFormRepo) CreateUploadedFile(file *models.UploadedFile) error {
	return db.DB.Create(file).Error
}

func (r *DBFormRepo) ListUploadedFiles(responseID uint) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := db.DB.Where("form_response_id = ?", responseID).Find(&files).Error
	return files, err
}
