package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrInvalidSchema     = errors.New("invalid form schema")
	ErrInvalidSubmission = errors.New("invalid submission")
)

type FormService struct {
	repos *repositories.Repos
	store storage.Store
}

func NewFormService(repos *repositories.Repos, store storage.Store) *FormService {
	return &FormService{repos: repos, store: store}
}

// validateSchema enforces the field-descriptor contract: unique
// non-empty ids, known types, options on selects.
func validateSchema(fields []models.FormField) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: at least one field required", ErrInvalidSchema)
	}
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if field.ID == "" {
			return fmt.Errorf("%w: field id cannot be empty", ErrInvalidSchema)
		}
		if seen[field.ID] {
			return fmt.Errorf("%w: duplicate field id %q", ErrInvalidSchema, field.ID)
		}
		seen[field.ID] = true
		if !field.Type.Valid() {
			return fmt.Errorf("%w: unknown field type %q", ErrInvalidSchema, field.Type)
		}
		if field.Type == models.FieldTypeSelect && len(field.Options) == 0 {
			return fmt.Errorf("%w: select field %q has no options", ErrInvalidSchema, field.ID)
		}
	}
	return nil
}

// validateSubmission checks the data mapping against the schema: no
// unknown field ids, required fields present, values matching the
// declared type.
func validateSubmission(fields []models.FormField, data map[string]any) error {
	byID := make(map[string]models.FormField, len(fields))
	for _, field := range fields {
		byID[field.ID] = field
	}

	for key := range data {
		if _, ok := byID[key]; !ok {
			return fmt.Errorf("%w: unknown field id %q", ErrInvalidSubmission, key)
		}
	}

	for _, field := range fields {
		value, present := data[field.ID]
		if !present || value == nil {
			if field.Required {
				return fmt.Errorf("%w: missing required field %q", ErrInvalidSubmission, field.ID)
			}
			continue
		}

		switch field.Type {
		case models.FieldTypeCheckbox:
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("%w: field %q expects a boolean", ErrInvalidSubmission, field.ID)
			}
		case models.FieldTypeNumber:
			if _, ok := value.(float64); !ok {
				return fmt.Errorf("%w: field %q expects a number", ErrInvalidSubmission, field.ID)
			}
		case models.FieldTypeSelect:
			code, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: field %q expects an option value", ErrInvalidSubmission, field.ID)
			}
			valid := false
			for _, opt := range field.Options {
				if opt.Value == code {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("%w: field %q has no option %q", ErrInvalidSubmission, field.ID, code)
			}
		case models.FieldTypeText, models.FieldTypeTextarea, models.FieldTypeDate, models.FieldTypeFile:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%w: field %q expects a string", ErrInvalidSubmission, field.ID)
			}
		}
	}
	return nil
}

func (s *FormService) CreateForm(actor authz.Actor, input dto.CreateFormInput) (models.Form, error) {
	d := authz.Can(actor, authz.ActionCreate, authz.Target{Kind: authz.KindForm, SiteID: &input.SiteID})
	if err := decisionErr(d); err != nil {
		return models.Form{}, err
	}

	if err := validateSchema(input.Fields); err != nil {
		return models.Form{}, err
	}

	fieldsJSON, err := json.Marshal(input.Fields)
	if err != nil {
		return models.Form{}, err
	}

	form := models.Form{
		Title:       input.Title,
		Description: input.Description,
		Fields:      datatypes.JSON(fieldsJSON),
		SiteID:      input.SiteID,
	}
	if err := s.repos.Form.CreateForm(&form); err != nil {
		return models.Form{}, err
	}
	return form, nil
}

// ListForms applies the implicit tenant filter: anyone below super
// admin only ever sees their own site's forms.
func (s *FormService) ListForms(actor authz.Actor, siteID *uint, skip, limit int) ([]models.Form, error) {
	if actor.Role != models.RoleSuperAdmin {
		siteID = actor.SiteID
	}
	return s.repos.Form.ListForms(siteID, skip, limit)
}

func (s *FormService) GetForm(actor authz.Actor, id uint) (models.Form, error) {
	form, err := s.repos.Form.GetFormByID(id)
	if err != nil {
		return models.Form{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{Kind: authz.KindForm, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return models.Form{}, err
	}
	return form, nil
}

func (s *FormService) UpdateForm(actor authz.Actor, id uint, input dto.UpdateFormInput) (models.Form, error) {
	form, err := s.repos.Form.GetFormByID(id)
	if err != nil {
		return models.Form{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionUpdate, authz.Target{Kind: authz.KindForm, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return models.Form{}, err
	}

	if input.Title != nil {
		form.Title = *input.Title
	}
	if input.Description != nil {
		form.Description = *input.Description
	}
	if input.Fields != nil {
		if err := validateSchema(*input.Fields); err != nil {
			return models.Form{}, err
		}
		fieldsJSON, err := json.Marshal(*input.Fields)
		if err != nil {
			return models.Form{}, err
		}
		form.Fields = datatypes.JSON(fieldsJSON)
	}

	if err := s.repos.Form.SaveForm(&form); err != nil {
		return models.Form{}, err
	}
	return form, nil
}

func (s *FormService) DeleteForm(actor authz.Actor, id uint) error {
	form, err := s.repos.Form.GetFormByID(id)
	if err != nil {
		return ErrNotFound
	}

	d := authz.Can(actor, authz.ActionDelete, authz.Target{Kind: authz.KindForm, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return err
	}
	return s.repos.Form.DeleteForm(id)
}

func (s *FormService) SubmitResponse(actor authz.Actor, formID uint, input dto.SubmitFormInput) (models.FormResponse, error) {
	form, err := s.repos.Form.GetFormByID(formID)
	if err != nil {
		return models.FormResponse{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionCreate, authz.Target{Kind: authz.KindFormResponse, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return models.FormResponse{}, err
	}

	fields, err := form.ParseFields()
	if err != nil {
		return models.FormResponse{}, err
	}
	if err := validateSubmission(fields, input.Data); err != nil {
		return models.FormResponse{}, err
	}

	dataJSON, err := json.Marshal(input.Data)
	if err != nil {
		return models.FormResponse{}, err
	}

	resp := models.FormResponse{
		FormID: formID,
		UserID: actor.ID,
		Data:   datatypes.JSON(dataJSON),
	}
	if err := s.repos.Form.CreateResponse(&resp); err != nil {
		return models.FormResponse{}, err
	}
	return resp, nil
}

func (s *FormService) ListResponses(actor authz.Actor, formID uint) ([]models.FormResponse, error) {
	form, err := s.repos.Form.GetFormByID(formID)
	if err != nil {
		return nil, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{Kind: authz.KindForm, SiteID: &form.SiteID})
	if err := decisionErr(d); err != nil {
		return nil, err
	}
	if actor.Role == models.RoleUser {
		return nil, ErrForbidden
	}

	return s.repos.Form.ListResponses(formID)
}

// UploadFile stores a file against a response under a unique on-disk
// name while keeping the original name on the row.
func (s *FormService) UploadFile(ctx context.Context, actor authz.Actor, formID, responseID uint, header *multipart.FileHeader) (models.UploadedFile, error) {
	resp, err := s.repos.Form.GetResponse(formID, responseID)
	if err != nil {
		return models.UploadedFile{}, ErrNotFound
	}
	form, err := s.repos.Form.GetFormByID(formID)
	if err != nil {
		return models.UploadedFile{}, ErrNotFound
	}

	if actor.ID != resp.UserID && actor.Role == models.RoleUser {
		return models.UploadedFile{}, ErrForbidden
	}
	d := authz.Can(actor, authz.ActionRead, authz.Target{
		Kind:    authz.KindFormResponse,
		SiteID:  &form.SiteID,
		OwnerID: resp.UserID,
	})
	if err := decisionErr(d); err != nil {
		return models.UploadedFile{}, err
	}

	src, err := header.Open()
	if err != nil {
		return models.UploadedFile{}, err
	}
	defer src.Close()

	original := filepath.Base(header.Filename)
	unique := fmt.Sprintf("%s_%s", uuid.New().String(), original)
	name := fmt.Sprintf("forms/%d/%s", formID, unique)

	contentType := header.Header.Get("Content-Type")
	path, err := s.store.Save(ctx, name, contentType, src, header.Size)
	if err != nil {
		return models.UploadedFile{}, err
	}

	file := models.UploadedFile{
		Filename:         unique,
		OriginalFilename: original,
		FilePath:         path,
		FormResponseID:   responseID,
	}
	if err := s.repos.Form.CreateUploadedFile(&file); err != nil {
		return models.UploadedFile{}, err
	}
	return file, nil
}
