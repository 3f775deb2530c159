package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber,
		FieldTypeCheckbox, FieldTypeSelect, FieldTypeDate, FieldTypeFile:
		return true
	}
	return false
}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormField is one descriptor of a form schema. Options is only
// meaningful for select fields.
type FormField struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Type     FieldType     `json:"type"`
	Required bool          `json:"required"`
	Options  []FieldOption `json:"options,omitempty"`
}

type Form struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `json:"description"`
	Fields      datatypes.JSON `gorm:"not null" json:"fields"`
	SiteID      uint           `gorm:"not null" json:"site_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

// ParseFields decodes the stored field schema. The schema is the
// immutable contract responses are rendered against.
func (f *Form) ParseFields() ([]FormField, error) {
	var fields []FormField
	if err := json.Unmarshal(f.Fields, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

type FormResponse struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FormID    uint           `gorm:"not null" json:"form_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Data      datatypes.JSON `gorm:"not null" json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Form *Form `gorm:"foreignKey:FormID" json:"form,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ParseData decodes the submitted field-id to value mapping.
func (r *FormResponse) ParseData() (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return nil, err
	}
	return data, nil
}

type UploadedFile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Filename         string    `gorm:"size:255;not null;unique" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string    `gorm:"size:500;not null" json:"file_path"`
	FormResponseID   uint      `gorm:"not null" json:"form_response_id"`
	CreatedAt        time.Time `json:"created_at"`
}
