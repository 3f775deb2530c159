// Package report renders stored form schemas and submitted responses
// into paginated PDF documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/formhub/formhub-go/models"
	"github.com/go-pdf/fpdf"
)

const (
	labelColWidth = 55
	valueColWidth = 130
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// RenderValue formats a submitted value according to its field type:
// checkbox becomes Yes/No, select resolves the option label, composite
// values are pretty-printed JSON, anything else is stringified. A value
// absent from the data renders as an empty string.
func RenderValue(field models.FormField, value any) string {
	if value == nil {
		return ""
	}

	switch field.Type {
	case models.FieldTypeCheckbox:
		if b, ok := value.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case models.FieldTypeSelect:
		code, ok := value.(string)
		if !ok || code == "" {
			return stringify(value)
		}
		for _, opt := range field.Options {
			if opt.Value == code {
				return opt.Label
			}
		}
		return code
	}
	return stringify(value)
}

func stringify(value any) string {
	switch value.(type) {
	case []any, map[string]any:
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(out)
	}
	return fmt.Sprintf("%v", value)
}

// FormResponse renders a single submission: site header, form title,
// submitter metadata, then one row per schema field.
func (g *Generator) FormResponse(site *models.Site, form *models.Form, resp *models.FormResponse, user *models.User) ([]byte, error) {
	fields, err := form.ParseFields()
	if err != nil {
		return nil, err
	}
	data, err := resp.ParseData()
	if err != nil {
		return nil, err
	}

	pdf := newDocument()
	writeHeader(pdf, site, form)

	writeSectionHeader(pdf, "User Information")
	writeMetaRow(pdf, "Name:", user.Username)
	writeMetaRow(pdf, "Email:", user.Email)
	writeMetaRow(pdf, "Submission Date:", resp.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)

	writeSectionHeader(pdf, "Form Responses")
	writeFieldTable(pdf, fields, data)

	return output(pdf)
}

// Summary renders aggregate counts followed by every response.
func (g *Generator) Summary(site *models.Site, form *models.Form, responses []models.FormResponse) ([]byte, error) {
	fields, err := form.ParseFields()
	if err != nil {
		return nil, err
	}

	pdf := newDocument()
	writeHeader(pdf, site, form)

	writeSectionHeader(pdf, "Summary Information")
	writeMetaRow(pdf, "Total Responses:", fmt.Sprintf("%d", len(responses)))
	writeMetaRow(pdf, "First Response:", responseTime(responses, 0))
	writeMetaRow(pdf, "Latest Response:", responseTime(responses, len(responses)-1))
	pdf.Ln(8)

	for i := range responses {
		resp := &responses[i]
		data, err := resp.ParseData()
		if err != nil {
			return nil, err
		}
		writeSectionHeader(pdf, fmt.Sprintf("Response #%d", resp.ID))
		writeFieldTable(pdf, fields, data)
		pdf.Ln(6)
	}

	return output(pdf)
}

// ResponseFilename builds the stored object name for a single-response
// report.
func ResponseFilename(responseID uint, now time.Time) string {
	return fmt.Sprintf("pdfs/form_response_%d_%s.pdf", responseID, now.Format("20060102_150405"))
}

// SummaryFilename builds the stored object name for a summary report.
func SummaryFilename(formID uint, now time.Time) string {
	return fmt.Sprintf("pdfs/form_summary_%d_%s.pdf", formID, now.Format("20060102_150405"))
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	return pdf
}

func writeHeader(pdf *fpdf.Fpdf, site *models.Site, form *models.Form) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, site.Name, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, form.Title, "", "L", false)
	if form.Description != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, form.Description, "", "L", false)
	}
	pdf.Ln(4)
}

func writeSectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(1)
}

func writeMetaRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelColWidth, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(valueColWidth, 6, value, "", "L", false)
}

func writeFieldTable(pdf *fpdf.Fpdf, fields []models.FormField, data map[string]any) {
	for _, field := range fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelColWidth, 6, field.Label+":", "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(valueColWidth, 6, RenderValue(field, data[field.ID]), "1", "L", false)
	}
}

func responseTime(responses []models.FormResponse, i int) string {
	if i < 0 || i >= len(responses) {
		return "N/A"
	}
	return responses[i].CreatedAt.Format("2006-01-02 15:04:05")
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
