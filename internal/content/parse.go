package content

import (
	"strings"
	"time"

	"github.com/akiyama/shirabe/internal/models"
)

// property is a typed database property value. Only the variants the site
// uses are modeled; anything else decodes to zero values and reads as empty.
type property struct {
	Type        string            `json:"type"`
	Title       []models.RichText `json:"title"`
	RichText    []models.RichText `json:"rich_text"`
	Select      *selectOption     `json:"select"`
	MultiSelect []selectOption    `json:"multi_select"`
	Date        *dateValue        `json:"date"`
	Number      float64           `json:"number"`
	Checkbox    bool              `json:"checkbox"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// parseBlogPost maps a database page onto a BlogPost summary.
func parseBlogPost(p page) *models.BlogPost {
	return &models.BlogPost{
		ID:       p.ID,
		Slug:     textProp(p, "Slug"),
		Title:    titleProp(p, "Name", "Title"),
		Excerpt:  textProp(p, "Excerpt", "Description"),
		Tags:     multiSelectProp(p, "Tags"),
		Language: selectProp(p, "Language"),
		Date:     dateProp(p, "Date"),
		ReadTime: textProp(p, "ReadTime"),
	}
}

// parseProject maps a database page onto a Project summary. A project
// without a Date property falls back to the page created time, then to the
// current time so that downstream date handling never sees an empty string.
func parseProject(p page) *models.Project {
	date := dateProp(p, "Date")
	if date == "" {
		date = p.CreatedTime
	}
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	return &models.Project{
		ID:           p.ID,
		Slug:         textProp(p, "Slug"),
		Title:        titleProp(p, "Name", "Title"),
		Description:  textProp(p, "Description", "Excerpt"),
		Technologies: multiSelectProp(p, "Technologies", "Tech"),
		Date:         date,
	}
}

// plainText joins the plain-text runs of a rich-text value.
func plainText(runs []models.RichText) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.PlainText)
	}
	return sb.String()
}

// titleProp reads the first present title property among names.
func titleProp(p page, names ...string) string {
	for _, name := range names {
		if prop, ok := p.Properties[name]; ok && len(prop.Title) > 0 {
			return plainText(prop.Title)
		}
	}
	return ""
}

// textProp reads the first present rich-text property among names.
func textProp(p page, names ...string) string {
	for _, name := range names {
		if prop, ok := p.Properties[name]; ok && len(prop.RichText) > 0 {
			return plainText(prop.RichText)
		}
	}
	return ""
}

// selectProp reads a select property's option name.
func selectProp(p page, name string) string {
	if prop, ok := p.Properties[name]; ok && prop.Select != nil {
		return prop.Select.Name
	}
	return ""
}

// multiSelectProp reads the option names of the first present multi-select
// property among names, in stored order.
func multiSelectProp(p page, names ...string) []string {
	for _, name := range names {
		prop, ok := p.Properties[name]
		if !ok || len(prop.MultiSelect) == 0 {
			continue
		}
		values := make([]string, 0, len(prop.MultiSelect))
		for _, opt := range prop.MultiSelect {
			values = append(values, opt.Name)
		}
		return values
	}
	return nil
}

// dateProp reads a date property's start value.
func dateProp(p page, name string) string {
	if prop, ok := p.Properties[name]; ok && prop.Date != nil {
		return prop.Date.Start
	}
	return ""
}
