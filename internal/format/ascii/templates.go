package ascii

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
)

const (
	noneString        = "-"
	descriptionMaxLen = 96
	descriptionTrunc  = 93
	fieldLabelWidth   = 12
	fieldValueWidth   = 83
	boxWidth          = 100
	boxTitlePadding   = 5
	boxBottomPadding  = 2
)

var (
	//go:embed overview.tmpl
	overviewTemplate string

	//go:embed users.tmpl
	usersTemplate string

	//go:embed user.tmpl
	userTemplate string

	//go:embed products.tmpl
	productsTemplate string

	//go:embed product.tmpl
	productTemplate string

	//go:embed categories.tmpl
	categoriesTemplate string

	//go:embed session.tmpl
	sessionTemplate string
)

// OverviewData holds data for the overview template.
type OverviewData struct {
	Overview *domain.Overview
}

// Formatter renders core state as boxed ASCII text.
type Formatter struct {
	templates map[string]*template.Template
}

// NewFormatter parses every template once.
func NewFormatter() (*Formatter, error) {
	sources := map[string]string{
		"overview":   overviewTemplate,
		"users":      usersTemplate,
		"user":       userTemplate,
		"products":   productsTemplate,
		"product":    productTemplate,
		"categories": categoriesTemplate,
		"session":    sessionTemplate,
	}

	f := &Formatter{templates: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		f.templates[name] = tmpl
	}

	return f, nil
}

// FormatOverview formats the dashboard overview.
func (f *Formatter) FormatOverview(overview *domain.Overview) (string, error) {
	return f.execute("overview", OverviewData{Overview: overview})
}

// FormatUsers formats a page of users with its pagination footer.
func (f *Formatter) FormatUsers(state app.ListState[domain.User]) (string, error) {
	return f.execute("users", state)
}

// FormatUser formats one user's details.
func (f *Formatter) FormatUser(user *domain.User) (string, error) {
	return f.execute("user", user)
}

// FormatProducts formats a page of products with its pagination footer.
func (f *Formatter) FormatProducts(state app.ListState[domain.Product]) (string, error) {
	return f.execute("products", state)
}

// FormatProduct formats one product's details.
func (f *Formatter) FormatProduct(product *domain.Product) (string, error) {
	return f.execute("product", product)
}

// FormatCategories formats the category names.
func (f *Formatter) FormatCategories(names []string) (string, error) {
	return f.execute("categories", names)
}

// FormatSession formats the current identity.
func (f *Formatter) FormatSession(state app.SessionState) (string, error) {
	return f.execute("session", state)
}

func (f *Formatter) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := f.templates[name].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatBoxTitle":      formatBoxTitle,
		"formatBoxBottom":     formatBoxBottom,
		"truncate":            truncate,
		"truncateDescription": truncateDescription,
		"showing":             showing,
		"title":               listTitle,
		"field":               field,
		"join":                joinNonEmpty,
		"greeting": func(identity *domain.Identity) string {
			if identity == nil {
				return "admin"
			}

			return identity.FirstName
		},
		"price": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"rating": func(v float64) string {
			return fmt.Sprintf("%.2f / 5", v)
		},
		"dimensions": func(d domain.Dimensions) string {
			return fmt.Sprintf("%g × %g × %g", d.Width, d.Height, d.Depth)
		},
		"bold": func(text string) string {
			return "\033[1m" + text + "\033[0m"
		},
		"repeat": strings.Repeat,
	}
}

// showing renders "Showing 11-20 of 208 · Page 2 of 21".
func showing(page, total int) string {
	if total == 0 {
		return "No results"
	}

	from := page*domain.PageSize + 1
	to := min((page+1)*domain.PageSize, total)
	pages := domain.PageCount(total)

	if from > total {
		return fmt.Sprintf("Page %d of %d · %d results", page+1, pages, total)
	}

	return fmt.Sprintf("Showing %d-%d of %d · Page %d of %d", from, to, total, page+1, pages)
}

func listTitle(name, search, category string) string {
	switch {
	case search != "":
		return fmt.Sprintf("%s matching %q", name, search)
	case category != "":
		return fmt.Sprintf("%s in %s", name, category)
	default:
		return name
	}
}

func field(label, value string) string {
	if value == "" {
		value = noneString
	}

	return fmt.Sprintf("%-*s %-*s", fieldLabelWidth, label+":", fieldValueWidth, truncate(value, fieldValueWidth))
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ", ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)

	return string(runes[:n-3]) + "..."
}

func truncateDescription(desc string) string {
	for strings.Contains(desc, "\n\n") {
		desc = strings.ReplaceAll(desc, "\n\n", "; ")
	}
	desc = strings.ReplaceAll(desc, "\n", "; ")
	if utf8.RuneCountInString(desc) > descriptionMaxLen {
		return string([]rune(desc)[:descriptionTrunc]) + "..."
	}

	return desc
}

func formatBoxTitle(title string) string {
	titleMax := boxWidth - boxTitlePadding

	cleanTitle := strings.ReplaceAll(title, "\033[1m", "")
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[0m", "")

	length := utf8.RuneCountInString(cleanTitle)
	if length > titleMax {
		length = titleMax
	}

	dashCount := max(boxWidth-length-boxTitlePadding, 0)

	return "┌─ " + title + " " + strings.Repeat("─", dashCount) + "┐"
}

func formatBoxBottom() string {
	return "└" + strings.Repeat("─", boxWidth-boxBottomPadding) + "┘"
}
