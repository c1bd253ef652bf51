package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

var pages = []string{
	constvars.ViewIndex,
	constvars.ViewServiceRequestCreate,
	constvars.ViewServiceRequestView,
	constvars.ViewError,
}

type templateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses every page against the shared layout once at startup.
func NewTemplateRenderer() (contracts.ViewRenderer, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["codingDisplay"] = codingDisplay
	funcs["humanName"] = fhir_dto.OfficialName

	renderer := &templateRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, layoutTemplate, fmt.Sprintf("templates/%s.html", page))
		if err != nil {
			return nil, err
		}
		renderer.templates[page] = tmpl
	}
	return renderer, nil
}

// Render executes into a buffer first so a template failure never leaves a
// half-written page behind.
func (r *templateRenderer) Render(w http.ResponseWriter, status int, view string, data interface{}) error {
	tmpl, ok := r.templates[view]
	if !ok {
		return fmt.Errorf("view %q is not registered", view)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func codingDisplay(value interface{}) string {
	var concept *fhir_dto.CodeableConcept
	switch v := value.(type) {
	case *fhir_dto.CodeableConcept:
		concept = v
	case fhir_dto.CodeableConcept:
		concept = &v
	}
	if concept == nil {
		return ""
	}
	if concept.Text != "" {
		return concept.Text
	}
	for _, coding := range concept.Coding {
		if coding.Display != "" {
			return coding.Display
		}
		if coding.Code != "" {
			return coding.Code
		}
	}
	return ""
}
