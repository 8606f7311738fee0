package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages maps a page name to its template set. Each page is parsed together
// with the shared layout so every page can define its own "content" block.
var pages = parsePages("index", "form", "result")

func parsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

type pageData struct {
	Categories []domain.Category
	Category   domain.Category
	Units      []string
	Result     string
	Error      string
}

func newPageData(category domain.Category) pageData {
	return pageData{Categories: domain.Categories(), Category: category}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "index", newPageData(""))
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	units, err := s.converter.Units(category)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := newPageData(category)
	data.Units = units
	s.render(w, http.StatusOK, "form", data)
}

// handleResultPage shows the empty result placeholder; nothing is computed on GET.
func (s *Server) handleResultPage(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, http.StatusOK, "result", newPageData(category))
}

// handleResultSubmit converts the posted form. User errors render as a
// message on the result page with status 200.
func (s *Server) handleResultSubmit(w http.ResponseWriter, r *http.Request) {
	req := domain.Request{
		Category: domain.Category(r.PathValue("category")),
		FromUnit: r.PostFormValue("from_unit"),
		ToUnit:   r.PostFormValue("to_unit"),
		RawValue: r.PostFormValue("value"),
	}

	data := newPageData(req.Normalize().Category)
	result, err := s.converter.Convert(r.Context(), req)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error("conversion failed", "error", err)
		}
		data.Error = domain.UserMessage(err)
	} else {
		data.Result = result.Text
	}
	s.render(w, http.StatusOK, "result", data)
}

// render executes the page into a buffer first so a template failure yields
// a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("render page failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck // client went away
}
