package template

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/ghaggin/homesite/internal/config"
	"github.com/ghaggin/homesite/internal/content"
)

type Data struct {
	PageTitle string
	UID       string
	Error     string
	CSRF      string
	Live      bool
	Pages     []*content.Page
	Content   template.HTML
}

type Renderer struct {
	dir  string
	live bool
}

func New(cfg *config.Config) *Renderer {
	return &Renderer{
		dir:  cfg.Site.TemplateDir,
		live: cfg.Live,
	}
}

// Render executes tmpl against the base layout. Templates are parsed
// per request, which keeps dev edits live and is cheap at this
// site's traffic.
func (r *Renderer) Render(w http.ResponseWriter, status int, tmpl string, td *Data) error {
	if td == nil {
		td = &Data{}
	}
	td.Live = r.live

	t, err := template.ParseFiles(
		r.dir+"/"+tmpl,
		r.dir+"/"+"base.html",
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.Execute(buf, td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
