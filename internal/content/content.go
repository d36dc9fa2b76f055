package content

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghaggin/homesite/internal/config"
	"github.com/yuin/goldmark"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Page is a project page rendered from a markdown file. Slug is the
// filename without extension.
type Page struct {
	Slug  string
	Title string
	HTML  template.HTML
}

type Store struct {
	log   *zap.Logger
	pages map[string]*Page
	order []string
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Config *config.Config
}

// New loads every markdown file under <content_dir>/projects at
// startup. The store is immutable after.
func New(p Params) (*Store, error) {
	s := &Store{
		log:   p.Log,
		pages: map[string]*Page{},
	}

	dir := filepath.Join(p.Config.Site.ContentDir, "projects")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		// a site with no projects is fine
		p.Log.Warn("no project content dir", zap.String("dir", dir))
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		page, err := loadPage(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		s.pages[page.Slug] = page
		s.order = append(s.order, page.Slug)
	}

	sort.Strings(s.order)
	p.Log.Info("loaded project pages", zap.Int("count", len(s.order)))

	return s, nil
}

func loadPage(path string) (*Page, error) {
	md, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSuffix(filepath.Base(path), ".md")

	var buf bytes.Buffer
	if err := goldmark.Convert(md, &buf); err != nil {
		return nil, err
	}

	return &Page{
		Slug:  slug,
		Title: pageTitle(md, slug),
		HTML:  template.HTML(buf.String()),
	}, nil
}

// pageTitle takes the first markdown h1, falling back to the slug.
func pageTitle(md []byte, slug string) string {
	for _, line := range strings.Split(string(md), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	return slug
}

// Get returns nil when no page has the slug.
func (s *Store) Get(slug string) *Page {
	return s.pages[slug]
}

func (s *Store) List() []*Page {
	pages := make([]*Page, 0, len(s.order))
	for _, slug := range s.order {
		pages = append(pages, s.pages[slug])
	}

	return pages
}
