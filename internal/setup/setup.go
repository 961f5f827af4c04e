package setup

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/apiclient"
	"github.com/bbpmp-jabar/nyurat-keun/internal/config"
	"github.com/bbpmp-jabar/nyurat-keun/internal/handler"
	"github.com/bbpmp-jabar/nyurat-keun/internal/roster"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
)

const (
	baseTemplate           = "base.html"
	tmplPath               = "templates"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Handler    *handler.Handler
	Roster     *roster.Cache
	CancelFunc context.CancelFunc
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	// Cancellable context for the background roster refresh
	ctx, cancel := context.WithCancel(context.Background())

	apiClient := apiclient.New(cfg.APIBaseURL)

	cache := roster.NewCache(apiClient)
	cache.StartBackgroundUpdate(ctx, cfg.RosterRefreshInterval.Std())

	templates := mustLoadTemplates(tmplPath)

	h := handler.New(templates, cfg, apiClient, cache)
	startTemplateReloader(h, tmplPath)

	return &Dependencies{
		Handler:    h,
		Roster:     cache,
		CancelFunc: cancel,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func hasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"sub":            sub,
		"add":            add,
		"dict":           dict,
		"hasPrefix":      hasPrefix,
		"formatDate":     schedule.FormatDate,
		"formatDateTime": schedule.FormatDateTime,
	}
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate && f.Name() != "partials.html" {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(templateFuncs()).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
				path.Join(tmplPath, "partials.html"),
			))
		}
	}
	return templates
}

func startTemplateReloader(h *handler.Handler, tmplPath string) {
	if os.Getenv("ENV") == "development" {
		ticker := time.NewTicker(templateReloadInterval)
		go func() {
			for range ticker.C {
				h.Templates = mustLoadTemplates(tmplPath)
			}
		}()
	}
}
