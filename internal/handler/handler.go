package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/apiclient"
	"github.com/bbpmp-jabar/nyurat-keun/internal/config"
	"github.com/bbpmp-jabar/nyurat-keun/internal/letter"
	"github.com/bbpmp-jabar/nyurat-keun/internal/roster"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
	"github.com/bbpmp-jabar/nyurat-keun/internal/session"
)

type Handler struct {
	Templates map[string]*template.Template
	Config    *config.Config
	API       *apiclient.Client
	Session   *session.Reader
	Letters   *letter.Renderer
	Roster    *roster.Cache
	Checker   *schedule.Checker
	Now       func() time.Time
}

func New(templates map[string]*template.Template, cfg *config.Config, api *apiclient.Client, cache *roster.Cache) *Handler {
	return &Handler{
		Templates: templates,
		Config:    cfg,
		API:       api,
		Session:   session.NewReader(),
		Letters:   letter.NewRenderer(),
		Roster:    cache,
		Checker:   schedule.NewChecker(api),
		Now:       time.Now,
	}
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/favicon.ico")
}
