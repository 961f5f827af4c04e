package handler

import (
	"net/http"
)

func (h *Handler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "dashboard.html", nil)
}
