package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// parseWindow reads the days query parameter. Absent or "all" means all-time.
func parseWindow(r *http.Request) (models.Window, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return models.AllTime, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errors.NewBadRequestError("days must be a positive integer or \"all\"")
	}
	return models.Window(days), nil
}

func parsePlayerID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.NewBadRequestError("invalid player id: " + raw)
	}
	return id, nil
}

type windowView struct {
	Days    *int `json:"days"`
	AllTime bool `json:"all_time"`
}

func newWindowView(w models.Window) windowView {
	if w.IsAllTime() {
		return windowView{AllTime: true}
	}
	days := int(w)
	return windowView{Days: &days}
}
