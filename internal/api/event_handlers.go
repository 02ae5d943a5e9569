package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

const maxEventBodyBytes = 1 << 20

type eventPayload struct {
	Player    string `json:"player"`
	Stat      string `json:"stat"`
	Value     int64  `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

type recordEventsRequest struct {
	Events []eventPayload `json:"events"`
}

type recordEventsResponse struct {
	Accepted int `json:"accepted"`
}

func (s *Server) handleRecordEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req recordEventsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Warn("invalid events payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	events := make([]models.StatEvent, 0, len(req.Events))
	for _, p := range req.Events {
		player, err := parsePlayerID(p.Player)
		if err != nil {
			handleError(w, r, err)
			return
		}
		kind, err := stattype.Resolve(p.Stat)
		if err != nil {
			handleError(w, r, err)
			return
		}
		events = append(events, models.StatEvent{
			Player:    player,
			Kind:      kind,
			Value:     p.Value,
			Timestamp: p.Timestamp,
		})
	}

	if err := s.EventService.SubmitEvents(r.Context(), events); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("accepted %d stat events", len(events))
	writeJSON(w, r, http.StatusAccepted, recordEventsResponse{Accepted: len(events)})
}
