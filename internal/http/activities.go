package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/availability"
	"github.com/mauv0809/crewboard/internal/eligibility"
	"github.com/mauv0809/crewboard/internal/ledger"
)

func (s *Server) ListActivitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := s.Roster.ListActivities(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if activities == nil {
			activities = []*activity.Activity{}
		}
		writeJSON(w, http.StatusOK, activities)
	}
}

func (s *Server) CreateActivityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(requesterHeader)
		if owner == "" {
			http.Error(w, requesterHeader+" header is required", http.StatusUnauthorized)
			return
		}
		var req createActivityRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.Roster.CreateActivity(r.Context(), &activity.Activity{
			OwnerID:     owner,
			Name:        req.Name,
			Kind:        req.Kind,
			Start:       req.Start,
			Location:    req.Location,
			Positions:   req.Positions,
			Competition: req.Competition,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) GetActivityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.Roster.GetActivity(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func (s *Server) ListParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Roster.ListParticipants(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if matches == nil {
			matches = []*ledger.Match{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.UserID == "" {
			req.UserID = r.Header.Get(requesterHeader)
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		intervals := make([]availability.Interval, 0, len(req.Availability))
		for _, in := range req.Availability {
			interval, err := availability.ParseInterval(in.Day, in.Start, in.End)
			if err != nil {
				log.Warn("Invalid availability interval", "error", err, "userID", req.UserID)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			intervals = append(intervals, interval)
		}

		msg, err := s.Roster.SignUp(r.Context(), r.PathValue("id"), eligibility.Request{
			UserID:       req.UserID,
			Availability: intervals,
			Gender:       req.Gender,
			Organisation: req.Organisation,
			Competitive:  req.Competitive,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

func (s *Server) AcceptHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req acceptRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Position == "" {
			http.Error(w, "position is required", http.StatusBadRequest)
			return
		}
		msg, err := s.Roster.AcceptApplicant(r.Context(), r.PathValue("id"), r.PathValue("userID"), req.Position, r.Header.Get(requesterHeader))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

func (s *Server) RejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := s.Roster.RejectApplicant(r.Context(), r.PathValue("id"), r.PathValue("userID"), r.Header.Get(requesterHeader))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

func (s *Server) RemoveParticipantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := s.Roster.RemoveParticipant(r.Context(), r.PathValue("id"), r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

func (s *Server) RescheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rescheduleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		msg, err := s.Roster.RescheduleActivity(r.Context(), r.PathValue("id"), req.Start, req.Location)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}
