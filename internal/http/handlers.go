package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.Directory.GetAllMembers(r.Context())
		if err != nil {
			http.Error(w, "Failed to get members", http.StatusInternalServerError)
			log.Error("Failed to get members from store", "error", err)
			return
		}
		if members == nil {
			members = []*club.Member{}
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func (s *Server) UpsertMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memberRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		member := &club.Member{
			ID:           r.PathValue("id"),
			Name:         req.Name,
			Organisation: req.Organisation,
			SlackUserID:  req.SlackUserID,
		}
		if err := s.Directory.UpsertMember(r.Context(), member); err != nil {
			http.Error(w, "Failed to save member", http.StatusInternalServerError)
			log.Error("Failed to upsert member", "error", err, "memberID", member.ID)
			return
		}
		stored, err := s.Directory.GetMember(r.Context(), member.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func (s *Server) LinkSlackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Linker == nil {
			http.Error(w, "Slack is not configured", http.StatusServiceUnavailable)
			return
		}
		linked, err := s.Linker.LinkAll(r.Context())
		if err != nil {
			log.Error("Failed to link Slack users", "error", err)
			http.Error(w, "Failed to link Slack users", http.StatusBadGateway)
			return
		}
		log.Info("Linked members to Slack users", "linked", linked)
		writeJSON(w, http.StatusOK, map[string]int{"linked": linked})
	}
}

// NotifyPushHandler receives notifications published by the bus gateway and delivers them.
// A non-2xx answer makes Pub/Sub redeliver the message.
func (s *Server) NotifyPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Deliverer == nil || s.PubSub == nil {
			http.Error(w, "Notification delivery is not configured", http.StatusServiceUnavailable)
			return
		}
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notification message", "body", string(bodyBytes))

		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if event := push.Message.Attributes["event"]; event != "" && event != string(pubsub.EventNotify) {
			log.Warn("Ignoring message with unexpected event", "event", event, "messageID", push.Message.ID)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var n notifier.Notification
		if err := s.PubSub.ProcessMessage(push.Message.Data, &n); err != nil {
			// Redelivery cannot fix a malformed payload, so acknowledge it.
			log.Error("Dropping undecodable notification", "error", err, "messageID", push.Message.ID)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if notifier.IsDryRun(r.Context()) {
			n.DryRun = true
		}

		if err := s.Deliverer.Notify(r.Context(), n); err != nil {
			s.Metrics.IncNotificationFailed(string(n.Status))
			log.Error("Failed to deliver notification", "error", err, "userID", n.UserID, "activityID", n.ActivityID, "status", n.Status)
			http.Error(w, "Failed to deliver notification", http.StatusInternalServerError)
			return
		}
		s.Metrics.IncNotificationSent(string(n.Status))
		w.Write([]byte("OK"))
	}
}
