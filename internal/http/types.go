package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/pubsub"
	"github.com/mauv0809/crewboard/internal/roster"
)

type Server struct {
	Roster         *roster.Service
	Directory      club.Directory
	Linker         *club.SlackLinker
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Deliverer      notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}

// requesterHeader carries the id of the member making the request.
// Authentication happens in front of this service.
const requesterHeader = "X-User-ID"

type createActivityRequest struct {
	Name        string                `json:"name"`
	Kind        activity.Kind         `json:"kind"`
	Start       time.Time             `json:"start"`
	Location    string                `json:"location"`
	Positions   []activity.Position   `json:"positions"`
	Competition *activity.Competition `json:"competition,omitempty"`
}

type intervalRequest struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type signUpRequest struct {
	UserID       string            `json:"user_id"`
	Availability []intervalRequest `json:"availability"`
	Gender       activity.Gender   `json:"gender"`
	Organisation string            `json:"organisation"`
	Competitive  bool              `json:"competitive"`
}

type acceptRequest struct {
	Position activity.Position `json:"position"`
}

type rescheduleRequest struct {
	Start    *time.Time `json:"start,omitempty"`
	Location *string    `json:"location,omitempty"`
}

type memberRequest struct {
	Name         string  `json:"name"`
	Organisation string  `json:"organisation"`
	SlackUserID  *string `json:"slack_user_id,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
