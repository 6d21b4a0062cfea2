package http

import (
	"net/http"

	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/pubsub"
	"github.com/mauv0809/crewboard/internal/roster"
)

// NewServer wires the routes. linker, deliverer and pubsub may be nil; their endpoints then answer 503.
func NewServer(svc *roster.Service, directory club.Directory, linker *club.SlackLinker, metricsSvc metrics.Metrics, metricsHandler http.Handler, deliverer notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Roster:         svc,
		Directory:      directory,
		Linker:         linker,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Deliverer:      deliverer,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("PUT /members/{id}", Chain(s.UpsertMemberHandler(), paramsMiddleware))
	s.Router.Handle("POST /members/link-slack", Chain(s.LinkSlackHandler(), paramsMiddleware))

	s.Router.Handle("GET /activities", Chain(s.ListActivitiesHandler(), paramsMiddleware))
	s.Router.Handle("POST /activities", Chain(s.CreateActivityHandler(), paramsMiddleware))
	s.Router.Handle("GET /activities/{id}", Chain(s.GetActivityHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /activities/{id}", Chain(s.RescheduleHandler(), paramsMiddleware))
	s.Router.Handle("GET /activities/{id}/participants", Chain(s.ListParticipantsHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /activities/{id}/participants/{userID}", Chain(s.RemoveParticipantHandler(), paramsMiddleware))
	s.Router.Handle("POST /activities/{id}/signups", Chain(s.SignUpHandler(), paramsMiddleware))
	s.Router.Handle("POST /activities/{id}/applicants/{userID}/accept", Chain(s.AcceptHandler(), paramsMiddleware))
	s.Router.Handle("POST /activities/{id}/applicants/{userID}/reject", Chain(s.RejectHandler(), paramsMiddleware))

	s.Router.Handle("POST /notify", Chain(s.NotifyPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
