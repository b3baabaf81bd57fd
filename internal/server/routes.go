package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deal_dashboard/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Post("/", handler(s.postV1Deals))
			r.Get("/", handler(s.getV1Deals))
			r.Delete("/", handler(s.deleteV1Deals))
		})

		r.Route("/brokers", func(r chi.Router) {
			r.Get("/performance", handler(s.getV1BrokersPerformance))
			r.Get("/{broker}/weekly", handler(s.getV1BrokerWeekly))
		})

		r.Get("/charts/rolling-average", handler(s.getV1RollingAverage))
		r.Get("/lead-sources", handler(s.getV1LeadSources))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
