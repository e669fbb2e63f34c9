package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Holdings
	api.HandleFunc("/holdings", handler.ListHoldings).Methods("GET")
	api.HandleFunc("/holdings", handler.AddHolding).Methods("POST")
	api.HandleFunc("/holdings/{symbol}", handler.RemoveHolding).Methods("DELETE")

	// Analytics
	api.HandleFunc("/valuation", handler.GetValuation).Methods("GET")
	api.HandleFunc("/allocation/chart.png", handler.GetAllocationChart).Methods("GET")
	api.HandleFunc("/trend/{symbol}", handler.GetTrend).Methods("GET")
	api.HandleFunc("/trend/{symbol}/chart.png", handler.GetTrendChart).Methods("GET")
	api.HandleFunc("/risk", handler.GetRiskReport).Methods("GET")
	api.HandleFunc("/recommendation", handler.GetRecommendation).Methods("GET")

	return r
}
