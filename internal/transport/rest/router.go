package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "mindwell/docs"
	"mindwell/internal/logger"
	"mindwell/internal/service"
	"mindwell/internal/transport/rest/handler"
	"mindwell/internal/transport/rest/middleware"
	"mindwell/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	WSHub             *ws.Hub
	Log               *logger.Logger
	CORSOrigins       string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	log := c.Log
	if log == nil {
		log = logger.Nop()
	}
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, log)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.CORSOrigins, log)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS first so preflight never reaches auth
	r.Use(corsMiddleware(c.CORSOrigins))
	r.Use(middleware.RequestLogger(log))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/signup", authHandler.SignUp).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questionnaire", assessmentHandler.Questionnaire).Methods("GET", "OPTIONS")

	// WebSocket (token in query param)
	v1.HandleFunc("/ws/alerts", wsHandler.AlertsWS).Methods("GET")

	// Any signed-in user
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireAuth)
	userRoutes.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")

	// Student routes. Draft paths go before /{id}.
	studentRoutes := v1.PathPrefix("/assessments").Subrouter()
	studentRoutes.Use(authMW.RequireAuth)
	studentOnly := studentRoutes.NewRoute().Subrouter()
	studentOnly.Use(middleware.RequireStudent)
	studentOnly.HandleFunc("/draft", assessmentHandler.GetDraft).Methods("GET", "OPTIONS")
	studentOnly.HandleFunc("/draft", assessmentHandler.DiscardDraft).Methods("DELETE", "OPTIONS")
	studentOnly.HandleFunc("/draft/{questionId}", assessmentHandler.SaveDraft).Methods("PUT", "OPTIONS")
	studentOnly.HandleFunc("", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	studentOnly.HandleFunc("", assessmentHandler.List).Methods("GET", "OPTIONS")

	// Owner or staff, checked by the service
	studentRoutes.HandleFunc("/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")

	// Staff routes
	staffRoutes := v1.PathPrefix("/reports").Subrouter()
	staffRoutes.Use(authMW.RequireAuth, middleware.RequireStaff)
	staffRoutes.HandleFunc("/risk-distribution", reportHandler.RiskDistribution).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/risk-trends", reportHandler.RiskTrends).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/critical-cases", reportHandler.CriticalCases).Methods("GET", "OPTIONS")

	return r
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	origins := map[string]bool{}
	wildcard := allowedOrigins == "" || allowedOrigins == "*"
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origins[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
