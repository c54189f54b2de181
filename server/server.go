package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"vippsbroker/auth"
	"vippsbroker/internal/config"
)

const contentTypeJSON = "application/json; charset=utf-8"

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	flow   *auth.Service
}

func New(config config.Config, flow *auth.Service) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		flow:   flow,
		env:    config.GetEnv(),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
