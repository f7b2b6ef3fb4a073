package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

func (s *Server) Routes() *httprouter.Router {
	router := httprouter.New()

	router.POST("/recitation-texts", s.Validate(s.HandleCreateRecitationText()))
	router.GET("/recitation-texts", s.Validate(s.HandleListRecitationTexts()))
	router.PUT("/recitation-texts/:id", s.Validate(s.HandleUpdateRecitationText()))
	router.DELETE("/recitation-texts/:id", s.Validate(s.HandleDeleteRecitationText()))
	router.POST("/recitation-texts/:id/recite", s.Validate(s.HandleRecite()))
	router.GET("/recitation-texts/:id/scores", s.Validate(s.HandleScores()))

	return router
}

// Handler wraps the server with CORS handling, which also answers the
// browser's OPTIONS preflights for the scores route.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(s)
}
