package api

import (
	"net/http"

	"text-recitation/domain"
	"text-recitation/scoring"

	"github.com/julienschmidt/httprouter"
)

// HandleScores returns the aggregated score history for a passage.
func (s *Server) HandleScores() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		text, err := s.findOwnedText(r, p.ByName("id"))
		if err != nil {
			s.respondLookupError(w, r, err, "HandleScores")
			return
		}

		practices := []domain.Practice{}
		err = s.Db.
			Where("user_id = ? AND text_id = ? AND practice_type = ?",
				requesterID(r), text.ID, domain.PracticeTypeTextRecitation).
			Order("created_at desc").
			Find(&practices).Error
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleScores", text.ID),
				http.StatusInternalServerError,
			)
			return
		}

		s.Response(w, r, scoring.Aggregate(practices), http.StatusOK)
	}
}
