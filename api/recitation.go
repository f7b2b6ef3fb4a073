package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"text-recitation/domain"

	"github.com/julienschmidt/httprouter"
	"gorm.io/gorm"
)

const maxUploadBytes = 32 << 20

// findOwnedText fetches the passage scoped to the requesting user. A missing
// row and a row owned by someone else are indistinguishable on purpose: both
// come back as gorm.ErrRecordNotFound.
func (s *Server) findOwnedText(r *http.Request, idParam string) (*domain.RecitationText, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	text := &domain.RecitationText{}
	if err := s.Db.Where("id = ? AND user_id = ?", id, requesterID(r)).First(text).Error; err != nil {
		return nil, err
	}
	return text, nil
}

func (s *Server) HandleCreateRecitationText() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requester := requesterID(r)

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "no image uploaded", "HandleCreateRecitationText", err.Error()),
				http.StatusBadRequest,
			)
			return
		}

		var content string
		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			content, err = s.OCR.RecognizeText(r.Context(), file, header.Filename)
			if err != nil {
				s.Response(
					w, r,
					s.Error(http.StatusInternalServerError, err.Error(), "HandleCreateRecitationText", header.Filename),
					http.StatusInternalServerError,
				)
				return
			}
		case r.FormValue("content") != "":
			content = r.FormValue("content")
		default:
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "no image uploaded", "HandleCreateRecitationText", nil),
				http.StatusBadRequest,
			)
			return
		}

		content = strings.TrimSpace(content)
		if content == "" {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "content must not be empty", "HandleCreateRecitationText", nil),
				http.StatusBadRequest,
			)
			return
		}

		text := &domain.RecitationText{UserID: requester, Content: content}
		if err := s.Db.Create(text).Error; err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleCreateRecitationText", content),
				http.StatusInternalServerError,
			)
			return
		}

		s.Response(w, r, text, http.StatusCreated)
	}
}

func (s *Server) HandleListRecitationTexts() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		texts := []domain.RecitationText{}
		err := s.Db.
			Where("user_id = ?", requesterID(r)).
			Order("created_at desc").
			Find(&texts).Error
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleListRecitationTexts", nil),
				http.StatusInternalServerError,
			)
			return
		}
		s.Response(w, r, texts, http.StatusOK)
	}
}

func (s *Server) HandleUpdateRecitationText() httprouter.Handle {
	type Input struct {
		Content string `json:"content"`
	}

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		input := &Input{}
		if err := s.Decode(w, r, input); err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "invalid request body", "HandleUpdateRecitationText", err.Error()),
				http.StatusBadRequest,
			)
			return
		}
		content := strings.TrimSpace(input.Content)
		if content == "" {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "content must not be empty", "HandleUpdateRecitationText", input),
				http.StatusBadRequest,
			)
			return
		}

		text, err := s.findOwnedText(r, p.ByName("id"))
		if err != nil {
			s.respondLookupError(w, r, err, "HandleUpdateRecitationText")
			return
		}

		if err := s.Db.Model(text).Update("content", content).Error; err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleUpdateRecitationText", input),
				http.StatusInternalServerError,
			)
			return
		}

		s.Response(w, r, text, http.StatusOK)
	}
}

func (s *Server) HandleDeleteRecitationText() httprouter.Handle {
	type Output struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		text, err := s.findOwnedText(r, p.ByName("id"))
		if err != nil {
			s.respondLookupError(w, r, err, "HandleDeleteRecitationText")
			return
		}

		if err := s.Db.Delete(text).Error; err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleDeleteRecitationText", text.ID),
				http.StatusInternalServerError,
			)
			return
		}

		s.Response(w, r, Output{Message: "deleted"}, http.StatusOK)
	}
}

func (s *Server) respondLookupError(w http.ResponseWriter, r *http.Request, err error, function string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.Response(
			w, r,
			s.Error(http.StatusNotFound, "recitation text not found", function, nil),
			http.StatusNotFound,
		)
		return
	}
	s.Response(
		w, r,
		s.Error(http.StatusInternalServerError, err.Error(), function, nil),
		http.StatusInternalServerError,
	)
}
