package api

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"text-recitation/audio"
	"text-recitation/domain"
	"text-recitation/scoring"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HandleRecite runs one attempt through the whole pipeline: audio upload,
// format validation, transcription, scoring, practice insert. The temporary
// audio directory is removed on every exit path.
func (s *Server) HandleRecite() httprouter.Handle {
	type Output struct {
		RecitedText  string  `json:"recited_text"`
		OriginalText string  `json:"original_text"`
		Score        int     `json:"score"`
		Similarity   float64 `json:"similarity"`
	}

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		requester := requesterID(r)

		text, err := s.findOwnedText(r, p.ByName("id"))
		if err != nil {
			s.respondLookupError(w, r, err, "HandleRecite")
			return
		}

		file, header, err := r.FormFile("audio")
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "no audio uploaded", "HandleRecite", err.Error()),
				http.StatusBadRequest,
			)
			return
		}
		defer file.Close()

		if !strings.EqualFold(filepath.Ext(header.Filename), ".wav") {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, "please upload a WAV format audio file", "HandleRecite", header.Filename),
				http.StatusBadRequest,
			)
			return
		}

		path, cleanup, err := s.saveUpload(file)
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleRecite", header.Filename),
				http.StatusInternalServerError,
			)
			return
		}
		defer cleanup()

		if err := audio.ValidateWAV(path); err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusBadRequest, err.Error(), "HandleRecite", header.Filename),
				http.StatusBadRequest,
			)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.Cfg.Speech.TimeoutSeconds)*time.Second)
		defer cancel()
		recited, err := s.Speech.Recognize(ctx, path)
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleRecite", header.Filename),
				http.StatusInternalServerError,
			)
			return
		}

		similarity := scoring.Similarity(text.Content, recited)
		score := scoring.Grade(similarity)
		log.Info().
			Uint("user_id", requester).
			Uint("text_id", text.ID).
			Int("score", score).
			Msg("recitation scored")

		practice := &domain.Practice{
			UserID:       requester,
			TextID:       text.ID,
			PracticeType: domain.PracticeTypeTextRecitation,
			Score:        score,
		}
		err = s.Db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(practice).Error
		})
		if err != nil {
			s.Response(
				w, r,
				s.Error(http.StatusInternalServerError, err.Error(), "HandleRecite", practice),
				http.StatusInternalServerError,
			)
			return
		}

		s.Response(w, r, Output{
			RecitedText:  recited,
			OriginalText: text.Content,
			Score:        score,
			Similarity:   similarity,
		}, http.StatusOK)
	}
}

// saveUpload copies the uploaded audio into a request-scoped temp directory.
// The returned cleanup never fails the request; removal problems are logged.
func (s *Server) saveUpload(file io.Reader) (string, func(), error) {
	dir, err := os.MkdirTemp("", "recite")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("could not remove temporary audio")
		}
	}

	path := filepath.Join(dir, "audio.wav")
	out, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		cleanup()
		return "", nil, err
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
