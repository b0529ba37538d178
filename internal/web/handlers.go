package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ingelean/docent/internal/analytics"
	"github.com/ingelean/docent/internal/chatlog"
	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/knowledge"
	"github.com/ingelean/docent/internal/processor"
	"github.com/ingelean/docent/internal/responder"
)

const sessionHeader = "X-Session-Token"

type startSessionRequest struct {
	UserInfo map[string]string `json:"user_info,omitempty"`
}

type startSessionResponse struct {
	Token string `json:"token"`
}

type predictRequest struct {
	Prompt string `json:"prompt"`
}

type predictResponse struct {
	Token   string              `json:"token"`
	Turn    conversation.Turn   `json:"turn"`
	History []conversation.Turn `json:"history"`
}

type rateRequest struct {
	Rating string `json:"rating"`
}

type rateResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

type dashboardResponse struct {
	NoData  bool               `json:"no_data"`
	Summary *analytics.Summary `json:"summary"`
	Entries []chatlog.Entry    `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
	// Prompt echoes the user's question back when generation failed, so
	// the client can keep it available for retry.
	Prompt string `json:"prompt,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// startSession mints a fresh session token, carrying the optional identity
// mapping from the external registration step.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine
	}

	token := uuid.NewString()
	sess := conversation.NewSession(token)
	if len(req.UserInfo) > 0 {
		sess.SetUserInfo(req.UserInfo)
	}
	if err := s.store.Put(r.Context(), token, sess); err != nil {
		s.logger.Error("failed to store session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not create session"})
		return
	}

	writeJSON(w, http.StatusCreated, startSessionResponse{Token: token})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token := r.Header.Get(sessionHeader)
	if token == "" {
		token = uuid.NewString()
	}
	sess, err := s.store.Get(r.Context(), token)
	if err != nil {
		s.logger.Error("session lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session store unavailable"})
		return
	}
	if sess == nil {
		sess = conversation.NewSession(token)
	}

	turn, err := s.proc.Answer(r.Context(), sess, req.Prompt)
	if err != nil {
		s.writeAnswerError(w, err, req.Prompt)
		return
	}

	if err := s.store.Put(r.Context(), token, sess); err != nil {
		s.logger.Error("failed to store session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not persist session"})
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Token:   token,
		Turn:    turn,
		History: sess.History(),
	})
}

func (s *Server) writeAnswerError(w http.ResponseWriter, err error, prompt string) {
	switch {
	case errors.Is(err, knowledge.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "the knowledge base is not available"})
	case errors.Is(err, processor.ErrEmptyQuestion):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please enter a valid question"})
	default:
		var genErr *responder.GenerationError
		if errors.As(err, &genErr) {
			// History is unchanged; hand the question back for retry.
			writeJSON(w, http.StatusBadGateway, errorResponse{
				Error:  "could not reach the model, please try again",
				Prompt: prompt,
			})
			return
		}
		s.logger.Error("predict failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rating, err := chatlog.ParseRating(req.Rating)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "rating must be a whole number from 1 to 5"})
		return
	}

	token := r.Header.Get(sessionHeader)
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session token"})
		return
	}
	sess, err := s.store.Get(r.Context(), token)
	if err != nil {
		s.logger.Error("session lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session store unavailable"})
		return
	}
	if sess == nil || sess.Len() == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no conversation to rate"})
		return
	}

	rateErr := s.proc.Rate(r.Context(), sess, rating)
	if errors.Is(rateErr, chatlog.ErrInvalidRating) || errors.Is(rateErr, chatlog.ErrEmptyHistory) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: rateErr.Error()})
		return
	}

	// The session was cleared by the processor; drop the stored copy so the
	// next question starts a new conversation.
	if err := s.store.Clear(r.Context(), token); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}

	if rateErr != nil {
		// Softened outcome: rating accepted, transcript copy not guaranteed.
		s.logger.Error("transcript log failed", "error", rateErr)
		writeJSON(w, http.StatusOK, rateResponse{
			Status:  "ok",
			Warning: "thanks for your rating — we could not save a copy of the transcript",
		})
		return
	}

	writeJSON(w, http.StatusOK, rateResponse{Status: "ok"})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	entries, err := analytics.LoadFile(s.logPath)
	if err != nil {
		s.logger.Error("failed to read chat log", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not read the conversation log"})
		return
	}

	summary := analytics.Summarize(entries)
	writeJSON(w, http.StatusOK, dashboardResponse{
		NoData:  summary.NoData(),
		Summary: summary,
		Entries: entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
