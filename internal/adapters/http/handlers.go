package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/pool"
	"svw.info/numble/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/round", h.handleRound)
	mux.HandleFunc("/api/place", h.handlePlace)
	mux.HandleFunc("/api/unplace", h.handleUnplace)
	mux.HandleFunc("/api/reset", h.handleReset)
	mux.HandleFunc("/api/check", h.handleCheck)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/reveal", h.handleReveal)
	mux.HandleFunc("/api/progress/save", h.handleProgressSave)
	mux.HandleFunc("/api/progress/load", h.handleProgressLoad)
	mux.HandleFunc("/api/progress/list", h.handleProgressList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

// statusFor maps session and pool failures onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, pool.ErrOutOfRange),
		errors.Is(err, pool.ErrConsumed),
		errors.Is(err, pool.ErrNoEntry):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ---- Round ----

type roundReq struct {
	Level int   `json:"level"`
	Seed  int64 `json:"seed,omitempty"`
}

type roundResp struct {
	GameID       string         `json:"gameId,omitempty"`
	Level        int            `json:"level,omitempty"`
	Target       int            `json:"target,omitempty"`
	Tokens       []domain.Token `json:"tokens,omitempty"`
	TimerSeconds int            `json:"timerSeconds,omitempty"`
	DurationMs   int64          `json:"durationMs,omitempty"`
	Attempts     int            `json:"attempts,omitempty"`
	Error        string         `json:"error,omitempty"`
}

func (h *Handler) handleRound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{"method not allowed"})
		return
	}
	var req roundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, roundResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Level < 1 {
		req.Level = 1
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, st, err := h.UC.NewRound(r.Context(), seed, req.Level)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, roundResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roundResp{
		GameID:       g.ID,
		Level:        g.Level,
		Target:       g.Puzzle.Target,
		Tokens:       g.Pool.Tokens,
		TimerSeconds: g.Puzzle.TimerSeconds,
		DurationMs:   st.Duration.Milliseconds(),
		Attempts:     st.Attempts,
	})
}

// ---- Place / Unplace / Reset ----

type moveReq struct {
	GameID   string `json:"gameId"`
	Index    int    `json:"index"`
	Position int    `json:"position"`
}

type stateResp struct {
	Tokens   []domain.Token `json:"tokens,omitempty"`
	Sequence []int          `json:"sequence,omitempty"`
	Equation string         `json:"equation"`
	Error    string         `json:"error,omitempty"`
}

func (h *Handler) gameState(w http.ResponseWriter, g *usecase.Game, err error) {
	if err != nil {
		writeJSON(w, statusFor(err), stateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stateResp{
		Tokens:   g.Pool.Tokens,
		Sequence: g.Pool.Sequence,
		Equation: g.Pool.Equation(),
	})
}

func decodeMove(w http.ResponseWriter, r *http.Request) (moveReq, bool) {
	var req moveReq
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{"method not allowed"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeJSON(w, http.StatusBadRequest, stateResp{Error: "invalid JSON or missing gameId"})
		return req, false
	}
	return req, true
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	g, err := h.UC.Place(r.Context(), req.GameID, req.Index)
	h.gameState(w, g, err)
}

func (h *Handler) handleUnplace(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	g, err := h.UC.Unplace(r.Context(), req.GameID, req.Position)
	h.gameState(w, g, err)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	g, err := h.UC.ResetEquation(r.Context(), req.GameID)
	h.gameState(w, g, err)
}

// ---- Check ----

type checkResp struct {
	Verdict string `json:"verdict,omitempty"`
	Value   int    `json:"value"`
	Target  int    `json:"target"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	res, err := h.UC.Check(r.Context(), req.GameID)
	if err != nil {
		writeJSON(w, statusFor(err), checkResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResp{
		Verdict: res.Verdict.String(),
		Value:   res.Value,
		Target:  res.Target,
		Message: res.Message,
	})
}

// ---- Hint ----

type hintResp struct {
	Hint    string `json:"hint,omitempty"`
	ClearMs int64  `json:"clearMs,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	hint, err := h.UC.Hint(r.Context(), req.GameID)
	if err != nil {
		writeJSON(w, statusFor(err), hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Hint: hint.Message, ClearMs: domain.HintDuration.Milliseconds()})
}

// ---- Reveal ----

type revealResp struct {
	Tokens     []domain.Token `json:"tokens,omitempty"`
	Expression string         `json:"expression,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	toks, err := h.UC.Reveal(r.Context(), req.GameID)
	if err != nil {
		writeJSON(w, statusFor(err), revealResp{Error: err.Error()})
		return
	}
	var rebuilt string
	for _, t := range toks {
		rebuilt += t.Text
	}
	writeJSON(w, http.StatusOK, revealResp{Tokens: toks, Expression: rebuilt})
}

// ---- Progress ----

type progressReq struct {
	Name  string `json:"name"`
	Level int    `json:"level,omitempty"`
}

type progressResp struct {
	Name  string `json:"name,omitempty"`
	Level int    `json:"level,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleProgressSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{"method not allowed"})
		return
	}
	var req progressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, progressResp{Error: "invalid JSON or missing name"})
		return
	}
	if req.Level < 1 {
		req.Level = 1
	}
	if err := h.UC.SaveProgress(r.Context(), domain.Progress{Name: req.Name, Level: req.Level}); err != nil {
		writeJSON(w, http.StatusInternalServerError, progressResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progressResp{Name: req.Name, Level: req.Level})
}

func (h *Handler) handleProgressLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{"method not allowed"})
		return
	}
	var req progressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, progressResp{Error: "invalid JSON or missing name"})
		return
	}
	p, err := h.UC.LoadProgress(r.Context(), req.Name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, progressResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progressResp{Name: p.Name, Level: p.Level})
}

type progressListResp struct {
	Games []domain.Progress `json:"games"`
	Error string            `json:"error,omitempty"`
}

func (h *Handler) handleProgressList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{"method not allowed"})
		return
	}
	gs, err := h.UC.ListProgress(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, progressListResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progressListResp{Games: gs})
}
