package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/narsese"
	"github.com/Harshitk-cp/nars/internal/service"
	"github.com/Harshitk-cp/nars/internal/store"
)

const (
	defaultOutputsLimit = 50
	maxOutputsLimit     = 500
	maxInputLines       = 1000
)

type LineSubmitter interface {
	SubmitLine(line string) error
}

type RunControl interface {
	Pause()
	Resume()
	Status() service.Status
}

// OutputFeed is the read side of the outbox.
type OutputFeed interface {
	Recent(limit int) []domain.OutputEvent
	LatestSnapshot() (domain.Snapshot, bool)
}

type OutputLookup interface {
	GetByID(ctx context.Context, id string) (*domain.OutputEvent, error)
}

type ReasonerHandler struct {
	input   LineSubmitter
	control RunControl
	feed    OutputFeed
	journal OutputLookup
}

// NewReasonerHandler wires the HTTP surface to a running reasoner. journal
// may be nil.
func NewReasonerHandler(input LineSubmitter, control RunControl, feed OutputFeed, journal OutputLookup) *ReasonerHandler {
	return &ReasonerHandler{input: input, control: control, feed: feed, journal: journal}
}

type inputRequest struct {
	Lines []string `json:"lines"`
}

type rejectedLine struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

type inputResponse struct {
	Accepted int            `json:"accepted"`
	Rejected []rejectedLine `json:"rejected"`
}

// Input queues Narsese lines. Malformed lines are reported and skipped; a
// full input queue stops the batch with 503.
func (h *ReasonerHandler) Input(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Lines) == 0 {
		writeError(w, http.StatusBadRequest, "lines is required")
		return
	}
	if len(req.Lines) > maxInputLines {
		writeError(w, http.StatusBadRequest, "too many lines")
		return
	}

	resp := inputResponse{Rejected: []rejectedLine{}}
	for _, line := range req.Lines {
		err := h.input.SubmitLine(line)
		switch {
		case err == nil:
			if !narsese.IsBlank(line) {
				resp.Accepted++
			}
		case errors.Is(err, service.ErrInputQueueFull):
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		default:
			resp.Rejected = append(resp.Rejected, rejectedLine{Line: line, Error: err.Error()})
		}
	}

	status := http.StatusAccepted
	if resp.Accepted == 0 && len(resp.Rejected) > 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func (h *ReasonerHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.feed.LatestSnapshot()
	if !ok {
		writeError(w, http.StatusNotFound, "no snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type outputsResponse struct {
	Outputs []domain.OutputEvent `json:"outputs"`
	Count   int                  `json:"count"`
}

func (h *ReasonerHandler) Outputs(w http.ResponseWriter, r *http.Request) {
	limit := defaultOutputsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxOutputsLimit)
	}

	events := h.feed.Recent(limit)
	writeJSON(w, http.StatusOK, outputsResponse{Outputs: events, Count: len(events)})
}

// OutputByID reads a single event back from the journal.
func (h *ReasonerHandler) OutputByID(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeError(w, http.StatusNotImplemented, "output journal not configured")
		return
	}

	ev, err := h.journal.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "output not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read output")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *ReasonerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.control.Pause()
	writeJSON(w, http.StatusOK, h.control.Status())
}

func (h *ReasonerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.control.Resume()
	writeJSON(w, http.StatusOK, h.control.Status())
}

func (h *ReasonerHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.control.Status())
}
