// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Reviews   *app.ReviewService
	Approvals *app.ApprovalService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/reviews", func(r chi.Router) {
		r.Get("/", h.listReviews)
		r.Get("/stats", h.reviewStats)
		r.Get("/google", h.placeReviews)
		r.Post("/approval", h.approve)
		r.Post("/approval/bulk", h.bulkApprove)
	})
	s.mux.Route("/v1/properties", func(r chi.Router) {
		r.Get("/", h.listProperties)
		r.Get("/top", h.topProperties)
		r.Get("/{id}", h.getProperty)
		r.Get("/{id}/reviews", h.publicReviews)
	})
}

/********** reviews **********/

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	p, err := parseReviewParams(r.URL.Query())
	if err != nil {
		writeErr(w, err)
		return
	}
	page, err := h.Reviews.ListReviews(r.Context(), p.query())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: page.Items, Pagination: &page.Pagination})
}

func (h *Handlers) reviewStats(w http.ResponseWriter, r *http.Request) {
	p, err := parseReviewParams(r.URL.Query())
	if err != nil {
		writeErr(w, err)
		return
	}
	f := p.filter()
	trend := domain.Window30d
	if f.TimeWindow != nil {
		trend = *f.TimeWindow
	}
	out, err := h.Reviews.Stats(r.Context(), f, p.Search, trend)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}

func (h *Handlers) placeReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Reviews.PlaceReviews(r.Context(), q.Get("placeId"), q.Get("query"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}

/********** approvals **********/

// decodeBody rejects unknown fields and wrong JSON types before validation runs.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	return nil
}

func (h *Handlers) approve(w http.ResponseWriter, r *http.Request) {
	var body approvalBody
	if err := decodeBody(w, r, &body); err != nil {
		writeErr(w, err)
		return
	}
	key := domain.ReviewKey{Channel: channelOrDefault(body.Channel), ID: *body.ReviewID}
	if err := h.Approvals.Approve(r.Context(), key, *body.IsApproved); err != nil {
		writeErr(w, err)
		return
	}
	msg := "Review disapproved for public display"
	if *body.IsApproved {
		msg = "Review approved for public display"
	}
	writeOK(w, r, envelope{
		Data:    app.ApprovalResult{ReviewKey: key, IsApproved: *body.IsApproved, OK: true},
		Message: msg,
	})
}

func (h *Handlers) bulkApprove(w http.ResponseWriter, r *http.Request) {
	var body bulkApprovalBody
	if err := decodeBody(w, r, &body); err != nil {
		writeErr(w, err)
		return
	}
	ch := channelOrDefault(body.Channel)
	keys := make([]domain.ReviewKey, len(body.ReviewIDs))
	for i, id := range body.ReviewIDs {
		keys[i] = domain.ReviewKey{Channel: ch, ID: id}
	}
	results, err := h.Approvals.BulkApprove(r.Context(), keys, *body.IsApproved)
	if err != nil {
		writeErr(w, err)
		return
	}
	ok := 0
	for _, res := range results {
		if res.OK {
			ok++
		}
	}
	writeOK(w, r, envelope{
		Data:    results,
		Message: fmt.Sprintf("%d of %d reviews updated", ok, len(results)),
	})
}

/********** properties **********/

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	include := false
	if v := r.URL.Query().Get("includeMetrics"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeErr(w, fmt.Errorf("%w: includeMetrics must be true or false", domain.ErrValidation))
			return
		}
		include = b
	}
	out, err := h.Reviews.ListProperties(r.Context(), include)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}

func (h *Handlers) topProperties(w http.ResponseWriter, r *http.Request) {
	n := 5
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || validate.Var(parsed, "min=1,max=100") != nil {
			writeErr(w, fmt.Errorf("%w: n must be an integer between 1 and 100", domain.ErrValidation))
			return
		}
		n = parsed
	}
	out, err := h.Reviews.TopProperties(r.Context(), n)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}

func (h *Handlers) publicReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.PublicReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, r, envelope{Data: out})
}
