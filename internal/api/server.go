package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmroz/inquiry-desk/internal/models"
	"github.com/jmroz/inquiry-desk/internal/repository"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps carries everything the handlers need, constructed once in main.
type Deps struct {
	Inquiries *repository.InquiryRepository
	Knowledge *repository.KnowledgeRepository
	Config    *repository.ConfigStore
	Stats     *repository.StatsAggregator
	Bootstrap *repository.Bootstrapper
	Token     string
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(BearerAuth(deps.Token))

	r.Get("/init", handleInit(deps))
	r.Get("/inquiries", handleListInquiries(deps))
	r.Post("/inquiries", handleCreateInquiry(deps))
	r.Put("/inquiries/{id}/status", handleSetInquiryStatus(deps))
	r.Get("/config", handleGetConfig(deps))
	r.Put("/config", handleSetConfig(deps))
	r.Get("/knowledge", handleListKnowledge(deps))
	r.Post("/knowledge", handleCreateKnowledge(deps))
	r.Delete("/knowledge/{id}", handleDeleteKnowledge(deps))
	r.Get("/stats", handleGetStats(deps))

	return r
}

func handleInit(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := deps.Bootstrap.Run(r.Context())
		respondData(w, message)
	}
}

func handleListInquiries(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inquiries, err := deps.Inquiries.List(r.Context())
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, inquiries)
	}
}

func handleCreateInquiry(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var input models.InquiryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		inquiry, err := deps.Inquiries.Create(r.Context(), input)
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, inquiry)
	}
}

type statusRequest struct {
	Status        models.Status `json:"status"`
	FinalResponse string        `json:"finalResponse"`
}

func handleSetInquiryStatus(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		id := chi.URLParam(r, "id")

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if req.Status != models.StatusApproved && req.Status != models.StatusRejected {
			respondError(w, http.StatusBadRequest, "status must be approved or rejected")
			return
		}

		inquiry, err := deps.Inquiries.SetStatus(r.Context(), id, req.Status, req.FinalResponse)
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, inquiry)
	}
}

func handleGetConfig(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := deps.Config.Get(r.Context())
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, cfg)
	}
}

func handleSetConfig(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		// The record is replaced wholesale; omitted fields are dropped.
		var cfg models.AIConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		if err := deps.Config.Set(r.Context(), cfg); err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, cfg)
	}
}

func handleListKnowledge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := deps.Knowledge.List(r.Context())
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, items)
	}
}

type knowledgeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func handleCreateKnowledge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var req knowledgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		item, err := deps.Knowledge.Create(r.Context(), req.Title, req.Content)
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, item)
	}
}

func handleDeleteKnowledge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		// Idempotent: deleting an absent id succeeds.
		if err := deps.Knowledge.Delete(r.Context(), id); err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, struct{}{})
	}
}

func handleGetStats(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Stats.Get(r.Context())
		if err != nil {
			respondRepositoryError(w, err)
			return
		}
		respondData(w, stats)
	}
}
