// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paulohdf/animedex/internal/platform/middleware"
	requestutil "github.com/paulohdf/animedex/internal/platform/request"
	"github.com/paulohdf/animedex/internal/platform/respond"
	"github.com/paulohdf/animedex/internal/platform/sec"
	"github.com/paulohdf/animedex/internal/platform/validate"
	"github.com/paulohdf/animedex/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Policy is the authorization table for the catalogue routes: every mutating
// endpoint requires ADMIN; everything else only needs an authenticated
// identity (enforced by the gate itself).
func Policy() middleware.Policy {
	return middleware.Policy{
		{Method: http.MethodPost, Pattern: "/animes"}:        sec.RoleAdmin,
		{Method: http.MethodPut, Pattern: "/animes"}:         sec.RoleAdmin,
		{Method: http.MethodDelete, Pattern: "/animes/{id}"}: sec.RoleAdmin,
	}
}

// Routes returns the /animes route tree. Authentication and the
// authorization gate are mounted by the server, before dispatch.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/list", handler.listAll)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.get)

	router.Post("/", handler.create)
	router.Put("/", handler.replace)
	router.Delete("/{id}", handler.remove)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	animes, total, err := handler.service.List(request.Context(), paginationParams.Size, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, animes, pagination.NewMeta(paginationParams.Page, paginationParams.Size, total))
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	animes, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, animes)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.FindByID(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	name := request.URL.Query().Get("name")
	if name == "" {
		respond.Error(writer, request, validate.RequiredError(FieldName, "This query parameter is required"))
		return
	}

	record, err := handler.service.FindByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	var input ReplaceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Replace(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), animeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
