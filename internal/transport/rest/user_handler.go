package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

type UserHandler struct {
	svc domain.UserService
}

func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := domain.ListOptions{
		Search:     query.Get("search"),
		IsPaginate: query.Get("paginate") != "false",
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		opts.Limit = limit
	}

	res, err := h.svc.Get(r.Context(), opts)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: res.Data,
		Meta: res.Meta,
	})
}

func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req domain.UserSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	if err := h.svc.Create(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			JSONError(w, http.StatusConflict, "Email already registered")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "User created successfully.",
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req domain.UserSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	if err := h.svc.Update(r.Context(), req, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			JSONError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, domain.ErrUserNotFound):
			JSONError(w, http.StatusNotFound, "User not found")
		default:
			JSONError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "User updated successfully.",
	})
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			JSONError(w, http.StatusNotFound, "User not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusNoContent, APIResponse{})
}
