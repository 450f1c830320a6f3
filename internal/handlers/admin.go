package handlers

import (
	"encoding/json"
	"net/http"

	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Overview godoc
// @Summary Сводка по платформе
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminOverview
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}

// ListUsers godoc
// @Summary Пользователи платформы
// @Tags admin
// @Produce json
// @Param page query int false "Номер страницы (с 1)"
// @Param pageSize query int false "Размер страницы"
// @Param search query string false "Поиск по email и имени"
// @Success 200 {object} helpers.List
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := helpers.ParsePage(r)
	search := r.URL.Query().Get("search")

	items, total, err := h.svc.ListUsers(r.Context(), page, pageSize, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.User{}
	}

	helpers.JSON(w, http.StatusOK, helpers.List{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// UpdateUser godoc
// @Summary Изменить роль или статус пользователя
// @Description SUSPENDED отрезает пользователю все мутации со следующего запроса.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param body body models.AdminUpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.svc.UpdateUser(r.Context(), id, req); err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"id": id})
}
