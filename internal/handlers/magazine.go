package handlers

import (
	"encoding/json"
	"net/http"

	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type MagazineHandler struct {
	svc services.MagazineService
}

func NewMagazineHandler(svc services.MagazineService) *MagazineHandler {
	return &MagazineHandler{svc: svc}
}

// List godoc
// @Summary Каталог журналов
// @Description Постраничный список с поиском; mine=true — журналы вызывающего.
// @Tags magazines
// @Produce json
// @Param page query int false "Номер страницы (с 1)"
// @Param pageSize query int false "Размер страницы"
// @Param search query string false "Поиск по названию и описанию"
// @Param mine query bool false "Только свои журналы"
// @Success 200 {object} helpers.List
// @Router /api/magazines [get]
func (h *MagazineHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := helpers.ParsePage(r)
	search := r.URL.Query().Get("search")
	mine := r.URL.Query().Get("mine") == "true"

	items, total, err := h.svc.List(r.Context(), page, pageSize, search, mine, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Magazine{}
	}

	helpers.JSON(w, http.StatusOK, helpers.List{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// Get godoc
// @Summary Карточка журнала
// @Tags magazines
// @Produce json
// @Param id path string true "ID журнала"
// @Success 200 {object} models.Magazine
// @Failure 404 {object} map[string]string
// @Router /api/magazines/{id} [get]
func (h *MagazineHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// Create godoc
// @Summary Создать журнал
// @Description Только для администратора; журнал закрепляется за издателем.
// @Tags magazines
// @Accept json
// @Produce json
// @Param body body models.CreateMagazineRequest true "Данные журнала"
// @Success 201 {object} models.Magazine
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/magazines [post]
func (h *MagazineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMagazineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	m, err := h.svc.Create(r.Context(), req, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, m)
}

// Update godoc
// @Summary Обновить журнал
// @Tags magazines
// @Accept json
// @Produce json
// @Param id path string true "ID журнала"
// @Param body body models.UpdateMagazineRequest true "Изменяемые поля"
// @Success 200 {object} models.Magazine
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/magazines/{id} [patch]
func (h *MagazineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMagazineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	m, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], req, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// Delete godoc
// @Summary Удалить журнал
// @Description Статьи и их комментарии удаляются каскадом.
// @Tags magazines
// @Param id path string true "ID журнала"
// @Success 204 {string} string ""
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/magazines/{id} [delete]
func (h *MagazineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], callerFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
