package handlers

import (
	"encoding/json"
	"net/http"

	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List godoc
// @Summary Комментарии статьи
// @Description Страницы в стабильном порядке (created_at ASC). Доступно только при FULL-доступе к статье.
// @Tags comments
// @Produce json
// @Param id path string true "ID статьи"
// @Param page query int false "Номер страницы (с 1)"
// @Param pageSize query int false "Размер страницы"
// @Success 200 {object} helpers.List
// @Failure 403 {object} map[string]string
// @Router /api/articles/{id}/comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := helpers.ParsePage(r)

	items, total, err := h.svc.ListByArticle(r.Context(), mux.Vars(r)["id"], page, pageSize, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Comment{}
	}

	helpers.JSON(w, http.StatusOK, helpers.List{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// Create godoc
// @Summary Добавить комментарий
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "ID статьи"
// @Param body body models.CreateCommentRequest true "Текст комментария"
// @Success 201 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/{id}/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	c, err := h.svc.Create(r.Context(), mux.Vars(r)["id"], req.Body, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

// Delete godoc
// @Summary Удалить комментарий
// @Description Доступно автору, издателю журнала этой статьи и админу.
// @Tags comments
// @Param id path string true "ID комментария"
// @Success 204 {string} string ""
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], callerFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
