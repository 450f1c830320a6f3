package handlers

import (
	"encoding/json"
	"net/http"

	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type ArticleHandler struct {
	svc     services.ArticleService
	preview *services.PreviewService
}

func NewArticleHandler(svc services.ArticleService, preview *services.PreviewService) *ArticleHandler {
	return &ArticleHandler{svc: svc, preview: preview}
}

// Get godoc
// @Summary Статья с решением о доступе
// @Description Возвращает {article, access}. При SUMMARY_ONLY поле content отсутствует. Чужой черновик — 404.
// @Tags articles
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} models.ArticleWithAccess
// @Failure 404 {object} map[string]string
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetWithAccess(r.Context(), mux.Vars(r)["id"], callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}

// ListByMagazine godoc
// @Summary Статьи журнала
// @Description Не владельцу отдаются только PUBLISHED; фильтр status доступен владельцу и админу.
// @Tags articles
// @Produce json
// @Param id path string true "ID журнала"
// @Param page query int false "Номер страницы (с 1)"
// @Param pageSize query int false "Размер страницы"
// @Param status query string false "DRAFT или PUBLISHED"
// @Success 200 {object} helpers.List
// @Failure 404 {object} map[string]string
// @Router /api/magazines/{id}/articles [get]
func (h *ArticleHandler) ListByMagazine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := helpers.ParsePage(r)
	status := r.URL.Query().Get("status")

	items, total, err := h.svc.ListByMagazine(r.Context(), mux.Vars(r)["id"], page, pageSize, status, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.ArticleRow{}
	}

	helpers.JSON(w, http.StatusOK, helpers.List{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// Create godoc
// @Summary Создать статью
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "ID журнала"
// @Param body body models.CreateArticleRequest true "Данные статьи"
// @Success 201 {object} models.Article
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/magazines/{id}/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	a, err := h.svc.Create(r.Context(), mux.Vars(r)["id"], req, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, a)
}

// Update godoc
// @Summary Обновить статью
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "ID статьи"
// @Param body body models.UpdateArticleRequest true "Изменяемые поля"
// @Success 200 {object} models.Article
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/{id} [patch]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	a, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], req, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Delete godoc
// @Summary Удалить статью
// @Tags articles
// @Param id path string true "ID статьи"
// @Success 204 {string} string ""
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], callerFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish godoc
// @Summary Опубликовать статью
// @Tags articles
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} models.Article
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/{id}/publish [post]
func (h *ArticleHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

// Unpublish godoc
// @Summary Снять статью с публикации
// @Description Статья возвращается в DRAFT: видна только владельцу и админу.
// @Tags articles
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} models.Article
// @Failure 403 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/{id}/unpublish [post]
func (h *ArticleHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *ArticleHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	a, err := h.svc.SetPublished(r.Context(), mux.Vars(r)["id"], published, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Preview godoc
// @Summary Предпросмотр статьи
// @Description Рендерит markdown в очищенный HTML без сохранения в БД.
// @Tags articles
// @Accept json
// @Produce json
// @Param body body models.PreviewRequest true "Markdown статьи"
// @Success 200 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/articles/preview [post]
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	html, err := h.preview.Render(r.Context(), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"html": html})
}
