package handlers

import (
	"net/http"

	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type SubscriptionHandler struct {
	svc services.SubscriptionService
}

func NewSubscriptionHandler(svc services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Subscribe godoc
// @Summary Подписаться на журнал
// @Description Идемпотентно: при живой подписке возвращает её id и alreadyActive=true.
// @Tags subscriptions
// @Produce json
// @Param id path string true "ID журнала"
// @Success 201 {object} models.SubscribeResponse
// @Failure 404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /api/magazines/{id}/subscribe [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Subscribe(r.Context(), mux.Vars(r)["id"], callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyActive {
		status = http.StatusOK
	}
	helpers.JSON(w, status, resp)
}

// ListMine godoc
// @Summary Мои подписки
// @Tags subscriptions
// @Produce json
// @Param page query int false "Номер страницы (с 1)"
// @Param pageSize query int false "Размер страницы"
// @Success 200 {object} helpers.List
// @Security ApiKeyAuth
// @Router /api/subscriptions/me [get]
func (h *SubscriptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := helpers.ParsePage(r)

	items, total, err := h.svc.ListMine(r.Context(), callerFrom(r), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Subscription{}
	}

	helpers.JSON(w, http.StatusOK, helpers.List{Items: items, Total: total, Page: page, PageSize: pageSize})
}
