package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/shared"
	"github.com/go-chi/chi/v5"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Role    string `json:"role"`
	Subject string `json:"subject"`
	Goal    string `json:"goal"`
}

type completionRequest struct {
	Completed *bool `json:"completed"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, user, err := h.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Debug(r.Context(), "signup failed", "err", err)
		writeError(w, err)
		return
	}
	h.log.Info(r.Context(), "signed up", "user_id", user.ID)
	writeJSON(w, http.StatusOK, models.AuthView{Token: token, User: user.View()})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.AuthView{Token: token, User: user.View()})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()).View())
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), userFrom(r.Context()).ID, req.Role, req.Subject, req.Goal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.View())
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handler) generateTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Generate(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid task id", shared.ErrorValidation))
		return
	}
	var req completionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Completed == nil {
		writeError(w, fmt.Errorf("%w: completed is required", shared.ErrorValidation))
		return
	}
	task, err := h.tasks.SetCompleted(r.Context(), userFrom(r.Context()).ID, id, *req.Completed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) upgrade(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Upgrade(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.View())
}

func (h *handler) getAdvice(w http.ResponseWriter, r *http.Request) {
	text, err := h.advice.Advice(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: text})
}
