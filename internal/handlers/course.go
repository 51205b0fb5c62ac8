package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coursedesk/courseapi/internal/logging"
	"github.com/coursedesk/courseapi/internal/models"
	"github.com/coursedesk/courseapi/internal/services"
	"github.com/coursedesk/courseapi/internal/validation"
)

type CourseHandler struct {
	courseService services.CourseServiceInterface
}

func NewCourseHandler(courseService services.CourseServiceInterface) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// courseFields is the declared validation order for course writes.
var courseFields = []string{"title", "description", "userId"}

type SaveCourseRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	UserID          int64   `json:"userId"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// List answers GET /api/courses. Public, no projection beyond the
// model's own serialization.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		logging.Error("Listing courses", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if courses == nil {
		courses = []*models.Course{}
	}

	writeJSON(w, http.StatusOK, courses)
}

// Get answers GET /api/courses/{id}. A missing row is a real 404.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseCourseID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	course, err := h.courseService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrCourseNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Getting course", map[string]interface{}{"error": err.Error(), "course_id": id})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// Create answers POST /api/courses. The owner is always the
// authenticated user; a userId naming someone else cannot plant a
// course in their account.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusBadRequest, accessDeniedMessage)
		return
	}

	payload, body, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if messages := validation.RequireFields(payload, courseFields); len(messages) > 0 {
		writeValidationErrors(w, messages)
		return
	}

	var req SaveCourseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.courseService.Create(r.Context(), models.CreateCourseParams{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeValidationErrors(w, verr.Errors)
		return
	}
	if err != nil {
		logging.Error("Creating course", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/courses/%d", course.UserID))
	w.WriteHeader(http.StatusCreated)
}

// Update answers PUT /api/courses/{id}: validation, then existence,
// then ownership. A 404 always wins over a 403.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusBadRequest, accessDeniedMessage)
		return
	}

	payload, body, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if messages := validation.RequireFields(payload, courseFields); len(messages) > 0 {
		writeValidationErrors(w, messages)
		return
	}

	var req SaveCourseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := parseCourseID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	course, err := h.courseService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrCourseNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Getting course", map[string]interface{}{"error": err.Error(), "course_id": id})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if course.UserID != user.ID {
		logging.Warn("Course update denied", map[string]interface{}{
			"course_id": id,
			"owner_id":  course.UserID,
			"user_id":   user.ID,
		})
		writeMessage(w, http.StatusForbidden, accessDeniedMessage)
		return
	}

	err = h.courseService.Update(r.Context(), id, models.UpdateCourseParams{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeValidationErrors(w, verr.Errors)
		return
	}
	if errors.Is(err, services.ErrCourseNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Updating course", map[string]interface{}{"error": err.Error(), "course_id": id})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete answers DELETE /api/courses/{id}: existence, then ownership.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusBadRequest, accessDeniedMessage)
		return
	}

	id, err := parseCourseID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	course, err := h.courseService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrCourseNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Getting course", map[string]interface{}{"error": err.Error(), "course_id": id})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if course.UserID != user.ID {
		logging.Warn("Course delete denied", map[string]interface{}{
			"course_id": id,
			"owner_id":  course.UserID,
			"user_id":   user.ID,
		})
		writeMessage(w, http.StatusForbidden, accessDeniedMessage)
		return
	}

	if err := h.courseService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logging.Error("Deleting course", map[string]interface{}{"error": err.Error(), "course_id": id})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCourseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
