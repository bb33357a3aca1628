// internal/app/features/students/handler.go
package students

import (
	"context"
	"net/http"

	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the direct student endpoints (payment updates land here;
// roster changes go through the groups feature).
type Handler struct {
	Students *studentstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Students: studentstore.New(db), Log: logger}
}

type paymentRequest struct {
	MoneyProvided int `json:"moneyProvided"`
}

type paymentResponse struct {
	Message string         `json:"message"`
	Student models.Student `json:"student"`
}

// UpdatePayment handles PUT /api/students/{studentId}/payment. The value
// overwrites the counter; negative amounts are rejected.
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	studentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentId"))
	if err != nil {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("studentId is not a valid id"))
		return
	}
	var req paymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Students.UpdatePayment(ctx, studentID, req.MoneyProvided)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, paymentResponse{
		Message: "payment updated",
		Student: st,
	})
}
