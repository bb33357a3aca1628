// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"net/http"
	"strings"

	notificationstore "github.com/aulahub/aulahub/internal/app/store/notifications"
	userstore "github.com/aulahub/aulahub/internal/app/store/users"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	sysauth "github.com/aulahub/aulahub/internal/app/system/auth"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler owns the public register/login endpoints.
type Handler struct {
	Users         *userstore.Store
	Notifications *notificationstore.Store
	Tokens        *sysauth.Manager
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *sysauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		Notifications: notificationstore.New(db),
		Tokens:        tokens,
		Log:           logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register. New accounts get the teacher role
// and raise a NEW_USER notification so an admin can approve them.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("name, email, and password are required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
	})
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	_, err = h.Notifications.Create(ctx, models.Notification{
		RoleTarget: models.RoleAdmin,
		Type:       models.NotificationNewUser,
		Title:      "New user registration",
		Message:    user.Name + " (" + user.Email + ") registered and is awaiting approval.",
		Data:       map[string]string{"userId": user.ID.Hex()},
	})
	if err != nil {
		h.Log.Warn("new-user notification not created",
			zap.Error(err), zap.String("user_id", user.ID.Hex()))
	}

	httpx.WriteMessage(w, http.StatusCreated, "user registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type loginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login handles POST /api/login. Unknown emails and wrong passwords get
// the same answer so the endpoint cannot be used to probe for accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			httpx.WriteError(w, r, h.Log, apperr.Invalid("invalid credentials"))
			return
		}
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("invalid credentials"))
		return
	}

	token, err := h.Tokens.Issue(sysauth.TokenUser{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User: loginUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
