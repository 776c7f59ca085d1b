// Package handler exposes the user and login operations over HTTP.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"user-session-backend/internal/identity/service"
	"user-session-backend/internal/logging"
	"user-session-backend/internal/security"
	userdomain "user-session-backend/internal/user/domain"
)

// SessionCookieName is the cookie carrying the session id.
const SessionCookieName = "sessionId"

// UserHandler serves the user routes: create, fetch by id, and login.
type UserHandler struct {
	svc      *service.AuthService
	policy   security.PasswordPolicy
	validate *validator.Validate
	log      logging.Logger
}

// NewUserHandler returns a UserHandler backed by svc. The password policy is
// enforced here, on the request, before anything reaches the hasher.
func NewUserHandler(svc *service.AuthService, policy security.PasswordPolicy, log logging.Logger) *UserHandler {
	return &UserHandler{
		svc:      svc,
		policy:   policy,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

type addUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"first_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name" validate:"omitempty,max=100"`
	UserTypeID int64  `json:"user_type_id" validate:"required"`
}

type loginRequest struct {
	// Username carries the email; the field name is historical.
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	UserTypeID int64     `json:"user_type_id"`
	CreatedBy  *int64    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		UserTypeID: u.UserTypeID,
		CreatedBy:  u.CreatedBy,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// AddUser handles POST /api/users. The route requires an authenticated
// session; the creating user is recorded as created_by.
func (h *UserHandler) AddUser(c *fiber.Ctx) error {
	var body addUserRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	if err := h.policy.Validate(body.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	nu := service.NewUser{
		Email:      body.Email,
		Password:   body.Password,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		UserTypeID: body.UserTypeID,
	}
	if creator, ok := c.Locals("user").(*userdomain.User); ok {
		id := creator.ID
		nu.CreatedBy = &id
	}

	h.log.Info(c.UserContext(), "POST user")
	user, err := h.svc.AddUser(c.UserContext(), nu)
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}

	h.log.Info(c.UserContext(), "GET user", "id", id)
	user, err := h.svc.GetUser(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(toUserResponse(user))
}

// Login handles POST /api/users/login. On success the session id is set as
// the sessionId cookie, expiring with the session.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}

	h.log.Info(c.UserContext(), "login attempt")
	res, err := h.svc.Login(c.UserContext(), body.Username, body.Password)
	if err != nil {
		return mapServiceError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    res.SessionID,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Authentication successful"})
}

// mapServiceError translates service sentinels into HTTP errors. Anything
// unrecognized fails closed as a generic 500 with no internal detail.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return fiber.NewError(fiber.StatusBadRequest, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrSessionExpired):
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrStoreUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "service temporarily unavailable, please try again")
	default:
		// Fail closed: uncategorized errors are never echoed to the caller.
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}

// validationMessage flattens validator errors into a caller-facing message
// naming the offending fields, without echoing submitted values.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	msg := "invalid request:"
	for i, fe := range verrs {
		if i > 0 {
			msg += ","
		}
		msg += " " + fe.Field() + " failed " + fe.Tag()
	}
	return msg
}
