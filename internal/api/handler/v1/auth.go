package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/jwthelper"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	GoogleLogin(ctx context.Context, idToken string) (domain.User, bool, error)
	Profile(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterRequest  true  "request body"
// @Success      201      {object}  response.AuthResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)))
		return
	}

	h.renderToken(ctx, http.StatusCreated, "User registered successfully", user)
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.AuthResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)))
		return
	}

	h.renderToken(ctx, http.StatusOK, "Login successful", user)
}

// HandleGoogleLogin godoc
// @Summary      Login or sign up with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.GoogleLoginRequest  true  "request body"
// @Success      200      {object}  response.AuthResponse
// @Success      201      {object}  response.AuthResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/google [post]
func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	var req request.GoogleLoginRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, created, err := h.svc.GoogleLogin(ctx.Request.Context(), req.IDToken)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGoogleLogin -> h.svc.GoogleLogin -> %w", err)))
		return
	}

	if created {
		h.renderToken(ctx, http.StatusCreated, "User registered successfully", user)
		return
	}
	h.renderToken(ctx, http.StatusOK, "Login successful", user)
}

func (h *AuthHandler) renderToken(ctx *gin.Context, status int, message string, user domain.User) {
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, user.Email, string(user.Role), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.renderToken -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(status, response.AuthResponse{
		Message: message,
		Token:   token,
		User:    user,
	})
}

// HandleGetProfile godoc
// @Summary      Get the current user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /auth/profile [get]
// @Security BearerAuth
func (h *AuthHandler) HandleGetProfile(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Profile(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetProfile -> h.svc.Profile -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"user":    user,
	})
}

// HandleUpdateProfile godoc
// @Summary      Update the current user's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /auth/profile [put]
// @Security BearerAuth
func (h *AuthHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if respErr := bindJSON(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	updated, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, domain.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
