package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/application/session"
	"transferdesk/internal/infrastructure/api"
	"transferdesk/internal/shared/authorization"
	"transferdesk/internal/shared/logger"
)

// SessionHandler serves the portal's login flow and the per-role
// landing pages.
type SessionHandler struct {
	store  *session.Store
	logger logger.Interface
}

func NewSessionHandler(store *session.Store, log logger.Interface) *SessionHandler {
	if log == nil {
		log = logger.NewLogger().Named("portal")
	}
	return &SessionHandler{
		store:  store,
		logger: log,
	}
}

// Index routes the bare origin to wherever the session points.
func (h *SessionHandler) Index(c *gin.Context) {
	state := h.store.Current()
	if state.Loading {
		c.Header("Retry-After", "1")
		c.HTML(http.StatusServiceUnavailable, "loading.html", gin.H{})
		return
	}
	if !state.Authenticated() {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, state.User.Role.HomeRoute())
}

// ShowLogin renders the login form, or skips it for an authenticated
// session.
func (h *SessionHandler) ShowLogin(c *gin.Context) {
	state := h.store.Current()
	if state.Authenticated() {
		c.Redirect(http.StatusFound, state.User.Role.HomeRoute())
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember bool   `form:"remember"`
}

// Login submits the credential pair to the session store and renders
// any rejection back into the form.
func (h *SessionHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Invalid form submission"})
		return
	}

	err := h.store.Login(c.Request.Context(), form.Email, form.Password, form.Remember)
	if err != nil {
		if errors.Is(err, session.ErrOperationInFlight) {
			c.HTML(http.StatusConflict, "login.html", gin.H{"Error": "Another sign-in is still in progress"})
			return
		}

		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message := apiErr.Message()
			if message == "" {
				message = "Sign in failed"
			}
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": message})
			return
		}

		h.logger.Errorw("login failed", "error", err)
		c.HTML(http.StatusBadGateway, "login.html", gin.H{"Error": "Could not reach the dashboard backend"})
		return
	}

	c.Redirect(http.StatusFound, h.store.Current().User.Role.HomeRoute())
}

// Logout tears the session down and returns to the login page. Repeated
// logouts land on the same page without complaint.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		if errors.Is(err, session.ErrOperationInFlight) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.logger.Errorw("logout failed", "error", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// AdminHome is the admin landing page.
func (h *SessionHandler) AdminHome(c *gin.Context) {
	h.renderHome(c, "Technology Transfer Administration")
}

// UserHome is the landing page for college-level users.
func (h *SessionHandler) UserHome(c *gin.Context) {
	h.renderHome(c, "My Technology Transfer Projects")
}

func (h *SessionHandler) renderHome(c *gin.Context, title string) {
	state := h.store.Current()
	if state.User == nil {
		// The guard should have redirected already; don't render a
		// half-empty page if it somehow didn't.
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":   title,
		"Name":    state.User.FullName(),
		"Email":   state.User.Email,
		"Role":    state.User.Role.String(),
		"College": state.User.College,
		"IsAdmin": state.User.Role == authorization.RoleAdmin,
	})
}

// Session reports the current session state as JSON for local tooling.
func (h *SessionHandler) Session(c *gin.Context) {
	state := h.store.Current()

	resp := gin.H{
		"loading":       state.Loading,
		"authenticated": state.Authenticated(),
	}
	if state.User != nil {
		resp["user"] = state.User
		resp["home"] = state.User.Role.HomeRoute()
	}
	c.JSON(http.StatusOK, resp)
}
