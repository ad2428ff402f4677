// Package http serves the local portal: a small server-rendered shell
// around the session store whose guarded routes demonstrate every guard
// decision as a concrete HTTP response.
package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/application/session"
	"transferdesk/internal/interfaces/http/handlers"
	"transferdesk/internal/interfaces/http/middleware"
	"transferdesk/internal/shared/authorization"
	"transferdesk/internal/shared/logger"
)

// Router represents the portal router configuration
type Router struct {
	engine         *gin.Engine
	sessionHandler *handlers.SessionHandler
	store          *session.Store
}

func NewRouter(store *session.Store, log logger.Interface) *Router {
	if log == nil {
		log = logger.NewLogger().Named("portal")
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.Logger(log))
	engine.SetHTMLTemplate(portalTemplates())

	return &Router{
		engine:         engine,
		sessionHandler: handlers.NewSessionHandler(store, log),
		store:          store,
	}
}

// SetupRoutes registers the portal routes and their guards.
func (r *Router) SetupRoutes() {
	r.engine.GET("/", r.sessionHandler.Index)
	r.engine.GET("/login", r.sessionHandler.ShowLogin)
	r.engine.POST("/login", r.sessionHandler.Login)
	r.engine.POST("/logout", r.sessionHandler.Logout)
	r.engine.GET("/session", r.sessionHandler.Session)

	admin := r.engine.Group("/admin")
	admin.Use(middleware.RequireRole(r.store, authorization.RoleAdmin))
	admin.GET("", r.sessionHandler.AdminHome)

	app := r.engine.Group("/app")
	app.Use(middleware.RequireRole(r.store, authorization.RoleUser))
	app.GET("", r.sessionHandler.UserHome)
}

// GetEngine returns the underlying gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func portalTemplates() *template.Template {
	t := template.New("portal")
	template.Must(t.New("loading.html").Parse(loadingPage))
	template.Must(t.New("login.html").Parse(loginPage))
	template.Must(t.New("home.html").Parse(homePage))
	return t
}

const loadingPage = `<!doctype html>
<html>
<head>
  <meta http-equiv="refresh" content="1">
  <title>TransferDesk</title>
</head>
<body>
  <p>Restoring your session&hellip;</p>
</body>
</html>`

const loginPage = `<!doctype html>
<html>
<head><title>Sign in &middot; TransferDesk</title></head>
<body>
  <h1>TransferDesk</h1>
  {{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
  <form method="post" action="/login">
    <label>Email <input type="email" name="email" required></label>
    <label>Password <input type="password" name="password" required></label>
    <label><input type="checkbox" name="remember" value="true"> Remember me</label>
    <button type="submit">Sign in</button>
  </form>
</body>
</html>`

const homePage = `<!doctype html>
<html>
<head><title>{{.Title}} &middot; TransferDesk</title></head>
<body>
  <h1>{{.Title}}</h1>
  <p>Signed in as {{.Name}} ({{.Email}}), role {{.Role}}{{if .College}}, {{.College}}{{end}}.</p>
  {{if .IsAdmin}}<p>Campus-wide projects, assessments and resolutions load from the dashboard API.</p>
  {{else}}<p>Your college's projects and engagements load from the dashboard API.</p>{{end}}
  <form method="post" action="/logout"><button type="submit">Sign out</button></form>
</body>
</html>`
