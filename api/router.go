// Package api hosts the REST surface: a gin engine that mounts every
// controller under a shared base URL, split into public and protected
// route groups.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/vaibhavshukla06/Labyrnith-Survival/api/i"
)

// Router owns the HTTP server and the controllers mounted on it.
type Router struct {
	addr                    string
	baseURL                 string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
}

// Config carries everything a Router needs: where to listen, the URL
// prefix, the controllers to mount, and the middleware guarding the
// protected group.
type Config struct {
	Addr                    string
	BaseURL                 string
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc
}

// NewRouter assembles a Router from the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
	}
}

// Run builds the route tree and serves until the listener fails. Every
// controller registers twice: its open routes on the public group and its
// guarded routes on the group behind the authorization middleware.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	router := gin.Default()

	api := router.Group(r.baseURL)

	publicRoutes := api.Group("/v1")
	for _, c := range r.controllers {
		c.RegisterPublic(publicRoutes)
	}

	protectedRoutes := api.Group("/v1")
	protectedRoutes.Use(r.authorizationMiddleware)
	for _, c := range r.controllers {
		c.RegisterProtected(protectedRoutes)
	}

	return router.Run(r.addr)
}
