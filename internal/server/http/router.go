// Package http exposes the REST surface of the VaultCore API over gin.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vaultcore/api/internal/logging"
	"github.com/vaultcore/api/internal/server/permission"
	"github.com/vaultcore/api/internal/server/services"
)

// NewRouter builds the gin engine with all routes registered.
//
// Reads on the catalog are public; mutations require a valid access token and
// a role allowed to perform the action.
func NewRouter(auth *services.AuthService, catalog *services.CatalogService, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	ah := NewAuthHandler(auth, logger)
	ch := NewCatalogHandler(catalog, logger)

	ag := router.Group("/auth")
	ag.POST("/register", ah.Register)
	ag.POST("/login", ah.Login)
	ag.POST("/refresh", ah.Refresh)

	router.GET("/techs", ch.ListTechs)
	router.GET("/techs/:id", ch.GetTech)
	router.GET("/projects", ch.ListProjects)
	router.GET("/projects/:id", ch.GetProject)

	protected := router.Group("/")
	protected.Use(AuthMiddleware(auth))

	protected.GET("/auth/me", ah.Me)

	write := protected.Group("/", RequireAction(permission.ActionCatalogWrite))
	write.POST("/techs", ch.CreateTech)
	write.PATCH("/techs/:id", ch.UpdateTech)
	write.POST("/projects", ch.CreateProject)
	write.PATCH("/projects/:id", ch.UpdateProject)
	write.PUT("/projects/:id/techs", ch.LinkProjectTechs)

	del := protected.Group("/", RequireAction(permission.ActionCatalogDelete))
	del.DELETE("/techs/:id", ch.DeleteTech)
	del.DELETE("/projects/:id", ch.DeleteProject)

	return router
}
