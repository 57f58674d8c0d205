package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health       *Handler
	Drc          *DrcHandler
	Transfer     *TransferHandler
	Identity     *IdentityHandler
	Principal    *PrincipalHandler
	Applications *ApplicationHandler
}

func Register(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)

	e.POST("/drcs", h.Drc.CreateDrc)
	e.PUT("/drcs/:id", h.Drc.UpdateDrc)
	e.GET("/drcs/:id", h.Drc.GetDrc)
	e.GET("/drcs/:id/transfers", h.Drc.ListTransfers)
	e.POST("/drcs/:id/transfers", h.Transfer.CreateTransfer)

	e.POST("/identities/:kind/:id", h.Identity.AddIdentity)
	e.PUT("/identities/:kind/:id", h.Identity.UpdateIdentity)
	e.DELETE("/identities/:kind/:id", h.Identity.DeleteIdentity)
	e.GET("/identities/:kind/:id", h.Identity.GetAccount)
	e.GET("/identities/:kind/by-account/:account", h.Identity.GetID)
	e.GET("/officers/:id/role", h.Identity.GetOfficerRole)
	e.GET("/officers/by-account/:account/role", h.Identity.GetOfficerRoleByAccount)

	e.PUT("/principals/:slot", h.Principal.SetPrincipal)
	e.GET("/principals/:slot", h.Principal.GetPrincipal)

	e.GET("/applications/:id", h.Applications.GetApplication)
	e.GET("/notices/:id/applications/:index", h.Applications.ApplicationAt)
}
