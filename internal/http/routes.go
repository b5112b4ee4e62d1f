package http

import (
	"seo_meta_audit/internal/adaptors"
	"seo_meta_audit/internal/http/handlers"
	"seo_meta_audit/internal/http/middleware"
	"seo_meta_audit/internal/service"
)

func initRoutes(r *Router) {
	auditor := service.NewAuditor(r.log, adaptors.NewWebClient(r.appCfg.FetchTimeout, r.log), r.appCfg.IsolateRowErrors)

	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))
	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Post("/audit", handlers.NewAuditHandler(auditor, r.log).Handle)
}
