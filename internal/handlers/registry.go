package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	Base          *BaseHandler
	AuthHandler   *AuthHandler
	MainHandler   *MainHandler
	APIHandler    *APIHandler
	HealthHandler *HealthHandler
}
