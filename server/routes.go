package server

func (s *Server) initRoutes() {
	// Flow endpoints consumed by the mobile app
	s.RegisterRouteHandler("GET "+RouteVippsLogin, ChainMiddleware(s.StartLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSessionCheck, ChainMiddleware(s.SessionCheckHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteVippsSession, ChainMiddleware(s.RedeemSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignout, ChainMiddleware(s.SignoutHandler(), s.APIMiddleware()...))

	// Vipps redirects the user's browser here after the consent UI
	s.RegisterRouteHandler("GET "+RouteVippsCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}
