package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteVippsLogin    = "/auth/vipps/login"
	RouteVippsCallback = "/auth/vipps/callback"
	RouteSessionCheck  = "/auth/session/{sessionId}"
	RouteVippsSession  = "/auth/vipps/session"
	RouteSignout       = "/auth/signout"
	RouteHealth        = "/auth/health"
)
