package handlers

import "parkirku/services"

// Handler 聚合引擎服務，於啟動時建構一次並注入路由
type Handler struct {
	Registry *services.Registry
	Billing  *services.Billing
	Ledger   *services.Ledger
	Reports  *services.Reports
	Monitor  *services.Monitor
	Users    *services.Users
}

func New(registry *services.Registry, billing *services.Billing, ledger *services.Ledger, reports *services.Reports, monitor *services.Monitor, users *services.Users) *Handler {
	return &Handler{
		Registry: registry,
		Billing:  billing,
		Ledger:   ledger,
		Reports:  reports,
		Monitor:  monitor,
		Users:    users,
	}
}
