// Package routes defines the navigation targets the controllers hand
// to their onNavigate callbacks.
package routes

const (
	Login     = "#login"
	Bills     = "#employee/bills"
	NewBill   = "#employee/bill/new"
	Dashboard = "#admin/dashboard"
)
