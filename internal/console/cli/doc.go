// Package cli is the interactive front end of the warehouse console.
//
// It runs a read-eval-print loop over stdin. Every command that shows
// warehouse data is a protected view: before it runs, the session is checked
// and the user is either let through or sent to the login view. Each view
// runs in its own scope, so pressing Ctrl-C while a request is in flight
// abandons that view without leaving the console.
//
// Commands
//
//	Signed out:
//	  help, login, register, format <table|json|yaml|csv>, exit | quit
//
//	Signed in, in addition:
//	  whoami, logout, dashboard
//	  orders [start end], order <id>, order-update <id>, order-delete <id>
//	  assembly [start end], completed
//	  reports, report <id>
//	  employees, employee-add, employee-edit <id>, employee-delete <id>
//	  block <id>, unblock <id>, passwd [id]
//	  profile, profile-edit, avatar-upload <path> [id], avatar-delete [id]
//	  search <term>, page <n>, rows <n>
//
// Dates are typed as dd.mm.yyyy or yyyy-mm-dd.
package cli
