// Package messages holds the fallback notification strings shown when the
// backend fails without a usable message of its own.
package messages

import "strings"

// Key identifies one operation's fallback message.
type Key string

const (
	SignIn         Key = "signin"
	Register       Key = "register"
	SignOut        Key = "signout"
	SessionExpired Key = "session_expired"
	Forbidden      Key = "forbidden"
	Unavailable    Key = "unavailable"
	LoadProfile    Key = "profile_load"
	UpdateProfile  Key = "profile_update"
	LoadOrders     Key = "orders_load"
	LoadOrder      Key = "order_load"
	UpdateOrder    Key = "order_update"
	DeleteOrder    Key = "order_delete"
	LoadAssembly   Key = "assembly_load"
	LoadCompleted  Key = "completed_load"
	LoadReports    Key = "reports_load"
	LoadEmployees  Key = "employees_load"
	AddEmployee    Key = "employee_add"
	UpdateEmployee Key = "employee_update"
	DeleteEmployee Key = "employee_delete"
	BlockEmployee  Key = "employee_block"
	ChangePassword Key = "password_change"
	UploadAvatar   Key = "avatar_upload"
	DeleteAvatar   Key = "avatar_delete"
	LoadDashboard  Key = "dashboard_load"
	Generic        Key = "generic"
)

// DefaultLocale is used when the configured locale has no table.
const DefaultLocale = "ru"

var catalog = map[string]map[Key]string{
	"ru": {
		SignIn:         "Ошибка при входе",
		Register:       "Ошибка при регистрации",
		SignOut:        "Ошибка при выходе",
		SessionExpired: "Сессия истекла, войдите снова",
		Forbidden:      "Недостаточно прав",
		Unavailable:    "Сервер недоступен",
		LoadProfile:    "Не удалось загрузить профиль",
		UpdateProfile:  "Не удалось обновить профиль",
		LoadOrders:     "Не удалось загрузить заказы",
		LoadOrder:      "Не удалось загрузить заказ",
		UpdateOrder:    "Не удалось обновить заказ",
		DeleteOrder:    "Не удалось удалить заказ",
		LoadAssembly:   "Не удалось загрузить заказы на сборку",
		LoadCompleted:  "Не удалось загрузить собранные заказы",
		LoadReports:    "Не удалось загрузить отчеты",
		LoadEmployees:  "Не удалось загрузить сотрудников",
		AddEmployee:    "Не удалось добавить сотрудника",
		UpdateEmployee: "Не удалось обновить сотрудника",
		DeleteEmployee: "Не удалось удалить сотрудника",
		BlockEmployee:  "Не удалось изменить блокировку",
		ChangePassword: "Не удалось изменить пароль",
		UploadAvatar:   "Не удалось загрузить аватар",
		DeleteAvatar:   "Не удалось удалить аватар",
		LoadDashboard:  "Не удалось загрузить сводку",
		Generic:        "Произошла ошибка",
	},
	"en": {
		SignIn:         "Sign-in failed",
		Register:       "Registration failed",
		SignOut:        "Sign-out failed",
		SessionExpired: "Session expired, please sign in again",
		Forbidden:      "Access denied",
		Unavailable:    "Server unavailable",
		LoadProfile:    "Failed to load profile",
		UpdateProfile:  "Failed to update profile",
		LoadOrders:     "Failed to load orders",
		LoadOrder:      "Failed to load order",
		UpdateOrder:    "Failed to update order",
		DeleteOrder:    "Failed to delete order",
		LoadAssembly:   "Failed to load assembly orders",
		LoadCompleted:  "Failed to load completed orders",
		LoadReports:    "Failed to load reports",
		LoadEmployees:  "Failed to load employees",
		AddEmployee:    "Failed to add employee",
		UpdateEmployee: "Failed to update employee",
		DeleteEmployee: "Failed to delete employee",
		BlockEmployee:  "Failed to change block status",
		ChangePassword: "Failed to change password",
		UploadAvatar:   "Failed to upload avatar",
		DeleteAvatar:   "Failed to delete avatar",
		LoadDashboard:  "Failed to load dashboard",
		Generic:        "Something went wrong",
	},
}

// Lookup returns the message for key in locale. Unknown locales fall back to
// DefaultLocale, unknown keys to Generic.
func Lookup(locale string, key Key) string {
	table, ok := catalog[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		table = catalog[DefaultLocale]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	return table[Generic]
}

// Supported reports whether locale has its own table.
func Supported(locale string) bool {
	_, ok := catalog[strings.ToLower(strings.TrimSpace(locale))]
	return ok
}
