package activity

// DefaultIcon is used for actions missing from the catalog and for records
// created without an icon.
const DefaultIcon = "📝"

// actionIcons maps action keys to display glyphs. It is never written after init.
var actionIcons = map[string]string{
	// Auth
	"login":  "🔐",
	"logout": "🚪",

	// Generic CRUD
	"create": "➕",
	"update": "✏️",
	"delete": "🗑️",
	"view":   "👁️",

	// Job workflow
	"job_create":              "📋",
	"job_status_change":       "🔄",
	"job_assign":              "👤",
	"job_role_add":            "📦",
	"job_role_remove":         "📦",
	"job_measure_schedule":    "📅",
	"job_measure_complete":    "📐",
	"job_technical_upload":    "📏",
	"job_offer_create":        "💰",
	"job_offer_update":        "💰",
	"job_offer_approve":       "✅",
	"job_offer_reject":        "❌",
	"job_contract_upload":     "📄",
	"job_production_start":    "🏭",
	"job_production_complete": "✅",
	"job_assembly_schedule":   "🔧",
	"job_assembly_complete":   "🔧",
	"job_delivery":            "🚚",
	"job_complete":            "🎉",
	"job_cancel":              "❌",

	// Planning
	"planning_create": "📅",
	"planning_update": "📅",
	"planning_delete": "📅",
	"planning_move":   "↔️",

	// Tasks
	"task_create":        "📌",
	"task_update":        "✏️",
	"task_assign":        "👤",
	"task_status_change": "🔄",
	"task_complete":      "✅",

	// Customers
	"customer_create": "👤",
	"customer_update": "✏️",
	"customer_delete": "🗑️",

	// Personnel
	"personnel_create": "👨‍💼",
	"personnel_update": "✏️",
	"personnel_delete": "🗑️",
	"user_create":      "🔑",

	// Teams
	"team_create":        "👥",
	"team_update":        "✏️",
	"team_member_add":    "➕",
	"team_member_remove": "➖",

	// Roles
	"role_create": "🏷️",
	"role_update": "✏️",
	"role_delete": "🗑️",

	// Stock
	"stock_create":   "📦",
	"stock_update":   "✏️",
	"stock_add":      "📈",
	"stock_remove":   "📉",
	"stock_movement": "🔄",

	// Purchasing
	"purchase_create":   "🛒",
	"purchase_update":   "✏️",
	"purchase_receive":  "📥",
	"purchase_complete": "✅",

	// Production orders
	"production_order_create":   "🏭",
	"production_order_update":   "✏️",
	"production_order_receive":  "📥",
	"production_order_complete": "✅",
	"production_order_cancel":   "❌",
	"production_create":         "🏭",

	// Assembly
	"assembly_create":   "🔩",
	"assembly_complete": "✅",

	// Suppliers
	"supplier_create":      "🏢",
	"supplier_update":      "✏️",
	"supplier_delete":      "🗑️",
	"supplier_transaction": "💳",

	// Finance
	"invoice_create": "🧾",
	"invoice_update": "✏️",
	"payment_create": "💵",
	"payment_update": "✏️",

	// Documents
	"document_upload": "📤",
	"document_delete": "🗑️",

	// Archive
	"archive_upload": "📁",
	"archive_delete": "🗑️",

	// Settings
	"settings_update": "⚙️",

	// Service visits
	"service_create":   "🔧",
	"service_update":   "✏️",
	"service_complete": "✅",

	// Assembly tasks
	"assembly_task_create":   "🔩",
	"assembly_task_update":   "✏️",
	"assembly_task_complete": "✅",
	"assembly_photo_upload":  "📷",

	// Generic verbs
	"approve":    "✅",
	"reject":     "❌",
	"cancel":     "🚫",
	"complete":   "🎉",
	"assign":     "👤",
	"unassign":   "👤",
	"upload":     "📤",
	"download":   "📥",
	"export":     "📊",
	"import":     "📥",
	"move":       "↔️",
	"copy":       "📋",
	"schedule":   "📅",
	"reschedule": "📅",
	"note_add":   "📝",
}

// IconFor returns the glyph for action, or DefaultIcon when the action is unknown.
// Matching is exact and case-sensitive.
func IconFor(action string) string {
	if icon, ok := actionIcons[action]; ok {
		return icon
	}
	return DefaultIcon
}

// Icons returns a copy of the action catalog.
func Icons() map[string]string {
	out := make(map[string]string, len(actionIcons))
	for action, icon := range actionIcons {
		out[action] = icon
	}
	return out
}
