package domain

// NotificationKind selects the icon and color of a notification
type NotificationKind string

const (
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
)

// Notification symbols (Unicode)
const (
	SymbolError   = "✗"
	SymbolInfo    = "●"
	SymbolSuccess = "✓"
	SymbolWarning = "!"
)

// Symbol returns the icon for the kind
func (k NotificationKind) Symbol() string {
	switch k {
	case NotificationError:
		return SymbolError
	case NotificationSuccess:
		return SymbolSuccess
	case NotificationWarning:
		return SymbolWarning
	default:
		return SymbolInfo
	}
}
