package components

// Variant selects the color scheme of a toast.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// ParseVariant maps form values to a Variant; unknown values are success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	default:
		return VariantSuccess
	}
}

// ToastProps is used by the HTMX endpoints to render a notification.
type ToastProps struct {
	Title       string
	Description string
	Variant     Variant
	Duration    int // milliseconds, 0 keeps it open
	Dismissible bool
	Class       string
}
