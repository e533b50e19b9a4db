package components

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const toastBase = "fixed bottom-4 right-4 z-50 w-80 rounded-md border px-4 py-3 shadow-lg text-sm"

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-600 bg-green-50 text-green-900",
	VariantError:   "border-red-600 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-600 bg-blue-50 text-blue-900",
}

// ToastClass returns the merged class list for p. Later classes win.
func ToastClass(p ToastProps) string {
	variant, ok := variantClasses[p.Variant]
	if !ok {
		variant = variantClasses[VariantSuccess]
	}
	return twmerge.Merge(toastBase, variant, p.Class)
}

// Toast renders a notification fragment for HTMX swaps.
func Toast(p ToastProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		role := "status"
		if p.Variant == VariantError {
			role = "alert"
		}
		if _, err := fmt.Fprintf(w, `<div class="%s" role="%s" data-variant="%s" data-duration="%d">`,
			templ.EscapeString(ToastClass(p)), role, templ.EscapeString(string(p.Variant)), p.Duration); err != nil {
			return err
		}
		if p.Title != "" {
			if _, err := fmt.Fprintf(w, `<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		if p.Description != "" {
			if _, err := fmt.Fprintf(w, `<p class="mt-1 opacity-90">%s</p>`, templ.EscapeString(p.Description)); err != nil {
				return err
			}
		}
		if p.Dismissible {
			if _, err := io.WriteString(w, `<button type="button" class="absolute top-2 right-2" aria-label="Close" onclick="this.parentElement.remove()">&times;</button>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
