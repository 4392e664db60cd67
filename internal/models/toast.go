package models

// ToastVariant selects how a toast is styled.
type ToastVariant string

const (
	ToastDefault     ToastVariant = "default"
	ToastDestructive ToastVariant = "destructive"
)

// Toast is a short transient notification shown to the user.
type Toast struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Variant     ToastVariant `json:"variant"`
}

// SuccessToast builds a default-styled toast titled "Success".
func SuccessToast(description string) Toast {
	return Toast{Title: "Success", Description: description, Variant: ToastDefault}
}

// ErrorToast builds a destructive toast titled "Error".
func ErrorToast(description string) Toast {
	return Toast{Title: "Error", Description: description, Variant: ToastDestructive}
}
