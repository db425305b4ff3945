package ast

// Visibility описывает доступность элемента (private/public и т.д.).
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	default:
		return "private"
	}
}

// ParseVisibility maps "pub"/"public" to VisPublic; anything else is private.
func ParseVisibility(s string) Visibility {
	switch s {
	case "pub", "public":
		return VisPublic
	default:
		return VisPrivate
	}
}
