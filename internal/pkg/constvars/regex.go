package constvars

const (
	RegexEmail = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	RegexPhone = `^[\+]?[\d\s\-\(\)]{10,}$`
)
