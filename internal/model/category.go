package model

import "strings"

// Category - тематическая категория виртуального номера и отправителя.
type Category string

const (
	CategorySocialMedia Category = "social-media"
	CategoryECommerce   Category = "e-commerce"
	CategoryPersonal    Category = "personal"
)

// Categories - все категории в фиксированном порядке.
var Categories = []Category{CategorySocialMedia, CategoryECommerce, CategoryPersonal}

// ParseCategory нормализует строку (trim + lower) и проверяет, что категория известна.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string { return string(c) }
