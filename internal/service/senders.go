package service

import (
	"VNumbers/internal/model"
	"strings"
)

// senderCategories - известные отправители и их категории.
var senderCategories = map[string]model.Category{
	"shopeasy": model.CategoryECommerce,
	"amazon":   model.CategoryECommerce,
	"flipkart": model.CategoryECommerce,
	"ebay":     model.CategoryECommerce,
	"walmart":  model.CategoryECommerce,

	"insta":    model.CategorySocialMedia,
	"twitter":  model.CategorySocialMedia,
	"linkedin": model.CategorySocialMedia,

	"12":       model.CategoryPersonal,
	"personal": model.CategoryPersonal,
	"family":   model.CategoryPersonal,
	"friend":   model.CategoryPersonal,
}

// SenderCategory определяет категорию отправителя (без учёта регистра).
func SenderCategory(sender string) (model.Category, bool) {
	c, ok := senderCategories[strings.ToLower(strings.TrimSpace(sender))]
	return c, ok
}
