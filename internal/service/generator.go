package service

import (
	"math/rand/v2"
	"strings"
)

// GeoCodeLengths - длина генерируемого номера по коду страны.
var GeoCodeLengths = map[string]int{
	"IN": 10,
	"US": 12,
	"UK": 9,
	"DE": 11,
	"CA": 13,
}

// GenerateNumber возвращает случайный номер длины n, первая цифра 6-9.
func GenerateNumber(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(byte('6' + rand.IntN(4)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
