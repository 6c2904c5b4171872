package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugHyphen = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases s, folds accents to ASCII and joins words with hyphens
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	slug := slugStrip.ReplaceAllString(strings.ToLower(b.String()), "")
	slug = slugHyphen.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-_")
}

// uniqueSlug derives a slug from title that no row of model uses yet,
// appending -2, -3 and so on after the first collision
func uniqueSlug(tx *gorm.DB, model interface{}, title, fallback string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = fallback
	}
	if len(base) > 240 {
		base = strings.TrimRight(base[:240], "-")
	}

	candidate := base
	for n := 2; ; n++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
