package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 60

var (
	objectIDPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hyphenRun       = regexp.MustCompile(`-+`)
)

// Generate builds an SEO-friendly slug from a product name. Unicode
// mathematical bold glyphs (a styling trick in some product titles) are
// folded to ASCII before normalization.
func Generate(name string) string {
	if strings.TrimSpace(name) == "" {
		return "product"
	}

	var normalized strings.Builder
	for _, r := range name {
		switch {
		// Bold uppercase 𝗔-𝗭
		case r >= 0x1D5D4 && r <= 0x1D5ED:
			normalized.WriteRune('A' + (r - 0x1D5D4))
		// Bold lowercase 𝗮-𝘇
		case r >= 0x1D5EE && r <= 0x1D607:
			normalized.WriteRune('a' + (r - 0x1D5EE))
		default:
			normalized.WriteRune(r)
		}
	}

	decomposed := norm.NFKD.String(normalized.String())
	var ascii strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		ascii.WriteRune(r)
	}

	s := strings.ToLower(strings.TrimSpace(ascii.String()))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}

	if s == "" {
		return "product"
	}
	return s
}

// ProductPath returns the storefront URL path for a product
// (format: /product/slug-id).
func ProductPath(id, name string) string {
	return "/product/" + Generate(name) + "-" + id
}

// ExtractID pulls the product id back out of a slug-id path segment. Plain
// 24-hex ids pass through unchanged; otherwise the trailing segment after
// the last hyphen is checked. Falls back to the whole string.
func ExtractID(slugID string) string {
	if objectIDPattern.MatchString(strings.ToLower(slugID)) {
		return slugID
	}

	parts := strings.Split(slugID, "-")
	lastPart := parts[len(parts)-1]
	if objectIDPattern.MatchString(strings.ToLower(lastPart)) {
		return lastPart
	}

	return slugID
}
