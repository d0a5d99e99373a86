package services

import (
	"strings"

	"github.com/gosimple/slug"
)

// ApplicationSlug builds the public link slug for an application form. The
// suffix keeps slugs unique when two forms share a name.
func ApplicationSlug(name, suffix string) string {
	base := slug.Make(name)
	if base == "" {
		base = "application"
	}
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if suffix == "" {
		return base
	}
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return base + "-" + slug.Make(suffix)
}

// ApplicationLink is the path applicants open to fill in the form.
func ApplicationLink(slugValue string) string {
	return "/apply/" + slugValue
}
