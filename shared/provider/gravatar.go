package provider

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBaseURL = "https://s.gravatar.com/avatar/"

// GravatarURL derives the avatar URL of an email address: 200px, G rated, "mystery man" fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?s=200&r=g&d=mm"
}
