package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// GravatarURL builds a protocol-relative Gravatar URL for email:
// 200px, rated pg, falling back to the "mystery man" image.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
