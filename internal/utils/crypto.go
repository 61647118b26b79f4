package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const claimTokenPrefix = "fb_claim_"

// GenerateClaimToken mints the bearer secret returned once at board creation.
func GenerateClaimToken() string {
	return claimTokenPrefix + uuid.NewString()
}

// GenerateLoginCode returns a random numeric one-time code of the given length.
func GenerateLoginCode(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds a URL slug from the board name plus a 4-char random
// suffix so distinct boards with the same name get distinct slugs.
func GenerateSlug(name string) string {
	base := strings.ToLower(name)
	base = nonSlugChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if len(base) > 30 {
		base = base[:30]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	if base == "" {
		return suffix
	}
	return fmt.Sprintf("%s-%s", base, suffix)
}
