package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/oguzhanyilmaz/reviewdb/internal/models"
)

const codeLength = 8

// CodeIssuer derives single-use confirmation codes from a hash of the user's
// current state, a server secret and a time bucket. No code is ever stored:
// changing anything on the user record (the credential included) rotates
// UpdatedAt and invalidates every outstanding code.
type CodeIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewCodeIssuer(secret string, ttl time.Duration) CodeIssuer {
	return CodeIssuer{secret: []byte(secret), ttl: ttl}
}

// Generate returns the code for the current time bucket.
func (i CodeIssuer) Generate(u *models.User, now time.Time) string {
	return i.derive(u, i.bucket(now))
}

// Verify accepts the code for the current or the immediately previous
// bucket, so a code issued near a bucket boundary stays usable for at least
// one full TTL.
func (i CodeIssuer) Verify(u *models.User, code string, now time.Time) bool {
	b := i.bucket(now)
	if hmac.Equal([]byte(code), []byte(i.derive(u, b))) {
		return true
	}
	return hmac.Equal([]byte(code), []byte(i.derive(u, b-1)))
}

func (i CodeIssuer) bucket(now time.Time) int64 {
	return now.Unix() / int64(i.ttl.Seconds())
}

func (i CodeIssuer) derive(u *models.User, bucket int64) string {
	state := fmt.Sprintf("%d|%s|%s|%d|%d", u.ID, u.Email, u.Credential, u.UpdatedAt.Unix(), bucket)
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(state))
	return base32.StdEncoding.EncodeToString(mac.Sum(nil))[:codeLength]
}
