package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mediahub/internal/http-api/models"
)

// CodeIssuer derives single-purpose confirmation codes from account state.
// A code is an HMAC over the fields that matter for its validity: changing
// the email or role, or logging in (which updates last_login), makes every
// previously issued code unverifiable. Nothing is stored server-side.
type CodeIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodeIssuer(secret string, ttl time.Duration) *CodeIssuer {
	return &CodeIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

const codeDigestLen = 32 // hex chars of the HMAC kept in the code

// Generate returns a code of the form "<base36 unix ts>-<truncated hmac>".
func (ci *CodeIssuer) Generate(user *models.User) string {
	ts := ci.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + ci.digest(user, ts)
}

// Verify checks the code against the user's current state and the issuer's
// time window.
func (ci *CodeIssuer) Verify(user *models.User, code string) bool {
	tsPart, digestPart, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	now := ci.now()
	issued := time.Unix(ts, 0)
	if issued.After(now.Add(time.Minute)) || now.Sub(issued) > ci.ttl {
		return false
	}

	return hmac.Equal([]byte(digestPart), []byte(ci.digest(user, ts)))
}

func (ci *CodeIssuer) digest(user *models.User, ts int64) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Format(time.RFC3339Nano)
	}

	mac := hmac.New(sha256.New, ci.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%s|%d", user.ID, user.Email, user.Role, lastLogin, ts)
	sum := hex.EncodeToString(mac.Sum(nil))
	return sum[:codeDigestLen]
}
