// forum/identity.go
package forum

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
)

const sessionKeyAnonID = "anonymous_id"

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IdentityProvider issues the anonymous id used to tag posts. The id lives
// in the session and nowhere else: it is never derived from an account, a
// device, or anything that outlives the browsing session.
type IdentityProvider struct {
	sessions *scs.SessionManager
}

func NewIdentityProvider(sessions *scs.SessionManager) *IdentityProvider {
	return &IdentityProvider{sessions: sessions}
}

// GetOrCreate returns the session's anonymous id, minting and caching one
// on first use. Without a session manager it degrades to a fresh id per
// call, valid for the current request only.
func (p *IdentityProvider) GetOrCreate(ctx context.Context) (string, error) {
	if p.sessions == nil {
		return NewAnonymousID()
	}
	if id := p.sessions.GetString(ctx, sessionKeyAnonID); id != "" {
		return id, nil
	}
	id, err := NewAnonymousID()
	if err != nil {
		return "", err
	}
	p.sessions.Put(ctx, sessionKeyAnonID, id)
	return id, nil
}

// Regenerate discards the cached id and mints a fresh one, for users who
// explicitly want a new anonymous identity.
func (p *IdentityProvider) Regenerate(ctx context.Context) (string, error) {
	id, err := NewAnonymousID()
	if err != nil {
		return "", err
	}
	if p.sessions != nil {
		p.sessions.Put(ctx, sessionKeyAnonID, id)
	}
	return id, nil
}

// NewAnonymousID mints an id of the form anon_<random>_<base36 millis>.
func NewAnonymousID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	millis := time.Now().UnixMilli()
	return "anon_" + string(buf) + "_" + strconv.FormatInt(millis, 36), nil
}
