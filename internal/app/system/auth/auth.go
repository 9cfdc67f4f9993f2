// Package auth keeps the dashboard's own browser session. The session only
// identifies the viewer (so screens cannot be used from another browser) and
// carries flash notices across redirects. Whether the viewer is an admin is
// decided by the platform on every load.
package auth

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const viewerIDKey = "viewer_id"

// Flash is a notice carried to the next page the viewer loads.
type Flash struct {
	Level string
	Text  string
}

func init() {
	gob.Register(Flash{})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager wraps the gorilla cookie store.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager creates a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "arenadash-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// session returns the viewer's session. A cookie that no longer decodes
// (rotated key, tampering) yields a fresh session.
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

/*─────────────────────────────────────────────────────────────────────────────*
| Viewer identity                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const viewerKey ctxKey = "viewer"

// ViewerID returns the viewer identifier set by LoadViewer.
func ViewerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(viewerKey).(string)
	return id, ok && id != ""
}

// WithViewerID returns r carrying id as the viewer identifier.
func WithViewerID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), viewerKey, id))
}

// LoadViewer makes sure every request has a viewer identifier, issuing a new
// one (and saving the session) on first contact.
func (m *SessionManager) LoadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.session(r)
		id, _ := sess.Values[viewerIDKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[viewerIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Error("save session", zap.Error(err))
			}
		}
		next.ServeHTTP(w, WithViewerID(r, id))
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Flash notices                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// AddFlash queues a notice for the next page load.
func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) error {
	sess := m.session(r)
	if id, ok := ViewerID(r); ok {
		sess.Values[viewerIDKey] = id
	}
	sess.AddFlash(f)
	return sess.Save(r, w)
}

// Flashes returns and clears the queued notices.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := m.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.log.Error("save session after reading flashes", zap.Error(err))
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Platform session                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// PlatformSession returns the value of the platform's session cookie sent by
// the browser, or "" when there is none.
func PlatformSession(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// IsHTMX reports whether r was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Redirect sends the viewer to dest: HX-Redirect for HTMX requests, 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
