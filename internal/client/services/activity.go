package services

import (
	"context"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/google/uuid"
)

// ActivityLogger records user actions. It never fails the action it records.
type ActivityLogger struct {
	d     *Deps
	newID func() string
}

func NewActivityLogger(d *Deps) *ActivityLogger {
	d.defaults()
	return &ActivityLogger{d: d, newID: uuid.NewString}
}

// Log prepends the activity to the in-memory session, then sends it to the
// backend. When that fails it is appended to the local user instead.
func (l *ActivityLogger) Log(ctx context.Context, typ models.ActivityType, title string) {
	if !typ.Valid() {
		l.d.Log.Warn(ctx, "activity with unknown type dropped", "type", string(typ))
		return
	}

	a := models.NewActivity(l.newID(), typ, title, l.d.Now())
	sess := l.d.State.update(func(s *models.Session) {
		s.User.Activities = models.PrependActivity(s.User.Activities, a)
	})
	if sess == nil {
		l.d.Log.Warn(ctx, "activity without session dropped", "type", string(typ))
		return
	}
	if err := l.d.Sessions.Save(ctx, sess); err != nil {
		l.d.Log.Warn(ctx, "failed to persist session", "error", err)
	}

	err := l.d.Client.LogActivity(ctx, typ, title)
	l.d.Metrics.RemoteCall("log_activity", err)
	if err == nil {
		return
	}

	l.d.Log.Warn(ctx, "activity log failed on server, storing locally", "error", err)
	l.d.Metrics.Fallback("log_activity")
	if err := l.d.Local.AppendActivity(ctx, sess.User.Username, a); err != nil {
		l.d.Log.Warn(ctx, "failed to store activity locally", "error", err)
	}
}
