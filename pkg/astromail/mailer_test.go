package astromail

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/Asteroidea-tn/astrombr/pkg/astrocaliper"
	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
	"github.com/Asteroidea-tn/astrombr/pkg/astrohull"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func sampleReport(t *testing.T) Report {
	t.Helper()
	square := []astrogeom.Point{
		astrogeom.Pt(0, 0), astrogeom.Pt(2, 0), astrogeom.Pt(2, 2), astrogeom.Pt(0, 2),
	}
	rect, err := astrocaliper.MinBoundingRect(square)
	require.NoError(t, err)

	return Report{
		Title:     "Minimum bounding rectangles",
		Generated: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Entries: []Entry{
			{Name: "square", Points: square, Rect: rect, Bounds: astrogeom.Bounds(square)},
			{Name: "line", Points: square[:2], Err: astrohull.ErrTooFewPoints},
		},
	}
}

func TestConfigRecipients(t *testing.T) {
	cfg := Config{To: " ops@example.com, ,geo@example.com "}
	assert.Equal(t, []string{"ops@example.com", "geo@example.com"}, cfg.Recipients())
	assert.Empty(t, Config{}.Recipients())
}

func TestReportText(t *testing.T) {
	r := sampleReport(t)

	assert.Equal(t, 1, r.Failed())
	assert.Equal(t, "Minimum bounding rectangles: 1 rectangles, 1 failed", r.Subject())

	text := r.Text()
	assert.Contains(t, text, "generated 2026-10-17 12:00:00")
	assert.Contains(t, text, "[square] 4 points")
	assert.Contains(t, text, "area:   4.000000")
	assert.Contains(t, text, "(2.00000,2.00000)")
	assert.Contains(t, text, "axis-aligned area: 4.000000")
	assert.NotContains(t, text, "stopped early")
	assert.Contains(t, text, "[line] 2 points\n  error:  at least 3 points are required")
}

func TestReportTextMissingCorner(t *testing.T) {
	r := Report{Entries: []Entry{{Name: "partial", Rect: astrocaliper.Rectangle{
		Vertices: [4]astrocaliper.Corner{{OK: true}, {}, {OK: true}, {OK: true}},
		Stop:     astrocaliper.StopNaN,
	}}}}
	assert.Contains(t, r.Text(), " missing ")
	assert.Contains(t, r.Text(), "sweep stopped early: nan")
}

func TestBuildMessage(t *testing.T) {
	m := NewMailer(Config{From: "calipers@example.com", To: "ops@example.com,geo@example.com"})
	msg, err := m.BuildMessage(sampleReport(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"ops@example.com", "geo@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"calipers@example.com"}, msg.GetHeader("From"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Subject: Minimum bounding rectangles: 1 rectangles, 1 failed")
	assert.Contains(t, buf.String(), "[square] 4 points")
}

func TestBuildMessageNoRecipients(t *testing.T) {
	_, err := NewMailer(Config{}).BuildMessage(Report{})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestSend(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		fake := &fakeSender{}
		m := &Mailer{cfg: Config{To: "ops@example.com"}, sender: fake}
		require.NoError(t, m.Send(sampleReport(t)))
		assert.Empty(t, fake.sent)
	})

	t.Run("enabled", func(t *testing.T) {
		fake := &fakeSender{}
		m := &Mailer{cfg: Config{Enabled: true, To: "ops@example.com"}, sender: fake}
		require.NoError(t, m.Send(sampleReport(t)))
		assert.Len(t, fake.sent, 1)
	})

	t.Run("dial failure", func(t *testing.T) {
		fake := &fakeSender{err: errors.New("connection refused")}
		m := &Mailer{cfg: Config{Enabled: true, Host: "smtp.local", Port: 587, To: "ops@example.com"}, sender: fake}
		err := m.Send(sampleReport(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp.local:587")
	})
}
