package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

const notificationTTL = 3 * time.Second

var bannerStyle = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Padding(0, 1).
	Foreground(theme.ColorMauve)

// Notification is a transient banner. Count is how many times the same
// message arrived while it was on screen, so a burst of data changes reads
// as one line.
type Notification struct {
	Message string
	Count   int
	Shown   time.Time
}

// Text returns the message with its repeat count.
func (n Notification) Text() string {
	if n.Count > 1 {
		return i18n.Tf("n_changes", n.Message, n.Count)
	}
	return n.Message
}

type NotificationManager struct {
	active *Notification
	now    func() time.Time
}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{now: time.Now}
}

// Push shows msg. Repeating the visible message bumps its count and keeps
// it on screen for another full TTL.
func (nm *NotificationManager) Push(msg string) {
	if n := nm.Active(); n != nil && n.Message == msg {
		n.Count++
		n.Shown = nm.now()
		return
	}
	nm.active = &Notification{Message: msg, Count: 1, Shown: nm.now()}
}

// Active returns the visible notification, or nil once it has expired.
func (nm *NotificationManager) Active() *Notification {
	if nm.active == nil || nm.now().Sub(nm.active.Shown) > notificationTTL {
		return nil
	}
	return nm.active
}

// Expire drops an expired notification. Call from Update, not View.
func (nm *NotificationManager) Expire() {
	if nm.Active() == nil {
		nm.active = nil
	}
}

func (nm *NotificationManager) RenderBanner(width int) string {
	n := nm.Active()
	if n == nil {
		return ""
	}
	return bannerStyle.Width(width).Render(n.Text())
}
