package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskpilot/internal/events"
)

// noticeTTL is how long a notice stays on screen
const noticeTTL = 4 * time.Second

// storeEventMsg carries a change announced on the app bus
type storeEventMsg events.Event

// busClosedMsg is sent once the bus subscription ends
type busClosedMsg struct{}

// signInDoneMsg reports the outcome of a sign-in after its delay
type signInDoneMsg struct {
	err error
}

// noticeExpiredMsg removes a notice once its time is up
type noticeExpiredMsg struct {
	id int
}

// waitForEvent blocks on the bus subscription and turns the next event into
// a message. Update re-issues it after every event.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return busClosedMsg{}
		}
		return storeEventMsg(ev)
	}
}

func expireNotice(id int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}
