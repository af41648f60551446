package main

import (
	"time"
)

const noticeDuration = 2 * time.Second

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	var icon string
	switch kind {
	case "info":
		icon = "ℹ"
	case "success":
		icon = "✓"
	case "warn":
		icon = "!"
	case "error":
		icon = "×"
	default:
		icon = ""
	}
	if icon == "" {
		return msg
	}
	return icon + " " + msg
}

// startNotice shows msg in the status bar and clears it after d unless a
// newer notice replaced it. It is the app's alert primitive and is safe to
// call from gates and loop continuations.
func (m *model) startNotice(msg, msgType string, d time.Duration) {
	m.ui.noticeMsg = msg
	m.ui.noticeType = msgType

	// bump sequence to invalidate older timers
	m.ui.noticeSeq++
	id := m.ui.noticeSeq

	m.loop.After(d, func() {
		if m.ui.noticeSeq == id {
			m.ui.noticeMsg, m.ui.noticeType = "", ""
		}
	})
}
