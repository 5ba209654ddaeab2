package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/tui/thread"
)

func (m Model) handlePostsLoaded(msg PostsLoadedMsg) (Model, tea.Cmd) {
	if msg.ReqSeq != m.feedReqSeq {
		return m, nil
	}
	m.loading = false
	m.err = nil

	selected, hadSelection := m.SelectedPostID()

	order := make([]int64, 0, len(msg.Posts))
	threads := make(map[int64]thread.Model, len(msg.Posts))
	for _, p := range msg.Posts {
		if t, ok := m.threads[p.ID]; ok {
			threads[p.ID] = t.WithSummary(p)
		} else {
			threads[p.ID] = thread.New(p, m.threadSvc).ResumeSeq(m.retiredSeq[p.ID])
		}
		order = append(order, p.ID)
	}
	// A dropped post may come back while its old fetches are in flight.
	for id, t := range m.threads {
		if _, ok := threads[id]; !ok {
			m.retiredSeq[id] = t.Seq()
		}
	}
	m.order = order
	m.threads = threads

	m.cursor = 0
	if hadSelection {
		for i, id := range order {
			if id == selected {
				m.cursor = i
				break
			}
		}
	}
	m.ensureSelectionVisible()
	return m, nil
}

func (m Model) handlePostsError(msg PostsErrorMsg) (Model, tea.Cmd) {
	if msg.ReqSeq != m.feedReqSeq {
		return m, nil
	}
	m.loading = false
	m.err = msg.Err
	m.threadSvc.Log.Warn().Err(msg.Err).Int("seq", msg.ReqSeq).Msg("feed fetch failed")
	m.setStatus(StatusText(msg.Err), false)
	return m, nil
}
