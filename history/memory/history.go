package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m-v-r/docqa/history"
)

type memoryHistory struct {
	options history.Options
	turns   map[string][]history.Turn
	next    int
	mtx     sync.RWMutex
}

func (h *memoryHistory) Append(ctx context.Context, sessionId string, role string, text string) error {
	if len(strings.TrimSpace(text)) == 0 {
		return nil
	}

	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.next++

	h.turns[sessionId] = append(h.turns[sessionId], history.Turn{
		Id:        fmt.Sprintf("turn-%d", h.next),
		SessionId: sessionId,
		Role:      role,
		Text:      text,
	})

	if len(h.turns[sessionId]) > h.options.Window {
		h.turns[sessionId] = h.turns[sessionId][len(h.turns[sessionId])-h.options.Window:]
	}

	return nil
}

func (h *memoryHistory) Recent(ctx context.Context, sessionId string, limit int) ([]history.Turn, error) {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	turns := h.turns[sessionId]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	cpy := make([]history.Turn, len(turns))
	copy(cpy, turns)

	return cpy, nil
}

func (h *memoryHistory) Search(ctx context.Context, query string, limit int) ([]history.Turn, error) {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	if len(needle) == 0 {
		return nil, nil
	}

	var matches []history.Turn
	for _, turns := range h.turns {
		for _, turn := range turns {
			if strings.Contains(strings.ToLower(turn.Text), needle) {
				matches = append(matches, turn)
				if limit > 0 && len(matches) >= limit {
					return matches, nil
				}
			}
		}
	}

	return matches, nil
}

func NewHistory(opts ...history.Option) history.History {
	return &memoryHistory{
		options: history.NewOptions(opts...),
		turns:   map[string][]history.Turn{},
		mtx:     sync.RWMutex{},
	}
}
