package tui

import (
	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/loader"
)

type catalogLoadedMsg struct {
	snap    loader.Snapshot
	offline bool
	skipped bool // freshness short-circuit; nothing actually changed
}

// refreshTickMsg fires on the periodic refresh interval.
type refreshTickMsg struct{}

type catalogErrMsg struct {
	err error
}

type detailLoadedMsg struct {
	detail api.Detail
}
