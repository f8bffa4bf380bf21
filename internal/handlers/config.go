package handlers

import (
	"os"
	"time"

	"github.com/dfranco/incognito/internal/room"
)

var voteTimeout = room.DefaultVoteTimeout

// InitConfig reads handler-level settings from the environment. VOTE_TIMEOUT
// accepts a Go duration ("90s", "2m"); "0" disables the stalled-vote guard.
func InitConfig() {
	if v := os.Getenv("VOTE_TIMEOUT"); v != "" {
		if v == "0" {
			voteTimeout = 0
			return
		}
		if d, err := time.ParseDuration(v); err == nil {
			voteTimeout = d
		}
	}
}
