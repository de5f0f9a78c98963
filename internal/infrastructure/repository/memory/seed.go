package memory

import (
	"strings"
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
)

// SeedUsers builds user info rows for local runs. Blank and duplicate ids
// are skipped.
func SeedUsers(userIDs []string, now time.Time) []userinfo.Info {
	seen := make(map[string]struct{}, len(userIDs))
	out := make([]userinfo.Info, 0, len(userIDs))
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, userinfo.Info{UserID: id, UpdatedAt: now})
	}
	return out
}
