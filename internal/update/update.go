// Package update asks GitHub whether a newer sentimentscope release has been
// published. The check is best-effort; every failure mode resolves to "no
// update" so it can never block startup.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const releasesURL = "https://api.github.com/repos/burnlikeash/SentimentScope/releases/latest"

// Release describes a published version newer than the running one.
type Release struct {
	Version string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Latest returns the newest published release when it differs from the
// running version, or nil when up to date or the check fails.
func Latest(ctx context.Context, currentVersion string) *Release {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	if latest == "" || latest == current {
		return nil
	}

	return &Release{Version: latest}
}
