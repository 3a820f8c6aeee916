// JobRecord and its dedup fingerprint.
// The caller owns storage and diffing; this package only defines the value
// and the stable key used for set-membership comparison.

package jobs

// JobRecord is one observed posting. Titles are not unique across postings,
// so identity is established via Fingerprint, never the title alone.
type JobRecord struct {
	Title    string `json:"title"`
	ID       string `json:"id,omitempty"`
	URL      string `json:"url,omitempty"`
	PostedAt string `json:"postedAt,omitempty"`
}

// Fingerprint builds a stable key for "same posting" comparison:
// prefer id, then url, then title+postedAt, else title alone.
func Fingerprint(j JobRecord) string {
	if j.ID != "" {
		return "id:" + j.ID
	}
	if j.URL != "" {
		return "url:" + j.URL
	}
	if j.PostedAt != "" {
		return "title:" + j.Title + "|posted:" + j.PostedAt
	}
	return "title:" + j.Title
}
