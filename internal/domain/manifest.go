package domain

// ManifestEntry is one published page in a category index.
type ManifestEntry struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	URL         string `json:"url"`
}

// Manifest is the JSON index read by the static site, newest first.
type Manifest struct {
	Posts []ManifestEntry `json:"posts"`
}

// Prepend puts entry first and drops any later entry with the same slug.
func (m *Manifest) Prepend(entry ManifestEntry) {
	posts := make([]ManifestEntry, 0, len(m.Posts)+1)
	posts = append(posts, entry)
	posts = append(posts, m.Posts...)
	m.Posts = dedupeBySlug(posts)
}

func dedupeBySlug(posts []ManifestEntry) []ManifestEntry {
	seen := make(map[string]bool, len(posts))
	out := posts[:0]
	for _, p := range posts {
		if seen[p.Slug] {
			continue
		}
		seen[p.Slug] = true
		out = append(out, p)
	}
	return out
}
