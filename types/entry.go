package types

// EmoteEntry is one fully-qualified emoji from the Unicode emoji test data.
type EmoteEntry struct {
	Text  string   `json:"text"`
	Name  string   `json:"name"`
	Group string   `json:"group"`
	Tags  []string `json:"tags"`
}

// GroupCount is the number of entries cataloged under a group.
type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}
