package model

// DiscoveryItem is a static illustrative entry of the discover view.
type DiscoveryItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Snippet string   `json:"snippet"`
	Author  string   `json:"author"`
	Likes   int      `json:"likes"`
	Tags    []string `json:"tags"`
}

// DiscoveryItems returns the fixed discover feed.
func DiscoveryItems() []DiscoveryItem {
	return []DiscoveryItem{
		{
			ID:      "1",
			Title:   "Quantum Computing Breakthroughs",
			Snippet: "Recent advances in qubit stability have led to error rates dropping below the critical threshold...",
			Author:  "Sarah Chen",
			Likes:   342,
			Tags:    []string{"Science", "Tech"},
		},
		{
			ID:      "2",
			Title:   "The Future of Sustainable Cities",
			Snippet: "Vertical farming integration into residential skyscrapers is becoming a viable standard for new eco-cities...",
			Author:  "Marcus Aurelius",
			Likes:   215,
			Tags:    []string{"Environment", "Future"},
		},
		{
			ID:      "3",
			Title:   "Understanding Baroque Art",
			Snippet: "The dramatic use of light and shadow, known as chiaroscuro, defines the emotional intensity of the Baroque period...",
			Author:  "Elena R.",
			Likes:   189,
			Tags:    []string{"Art", "History"},
		},
	}
}

// Suggestions returns the starter prompts shown on an empty home view.
func Suggestions() []string {
	return []string{"History of Jazz", "How to bake sourdough", "Latest AI news", "Quantum physics basics"}
}
