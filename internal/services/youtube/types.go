package youtube

// SearchOptions refines a catalog search
type SearchOptions struct {
	MaxResults int    // Capped at 50, the API maximum
	PageToken  string // Continuation token from a previous page
	Order      string // relevance (default), date, viewCount, rating
	ChannelID  string // Restrict results to one channel
}

// Video is the simplified representation handed to clients. Only the fields
// the learning UI renders survive the transform.
type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
}

// Channel is the simplified channel representation
type Channel struct {
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// SearchResults is one page of video results
type SearchResults struct {
	Query         string  `json:"query"`
	Videos        []Video `json:"videos"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	TotalResults  int     `json:"totalResults"`
}

// ChannelResults is one page of channel results
type ChannelResults struct {
	Query    string    `json:"query"`
	Channels []Channel `json:"channels"`
}

// searchResponse mirrors the Data API v3 search payload
type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		Kind      string `json:"kind"`
		VideoID   string `json:"videoId"`
		ChannelID string `json:"channelId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelID    string `json:"channelId"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			Medium struct {
				URL string `json:"url"`
			} `json:"medium"`
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

func (i *searchItem) thumbnail() string {
	if i.Snippet.Thumbnails.Medium.URL != "" {
		return i.Snippet.Thumbnails.Medium.URL
	}
	return i.Snippet.Thumbnails.Default.URL
}
