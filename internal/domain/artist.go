package domain

// Artist is the subset of an artist profile the outreach pipeline reads.
type Artist struct {
	ID           string   `json:"id" db:"id"`
	UserID       string   `json:"userId" db:"user_id"`
	Name         string   `json:"name" db:"name"`
	Slug         string   `json:"slug,omitempty" db:"slug"`
	Biography    string   `json:"biography,omitempty" db:"biography"`
	ProfileImage string   `json:"profileImage,omitempty" db:"profile_image"`
	CoverImage   string   `json:"coverImage,omitempty" db:"cover_image"`
	Genres       []string `json:"genres,omitempty" db:"genres"`
	Country      string   `json:"country,omitempty" db:"country"`
	SpotifyURL   string   `json:"spotifyUrl,omitempty" db:"spotify_url"`
	InstagramURL string   `json:"instagramUrl,omitempty" db:"instagram_url"`
	YouTubeURL   string   `json:"youtubeUrl,omitempty" db:"youtube_url"`
}

// PathSegment is the identifier used in public profile links.
func (a *Artist) PathSegment() string {
	if a.Slug != "" {
		return a.Slug
	}
	return a.ID
}
