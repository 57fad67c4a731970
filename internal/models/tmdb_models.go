package models

import "time"

// TMDB wire types. Only the fields this application reads are declared.

// TMDBTVDetails is the response of /tv/{id}.
type TMDBTVDetails struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	NumberOfSeasons int          `json:"number_of_seasons"`
	PosterPath      string       `json:"poster_path"`
	Seasons         []TMDBSeason `json:"seasons"`
}

// TMDBSeason is one season summary inside a TV details response.
type TMDBSeason struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
}

// TMDBSeasonDetails is the response of /tv/{id}/season/{n}.
type TMDBSeasonDetails struct {
	SeasonNumber int           `json:"season_number"`
	Episodes     []TMDBEpisode `json:"episodes"`
}

// TMDBEpisode is one episode inside a season details response.
type TMDBEpisode struct {
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	AirDate       string `json:"air_date"` // YYYY-MM-DD, may be empty
	StillPath     string `json:"still_path"`
}

// AirTime parses the episode air date. The zero time and false are returned
// when TMDB has no air date yet.
func (e TMDBEpisode) AirTime() (time.Time, bool) {
	if e.AirDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", e.AirDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TotalEpisodes sums episode counts across seasons, skipping the "Specials"
// pseudo-season.
func (d *TMDBTVDetails) TotalEpisodes() int {
	total := 0
	for _, season := range d.Seasons {
		if season.Name == "Specials" {
			continue
		}
		total += season.EpisodeCount
	}
	return total
}
