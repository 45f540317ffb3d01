// Package recipes holds the recipe model and the repository that reads it
// from the remote feed.
package recipes

import "strings"

type Recipe struct {
	ID            string `json:"uuid"`
	Name          string `json:"name"`
	Cuisine       string `json:"cuisine"`
	PhotoURLSmall string `json:"photo_url_small,omitempty"`
	PhotoURLLarge string `json:"photo_url_large,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
	YoutubeURL    string `json:"youtube_url,omitempty"`
}

type Response struct {
	Recipes []Recipe `json:"recipes"`
}

// missingField names the first required field that is blank, if any.
func (r Recipe) missingField() string {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return "uuid"
	case strings.TrimSpace(r.Name) == "":
		return "name"
	case strings.TrimSpace(r.Cuisine) == "":
		return "cuisine"
	}
	return ""
}
