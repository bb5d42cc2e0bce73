package metadata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Channel holds the branding values stitched into every description:
// links, hashtags, and the playlist display names.
type Channel struct {
	Name       string   `yaml:"name"`
	Handle     string   `yaml:"handle"`
	CourseURL  string   `yaml:"course_url"`
	CommunityURL string `yaml:"community_url"`
	CallToAction string `yaml:"call_to_action"`
	Hashtags   []string `yaml:"hashtags"`

	// MainPlaylistName labels the chronological all-videos playlist.
	MainPlaylistName string `yaml:"main_playlist_name"`
}

// DefaultChannel returns the built-in branding used when no channel file
// is supplied.
func DefaultChannel() *Channel {
	return &Channel{
		Name:             "PMP Study Lab",
		Handle:           "@pmpstudylab",
		CourseURL:        "https://pmpstudylab.com/course",
		CommunityURL:     "https://pmpstudylab.com/community",
		CallToAction:     "Subscribe for a new PMP study video every day of the 13-week plan.",
		Hashtags:         []string{"#PMP", "#PMPExam", "#ProjectManagement"},
		MainPlaylistName: "PMP 13-Week Study Plan",
	}
}

// LoadChannel reads the channel branding YAML file. A missing file falls
// back to the built-in defaults; a malformed file is a configuration
// error.
func LoadChannel(path string) (*Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultChannel(), nil
		}
		return nil, fmt.Errorf("read channel file: %w", err)
	}

	ch := DefaultChannel()
	if err := yaml.Unmarshal(data, ch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ch, nil
}
