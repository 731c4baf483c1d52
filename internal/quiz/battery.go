package quiz

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// File is the on-disk and wire shape of a battery.
type File struct {
	Questions []Question `json:"questions"`
}

// LoadBattery reads a JSON battery file ({"questions": [...]}).
func LoadBattery(path string) (Battery, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Battery{}, fmt.Errorf("read battery: %w", err)
	}
	return ParseBattery(raw)
}

func ParseBattery(raw []byte) (Battery, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return Battery{}, fmt.Errorf("decode battery: %w", err)
	}
	return NewBattery(f.Questions)
}

var defaultBattery = MustBattery([]Question{
	{
		Prompt: "What kind of story pace do you prefer?",
		Options: []Option{
			{Key: "A", Text: "Fast-paced with twists and action", Genres: []string{"Action"}},
			{Key: "B", Text: "Slow and emotional with deep character arcs", Genres: []string{"Drama"}},
			{Key: "C", Text: "Light, funny, and easy to follow", Genres: []string{"Comedy"}},
			{Key: "D", Text: "Filled with magical or futuristic elements", Genres: []string{"Fantasy", "Sci-Fi"}},
		},
	},
	{
		Prompt: "Which of these settings excites you the most?",
		Options: []Option{
			{Key: "A", Text: "Crime-ridden city or warzone", Genres: []string{"Crime", "Action"}},
			{Key: "B", Text: "A medieval kingdom or distant galaxy", Genres: []string{"Fantasy", "Sci-Fi"}},
			{Key: "C", Text: "A relatable modern-day town or workplace", Genres: []string{"Comedy"}},
			{Key: "D", Text: "A courtroom, hospital, or detective's office", Genres: []string{"Drama", "Mystery"}},
		},
	},
	{
		Prompt: "What kind of emotional vibe are you going for?",
		Options: []Option{
			{Key: "A", Text: "Edge-of-your-seat suspense", Genres: []string{"Thriller"}},
			{Key: "B", Text: "Laughs and good vibes", Genres: []string{"Comedy"}},
			{Key: "C", Text: "Complex emotions and tearjerkers", Genres: []string{"Drama", "Romance"}},
			{Key: "D", Text: "Epic, adventurous, and imaginative", Genres: []string{"Fantasy", "Sci-Fi"}},
		},
	},
	{
		Prompt: "Which activity sounds the most fun to watch?",
		Options: []Option{
			{Key: "A", Text: "Solving crimes or chasing bad guys", Genres: []string{"Crime", "Thriller"}},
			{Key: "B", Text: "Exploring other worlds or timelines", Genres: []string{"Sci-Fi", "Fantasy"}},
			{Key: "C", Text: "Watching characters fall in love", Genres: []string{"Romance"}},
			{Key: "D", Text: "Friends joking around and living life", Genres: []string{"Comedy"}},
		},
	},
	{
		Prompt: "Pick your ideal TV character:",
		Options: []Option{
			{Key: "A", Text: "A witty detective or secret agent", Genres: []string{"Crime", "Mystery"}},
			{Key: "B", Text: "A sarcastic best friend in a café", Genres: []string{"Comedy"}},
			{Key: "C", Text: "A time-traveling scientist or wizard", Genres: []string{"Sci-Fi", "Fantasy"}},
			{Key: "D", Text: "A passionate doctor, lawyer, or artist", Genres: []string{"Drama", "Romance"}},
		},
	},
})

// DefaultBattery is the built-in five question genre quiz.
func DefaultBattery() Battery { return defaultBattery }
