package seed

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
)

var categoryColors = map[string]string{
	"Sports": "FF9500",
	"Chill":  "5856D6",
	"Arts":   "AF52DE",
	"Games":  "34C759",
	"Social": "007AFF",
}

type activityData struct {
	name            string
	icon            string
	minParticipants int
	category        string
}

var catalog = []activityData{
	{"Biking", "bicycle", 2, "Sports"}, {"Hiking", "figure.hiking", 2, "Sports"},
	{"Pickleball", "tennis.racket", 4, "Sports"}, {"Basketball", "basketball.fill", 6, "Sports"},
	{"Soccer", "soccerball", 6, "Sports"}, {"Rock Climbing", "figure.climbing", 2, "Sports"},
	{"Tennis", "tennisball.fill", 2, "Sports"}, {"Kayaking", "figure.rower", 2, "Sports"},
	{"Run", "figure.run", 2, "Sports"}, {"Bowling", "figure.bowling", 3, "Sports"},
	{"Volleyball", "volleyball.fill", 4, "Sports"}, {"Golf", "figure.golf", 4, "Sports"},
	{"Frisbee Golf", "circle.dashed", 3, "Sports"}, {"Kickball", "figure.kickboxing", 6, "Sports"},
	{"Ice Skating", "snowflake", 2, "Sports"}, {"Archery", "target", 2, "Sports"},
	{"Paintball", "paintpalette.fill", 6, "Sports"}, {"Swimming", "figure.pool.swim", 2, "Sports"},
	{"Workout", "dumbbell.fill", 2, "Sports"},

	{"Just Chill", "moon.stars.fill", 2, "Chill"}, {"Yoga", "figure.yoga", 2, "Chill"},

	{"Painting Pottery", "paintpalette", 2, "Arts"}, {"Museum", "building.columns.fill", 2, "Arts"},
	{"Film Festival", "film.fill", 2, "Arts"}, {"Origami", "doc.plaintext.fill", 2, "Arts"},
	{"Theater", "theatermasks.fill", 2, "Arts"}, {"Concert", "music.mic", 3, "Arts"},

	{"Chess", "crown.fill", 2, "Games"}, {"Board Game", "dice.fill", 3, "Games"},
	{"Escape Room", "lock.open.fill", 4, "Games"}, {"Video Games", "gamecontroller.fill", 2, "Games"},
	{"Poker", "suit.spade.fill", 4, "Games"}, {"DND", "shield.fill", 4, "Games"},
	{"Esports Tourney", "trophy.fill", 5, "Games"}, {"Mario Kart", "car.fill", 4, "Games"},

	{"Movies", "popcorn.fill", 2, "Social"}, {"Mall", "bag.fill", 2, "Social"},
	{"Shopping", "cart.fill", 2, "Social"}, {"Sporting Event", "sportscourt.fill", 3, "Social"},
}

// Activities seeds the activity catalog when it looks empty or truncated.
// Existing activities are left untouched, so re-running is safe. The
// missing entries land in a single commit.
func Activities(st store.Store) error {
	existing, err := st.AllActivities()
	if err != nil {
		return err
	}
	if len(existing) >= 10 {
		return nil
	}

	names := make(map[string]bool, len(existing))
	for _, a := range existing {
		names[a.Name] = true
	}

	seeded := 0
	for _, data := range catalog {
		if names[data.name] {
			continue
		}

		color, ok := categoryColors[data.category]
		if !ok {
			color = "FFFFFF"
		}

		st.StageInsert(&models.Activity{
			ID:              uuid.New(),
			Name:            data.name,
			Icon:            data.icon,
			Color:           color,
			Category:        data.category,
			MinParticipants: data.minParticipants,
			X:               randomIn(-300, 300),
			Y:               randomIn(-600, 600),
			Z:               randomIn(100, 5000),
		})
		seeded++
	}

	if seeded == 0 {
		return nil
	}
	if err := st.Commit(); err != nil {
		return err
	}
	slog.Info("seeded activity catalog", "new", seeded, "total", len(catalog))
	return nil
}

func randomIn(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
