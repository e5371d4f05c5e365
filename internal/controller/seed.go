package controller

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// Demo data used by Seed.
var (
	seedFirstNames = []string{
		"Alice", "Bruno", "Camille", "David", "Emma", "François", "Gabriel", "Hélène",
		"Inès", "Julien", "Karim", "Léa", "Mathis", "Nina", "Olivier", "Pauline",
	}
	seedLastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand",
		"Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel", "Garcia", "Roux",
	}
	seedStreets = []string{
		"rue de la République", "avenue Jean Jaurès", "boulevard Voltaire", "rue Victor Hugo",
		"place Bellecour", "quai Saint-Antoine", "rue des Lilas", "allée des Érables",
	}
	seedCities = []struct{ postalCode, city string }{
		{"75011", "Paris"}, {"69002", "Lyon"}, {"13001", "Marseille"}, {"31000", "Toulouse"},
		{"33000", "Bordeaux"}, {"59000", "Lille"}, {"44000", "Nantes"}, {"67000", "Strasbourg"},
	}
)

// Birth dates of seeded clients fall in [seedBirthFrom, seedBirthFrom+seedBirthDays).
var (
	seedBirthFrom = time.Date(1940, time.January, 1, 0, 0, 0, 0, time.UTC)
	seedBirthDays = 65 * 365
)

// DemoForm fabricates one valid client form from rng.
func DemoForm(rng *rand.Rand) ClientForm {
	place := seedCities[rng.IntN(len(seedCities))]
	birth := seedBirthFrom.AddDate(0, 0, rng.IntN(seedBirthDays))
	cents := rng.IntN(500_000)

	return ClientForm{
		Name:            seedFirstNames[rng.IntN(len(seedFirstNames))] + " " + seedLastNames[rng.IntN(len(seedLastNames))],
		Phone:           fmt.Sprintf("0%d %02d %02d %02d %02d", 6+rng.IntN(2), rng.IntN(100), rng.IntN(100), rng.IntN(100), rng.IntN(100)),
		Address:         strconv.Itoa(1+rng.IntN(150)) + " " + seedStreets[rng.IntN(len(seedStreets))],
		PostalCode:      place.postalCode,
		City:            place.city,
		BirthDate:       birth.Format(types.BirthDateLayout),
		AvailableCredit: fmt.Sprintf("%d.%02d", cents/100, cents%100),
		IsGoodClient:    rng.IntN(3) > 0,
		HairColor:       string(types.HairColors[rng.IntN(len(types.HairColors))]),
	}
}

// Seed inserts n fabricated clients through Create and returns their ids.
// It stops at the first failure, returning the ids inserted so far.
func (c *ClientController) Seed(n int, rng *rand.Rand) ([]int64, error) {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := c.Create(DemoForm(rng))
		if err != nil {
			return ids, fmt.Errorf("seeding client %d of %d: %w", i+1, n, err)
		}
		ids = append(ids, id)
	}
	c.log.Info().Str("op", "seed").Int("count", len(ids)).Msg("demo clients seeded")
	return ids, nil
}
