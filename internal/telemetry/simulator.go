package telemetry

import (
	"math/rand"
	"time"
)

// UserProfile is a simulated directory entry the simulator draws from.
type UserProfile struct {
	UserID     string
	Name       string
	Department string
}

// DefaultUsers is the built-in roster for demo workspaces.
func DefaultUsers() []UserProfile {
	return []UserProfile{
		{UserID: "u001", Name: "Alice", Department: "Engineering"},
		{UserID: "u002", Name: "Bob", Department: "Finance"},
		{UserID: "u003", Name: "Charlie", Department: "HR"},
		{UserID: "u004", Name: "Diana", Department: "Sales"},
		{UserID: "u005", Name: "Eve", Department: "Research"},
	}
}

var sampleMessages = []string{
	"Everything is ok, thanks team",
	"I am stressed and need help immediately",
	"This is urgent - send the files",
	"Suspicious activity spotted, please check",
	"Happy to finish the task",
	"I hate the new policy",
	"Please share credentials",
}

// Simulator fabricates telemetry submissions with skewed distributions so
// most events are benign and a minority trip the anomaly boosts.
//
// Inject a seeded RNG for deterministic tests.
type Simulator struct {
	Users []UserProfile
	RNG   *rand.Rand
}

func NewSimulator(users []UserProfile, rng *rand.Rand) *Simulator {
	if len(users) == 0 {
		users = DefaultUsers()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{Users: users, RNG: rng}
}

// Sample draws one submission.
func (s *Simulator) Sample() Submission {
	u := s.Users[s.RNG.Intn(len(s.Users))]

	offHours := weightedFloat(s.RNG, []float64{0.1, 0.3, 0.6, 0.8}, []int{40, 30, 20, 10})
	downloads := weightedInt(s.RNG, []int{0, 2, 6, 12, 40}, []int{30, 25, 20, 15, 10})
	usb := weightedInt(s.RNG, []int{0, 1}, []int{80, 20}) == 1
	unusual := weightedInt(s.RNG, []int{0, 1, 2, 3}, []int{50, 30, 15, 5})
	text := sampleMessages[s.RNG.Intn(len(sampleMessages))]

	return Submission{
		UserID:     u.UserID,
		UserName:   u.Name,
		Department: u.Department,
		Features: RawFeatures{
			OffHoursActivity:    offHours,
			FileDownloads24h:    downloads,
			USBActivity:         usb,
			UnusualProcessCount: unusual,
			MessageText:         text,
		},
	}
}

func weightedInt(rng *rand.Rand, values []int, weights []int) int {
	var total int
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	var acc int
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func weightedFloat(rng *rand.Rand, values []float64, weights []int) float64 {
	var total int
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	var acc int
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}
