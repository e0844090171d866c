// Package rank maps a user's accumulated XP to a rank tier and the
// distance to the next one.
package rank

// Tier is a rank label ordered from lowest to highest
type Tier string

const (
	Bronze    Tier = "BRONZE"
	Silver    Tier = "SILVER"
	Gold      Tier = "GOLD"
	Platinum  Tier = "PLATINUM"
	Legendary Tier = "LEGENDARY"
)

// thresholds holds the minimum XP for each tier, ascending.
var thresholds = []struct {
	tier Tier
	xp   int
}{
	{Bronze, 0},
	{Silver, 50},
	{Gold, 100},
	{Platinum, 500},
	{Legendary, 1000},
}

// ForXP returns the highest tier whose threshold the XP has reached
func ForXP(xp int) Tier {
	tier := Bronze
	for _, t := range thresholds {
		if xp >= t.xp {
			tier = t.tier
		}
	}
	return tier
}

// Next returns the tier above t, or t itself at Legendary
func (t Tier) Next() Tier {
	for i, entry := range thresholds {
		if entry.tier == t && i+1 < len(thresholds) {
			return thresholds[i+1].tier
		}
	}
	return t
}

// XPToNext returns the XP remaining until the next tier, clamped to 0
// at the terminal tier
func XPToNext(xp int) int {
	for _, t := range thresholds {
		if xp < t.xp {
			return t.xp - xp
		}
	}
	return 0
}
