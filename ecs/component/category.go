package component

import "strings"

// Category is a closed set of collision roles. Values are bit flags so they
// can be combined into query masks.
type Category uint32

const (
	CategoryPlayer Category = 1 << iota
	CategoryEnemy
	CategoryBoss
	CategoryGround
	CategoryTrap
	CategoryCoin
	CategoryBreakable
	CategoryJumpBoost
	CategoryProjectile

	CategoryNone Category = 0
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryPlayer, "player"},
	{CategoryEnemy, "enemy"},
	{CategoryBoss, "boss"},
	{CategoryGround, "ground"},
	{CategoryTrap, "trap"},
	{CategoryCoin, "coin"},
	{CategoryBreakable, "breakable"},
	{CategoryJumpBoost, "jump_boost"},
	{CategoryProjectile, "projectile"},
}

func (c Category) Has(other Category) bool {
	return c&other != 0
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	var parts []string
	for _, n := range categoryNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseCategory converts a prefab name ("enemy", "boss|player") into a Category.
func ParseCategory(s string) (Category, bool) {
	var out Category
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		found := false
		for _, n := range categoryNames {
			if n.name == part {
				out |= n.c
				found = true
				break
			}
		}
		if !found {
			return CategoryNone, false
		}
	}
	return out, true
}

// CategoryTag stores the collision role of an entity.
type CategoryTag struct {
	Category Category
}

var CategoryComponent = NewComponent[CategoryTag]()
