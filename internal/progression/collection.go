package progression

import "skill-evolve-service/internal/domain"

// DefaultCatalog is the stock list of collectibles in declaration order.
func DefaultCatalog() []domain.CollectionItem {
	return []domain.CollectionItem{
		{ID: "pen1", Name: "Wooden Pen", UnlockLevel: 1, Bonus: 5},
		{ID: "pen2", Name: "Silver Pen", UnlockLevel: 3, Bonus: 10},
		{ID: "pen3", Name: "Golden Pen", UnlockLevel: 5, Bonus: 15},
		{ID: "book1", Name: "Beginner's Book", UnlockLevel: 2, Bonus: 5},
		{ID: "book2", Name: "Expert's Book", UnlockLevel: 4, Bonus: 10},
		{ID: "glasses", Name: "Glasses of Wisdom", UnlockLevel: 6, Bonus: 20},
	}
}

// Collection tracks which catalog items a player has unlocked. The unlocked set only grows.
type Collection struct {
	catalog  []domain.CollectionItem
	unlocked []string
	seen     map[string]struct{}
}

// NewCollection restores a collection from a saved list of unlocked ids.
// Ids that are not in the catalog are dropped.
func NewCollection(catalog []domain.CollectionItem, unlocked []string) *Collection {
	c := &Collection{
		catalog: catalog,
		seen:    make(map[string]struct{}, len(unlocked)),
	}
	known := make(map[string]struct{}, len(catalog))
	for _, item := range catalog {
		known[item.ID] = struct{}{}
	}
	for _, id := range unlocked {
		if _, ok := known[id]; ok {
			c.add(id)
		}
	}
	return c
}

// CheckUnlocks unlocks every item whose threshold playerLevel meets, in catalog order,
// and returns only the items that were not unlocked before.
func (c *Collection) CheckUnlocks(playerLevel int) []domain.CollectionItem {
	var fresh []domain.CollectionItem
	for _, item := range c.catalog {
		if playerLevel < item.UnlockLevel || c.has(item.ID) {
			continue
		}
		c.add(item.ID)
		fresh = append(fresh, item)
	}
	return fresh
}

// Unlocked returns the unlocked ids in unlock order.
func (c *Collection) Unlocked() []string {
	out := make([]string, len(c.unlocked))
	copy(out, c.unlocked)
	return out
}

// UnlockedItems returns the unlocked catalog items in catalog order.
func (c *Collection) UnlockedItems() []domain.CollectionItem {
	out := make([]domain.CollectionItem, 0, len(c.unlocked))
	for _, item := range c.catalog {
		if c.has(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// TotalBonus sums the bonus of every unlocked item.
func (c *Collection) TotalBonus() int {
	total := 0
	for _, item := range c.UnlockedItems() {
		total += item.Bonus
	}
	return total
}

func (c *Collection) has(id string) bool {
	_, ok := c.seen[id]
	return ok
}

func (c *Collection) add(id string) {
	if c.has(id) {
		return
	}
	c.seen[id] = struct{}{}
	c.unlocked = append(c.unlocked, id)
}
