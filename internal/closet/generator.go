package closet

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const placeholderImage = "/placeholder.svg?height=300&width=300"

// placeholders are the synthetic items substituted when the wardrobe has no
// candidate for a slot. Fields are fixed so generation from an empty
// wardrobe is fully deterministic apart from the id.
var placeholders = map[ItemType]ClothingItem{
	ItemTop:    {Name: "T-shirt", Type: ItemTop, Color: "Black", Brand: "Generic"},
	ItemBottom: {Name: "Jeans", Type: ItemBottom, Color: "Blue", Brand: "Generic"},
	ItemShoes:  {Name: "Sneakers", Type: ItemShoes, Color: "White", Brand: "Generic"},
}

// Generator composes new outfits from the current wardrobe. Slot picks are
// uniform random over the items whose type matches the slot; the hint text
// ends up in the description verbatim and is never used for filtering or
// ranking.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
	now   func() time.Time
}

// NewGenerator returns a generator with the given artificial latency, which
// models the upstream styling call the client waits on.
func NewGenerator(delay time.Duration) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: delay,
		now:   time.Now,
	}
}

// Compose builds a new outfit record. It has no side effects; appending to
// the collections and selecting the current outfit is the Manager's job.
func (g *Generator) Compose(hint string, wardrobe []ClothingItem) Outfit {
	now := g.now()
	return Outfit{
		ID:          uuid.NewString(),
		Name:        "Outfit for " + now.Format("1/2/2006"),
		Description: fmt.Sprintf("An outfit based on: %s", hint),
		Top:         g.pick(ItemTop, wardrobe),
		Bottom:      g.pick(ItemBottom, wardrobe),
		Shoes:       g.pick(ItemShoes, wardrobe),
		CreatedAt:   now,
	}
}

// pick selects a uniform random wardrobe item of the given type, or the
// slot's placeholder when none exist.
func (g *Generator) pick(slot ItemType, wardrobe []ClothingItem) ClothingItem {
	candidates := make([]ClothingItem, 0, len(wardrobe))
	for _, item := range wardrobe {
		if strings.EqualFold(string(item.Type), string(slot)) {
			candidates = append(candidates, item)
		}
	}

	if len(candidates) == 0 {
		item := placeholders[slot]
		item.ID = fmt.Sprintf("placeholder_%s_%s", slot, uuid.NewString())
		item.Images = []string{placeholderImage}
		return item
	}

	g.mu.Lock()
	idx := g.rng.Intn(len(candidates))
	g.mu.Unlock()
	return cloneItem(candidates[idx])
}

// wait blocks for the generator's artificial delay or until the context is
// cancelled.
func (g *Generator) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
