package closet

import (
	"context"
	"strings"
)

// ColorPalette is the fixed set of color names the detector picks from.
var ColorPalette = []string{"Black", "White", "Gray", "Blue", "Red", "Green", "Beige", "Brown"}

// DetectColor returns the dominant color for an uploaded image reference.
// The contract is content-blind: the image is never inspected
// and the result is a uniform random palette entry, after the same
// artificial latency as outfit generation. A real classifier would replace
// this wholesale.
func (g *Generator) DetectColor(ctx context.Context, imageRef string) (string, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}
	g.mu.Lock()
	color := ColorPalette[g.rng.Intn(len(ColorPalette))]
	g.mu.Unlock()
	return color, nil
}

// mostUsedColor counts case-normalized color occurrences across the
// wardrobe and returns the most frequent one, capitalized. Ties go to the
// color encountered first during the scan; an empty wardrobe yields "".
func mostUsedColor(items []ClothingItem) string {
	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.Color))
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	best := ""
	bestCount := 0
	for _, key := range order {
		if counts[key] > bestCount {
			best = key
			bestCount = counts[key]
		}
	}
	if best == "" {
		return ""
	}
	return strings.ToUpper(best[:1]) + best[1:]
}
