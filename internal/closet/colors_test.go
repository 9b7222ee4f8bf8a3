package closet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMostUsedColor(t *testing.T) {
	tests := []struct {
		name   string
		colors []string
		want   string
	}{
		{"empty wardrobe", nil, ""},
		{"single item", []string{"Blue"}, "Blue"},
		{"case insensitive counting", []string{"Black", "black", "White"}, "Black"},
		{"tie goes to first encountered", []string{"Red", "Green", "green", "red"}, "Red"},
		{"whitespace trimmed", []string{" gray ", "Gray"}, "Gray"},
		{"blank colors ignored", []string{"", "  ", "Beige"}, "Beige"},
		{"all blank", []string{"", " "}, ""},
		{"lowercase result capitalized", []string{"brown", "brown", "blue"}, "Brown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]ClothingItem, len(tt.colors))
			for i, color := range tt.colors {
				items[i] = ClothingItem{Name: "item", Type: ItemTop, Color: color}
			}
			assert.Equal(t, tt.want, mostUsedColor(items))
		})
	}
}

func TestDetectColorReturnsPaletteEntry(t *testing.T) {
	gen := NewGenerator(0)

	for i := 0; i < 100; i++ {
		color, err := gen.DetectColor(context.Background(), "ref://upload/shirt.jpg")
		require.NoError(t, err)
		assert.Contains(t, ColorPalette, color)
	}
}

func TestDetectColorHonorsContext(t *testing.T) {
	gen := NewGenerator(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.DetectColor(ctx, "ref://upload/shirt.jpg")
	require.ErrorIs(t, err, context.Canceled)
}
