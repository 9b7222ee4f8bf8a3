package dto

import "github.com/what2wear/backend/internal/closet"

type CreateItemRequest struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Color  string   `json:"color"`
	Brand  string   `json:"brand"`
	Size   string   `json:"size"`
	Style  string   `json:"style"`
	Images []string `json:"images"`
}

type ItemListResponse struct {
	Items []closet.ClothingItem `json:"items"`
	Total int                   `json:"total"`
}

type DetectColorRequest struct {
	ImageRef string `json:"image_ref"`
}

type DetectColorResponse struct {
	Color string `json:"color"`
}

type OutfitListResponse struct {
	Outfits []closet.Outfit `json:"outfits"`
	Total   int             `json:"total"`
}

type RenameOutfitRequest struct {
	Name string `json:"name"`
}

type GenerateOutfitRequest struct {
	Hint string `json:"hint"`
}

type GeneratorStatusResponse struct {
	Busy          bool           `json:"busy"`
	CurrentOutfit *closet.Outfit `json:"current_outfit,omitempty"`
}

type SetCurrentOutfitRequest struct {
	OutfitID string `json:"outfit_id"`
}

type CreateEventRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

type EventListResponse struct {
	Events []closet.Event `json:"events"`
	Total  int            `json:"total"`
}

type AssignOutfitRequest struct {
	OutfitID string `json:"outfit_id"`
}

type UpdateUsernameRequest struct {
	Name string `json:"name"`
}

type AddTopOutfitRequest struct {
	OutfitID string `json:"outfit_id"`
}
