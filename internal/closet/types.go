package closet

import (
	"time"
)

// ItemType is the wardrobe slot category of a clothing item.
type ItemType string

const (
	ItemTop       ItemType = "top"
	ItemBottom    ItemType = "bottom"
	ItemShoes     ItemType = "shoes"
	ItemAccessory ItemType = "accessory"
)

var ItemTypes = []ItemType{ItemTop, ItemBottom, ItemShoes, ItemAccessory}

func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

var ItemStyles = []string{"casual", "sport", "business", "formal"}

// EventTypes are the display categories a calendar event can carry.
// The type only drives icon lookup on the client, nothing else.
var EventTypes = []string{"party", "work", "sport", "date", "travel", "other"}

type ClothingItem struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Type   ItemType `json:"type"`
	Color  string   `json:"color"`
	Brand  string   `json:"brand"`
	Size   string   `json:"size,omitempty"`
	Style  string   `json:"style,omitempty"`
	Images []string `json:"images"`
}

// Outfit bundles one item per slot. Slots hold full copies of the wardrobe
// items as they looked at generation time, not references: deleting or
// editing a wardrobe item later leaves existing outfits untouched.
type Outfit struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Top         ClothingItem `json:"top"`
	Bottom      ClothingItem `json:"bottom"`
	Shoes       ClothingItem `json:"shoes"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Event is a calendar entry. Date is a plain calendar day ("2006-01-02"),
// there is no time-of-day. An assigned outfit is embedded as a frozen
// snapshot copy and is not re-synced on later renames.
type Event struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Date     string  `json:"date"`
	Type     string  `json:"type,omitempty"`
	OutfitID string  `json:"outfit_id,omitempty"`
	Outfit   *Outfit `json:"outfit,omitempty"`
}

// UserProfile is the singleton account aggregate. OutfitsCreated,
// WardrobeItems and MostUsedColor are derived and recomputed on every
// change to the underlying collections, never mutated directly.
type UserProfile struct {
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	OutfitsCreated int      `json:"outfits_created"`
	WardrobeItems  int      `json:"wardrobe_items"`
	TopOutfits     []Outfit `json:"top_outfits"`
	MostUsedColor  string   `json:"most_used_color,omitempty"`
	IsLoggedIn     bool     `json:"is_logged_in"`
}

// Snapshot is the full persisted state: the five collections plus the
// onboarding flag. Everything is field-tagged so stored snapshots survive
// schema growth; unknown fields are dropped on read instead of crashing.
type Snapshot struct {
	ClothingItems []ClothingItem `json:"clothing_items"`
	Outfits       []Outfit       `json:"outfits"`
	LikedOutfits  []Outfit       `json:"liked_outfits"`
	Events        []Event        `json:"events"`
	Profile       UserProfile    `json:"user_profile"`
	Onboarded     bool           `json:"onboarding_completed"`
}

// --- partial updates ---

// ItemUpdate carries the fields of an UpdateClothingItem call. Nil means
// "leave unchanged".
type ItemUpdate struct {
	Name   *string   `json:"name"`
	Type   *ItemType `json:"type"`
	Color  *string   `json:"color"`
	Brand  *string   `json:"brand"`
	Size   *string   `json:"size"`
	Style  *string   `json:"style"`
	Images *[]string `json:"images"`
}

type EventUpdate struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Date     *string `json:"date"`
	Type     *string `json:"type"`
}

type ProfileUpdate struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profile_picture"`
}

// --- copy helpers ---

// Embedded slices would otherwise alias the manager's state, so every
// record handed out or embedded goes through a deep copy.

func cloneItem(item ClothingItem) ClothingItem {
	out := item
	out.Images = append([]string(nil), item.Images...)
	return out
}

func cloneOutfit(o Outfit) Outfit {
	out := o
	out.Top = cloneItem(o.Top)
	out.Bottom = cloneItem(o.Bottom)
	out.Shoes = cloneItem(o.Shoes)
	return out
}

func cloneOutfits(list []Outfit) []Outfit {
	out := make([]Outfit, len(list))
	for i, o := range list {
		out[i] = cloneOutfit(o)
	}
	return out
}

func cloneEvent(e Event) Event {
	out := e
	if e.Outfit != nil {
		copied := cloneOutfit(*e.Outfit)
		out.Outfit = &copied
	}
	return out
}
