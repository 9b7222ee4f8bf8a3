package closet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrGenerationBusy      = errors.New("outfit generation already in progress")
	ErrGenerationCancelled = errors.New("outfit generation cancelled")

	// ErrSnapshot marks a mutation that was applied in memory but could not
	// be written to the store. In-memory state stays authoritative; callers
	// treat this as a warning, not a rollback.
	ErrSnapshot = errors.New("snapshot write failed")
)

// Store persists the full closet state. Save must replace the stored
// snapshot atomically so a crash mid-write never leaves a corrupt or
// half-updated snapshot behind.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Manager is the single source of truth for the five closet collections.
// Every mutation applies the change in memory, recomputes the derived
// profile fields where the wardrobe or outfit collections changed, and
// writes a full snapshot through the store.
type Manager struct {
	mu    sync.Mutex
	store Store
	gen   *Generator

	items   []ClothingItem
	outfits []Outfit
	liked   []Outfit
	events  []Event
	profile UserProfile

	onboarded bool
	current   *Outfit

	// genSeq hands out a token per generation request; pending holds the
	// token of the in-flight request (0 = idle). A cancel clears pending,
	// so a late-arriving result for a stale token is discarded instead of
	// overwriting the current outfit.
	genSeq  uint64
	pending uint64
}

// NewManager loads the stored snapshot and returns a ready manager. A store
// with no snapshot yet yields a fresh default state.
func NewManager(ctx context.Context, store Store, gen *Generator) (*Manager, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load closet snapshot: %w", err)
	}

	m := &Manager{store: store, gen: gen}
	if snap != nil {
		m.items = snap.ClothingItems
		m.outfits = snap.Outfits
		m.liked = snap.LikedOutfits
		m.events = snap.Events
		m.profile = snap.Profile
		m.onboarded = snap.Onboarded
	}
	if m.profile.Name == "" {
		m.profile.Name = "User"
	}
	m.recomputeLocked()
	return m, nil
}

func (m *Manager) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		ClothingItems: make([]ClothingItem, len(m.items)),
		Outfits:       cloneOutfits(m.outfits),
		LikedOutfits:  cloneOutfits(m.liked),
		Events:        make([]Event, len(m.events)),
		Profile:       m.profile,
		Onboarded:     m.onboarded,
	}
	for i, item := range m.items {
		snap.ClothingItems[i] = cloneItem(item)
	}
	for i, e := range m.events {
		snap.Events[i] = cloneEvent(e)
	}
	snap.Profile.TopOutfits = cloneOutfits(m.profile.TopOutfits)
	return snap
}

func (m *Manager) persistLocked(ctx context.Context) error {
	if err := m.store.Save(ctx, m.snapshotLocked()); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	return nil
}

// recomputeLocked refreshes the derived profile fields from the current
// collections. Outfits are never deleted, so the created count is simply
// the collection length.
func (m *Manager) recomputeLocked() {
	m.profile.WardrobeItems = len(m.items)
	m.profile.OutfitsCreated = len(m.outfits)
	m.profile.MostUsedColor = mostUsedColor(m.items)
}

// --- wardrobe ---

func (m *Manager) ClothingItems() []ClothingItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ClothingItem, len(m.items))
	for i, item := range m.items {
		out[i] = cloneItem(item)
	}
	return out
}

// AddClothingItem appends a new wardrobe item. The id is assigned here;
// whatever the caller put in item.ID is discarded.
func (m *Manager) AddClothingItem(ctx context.Context, item ClothingItem) (ClothingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = uuid.NewString()
	m.items = append(m.items, cloneItem(item))
	m.recomputeLocked()
	return item, m.persistLocked(ctx)
}

// UpdateClothingItem merges the non-nil fields of upd into the item with
// the given id.
func (m *Manager) UpdateClothingItem(ctx context.Context, id string, upd ItemUpdate) (ClothingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		item := &m.items[i]
		if upd.Name != nil {
			item.Name = *upd.Name
		}
		if upd.Type != nil {
			item.Type = *upd.Type
		}
		if upd.Color != nil {
			item.Color = *upd.Color
		}
		if upd.Brand != nil {
			item.Brand = *upd.Brand
		}
		if upd.Size != nil {
			item.Size = *upd.Size
		}
		if upd.Style != nil {
			item.Style = *upd.Style
		}
		if upd.Images != nil {
			item.Images = append([]string(nil), (*upd.Images)...)
		}
		m.recomputeLocked()
		return cloneItem(*item), m.persistLocked(ctx)
	}
	return ClothingItem{}, ErrNotFound
}

// DeleteClothingItem removes the item by id. Outfits that embedded a copy
// of the item keep their snapshot; there is no cascade.
func (m *Manager) DeleteClothingItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.recomputeLocked()
			return m.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// --- outfits ---

func (m *Manager) Outfits() []Outfit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOutfits(m.outfits)
}

func (m *Manager) LikedOutfits() []Outfit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOutfits(m.liked)
}

// GenerateOutfit composes a new outfit from the current wardrobe after the
// generator's artificial delay, appends it and selects it as the current
// outfit. Only one generation may be in flight at a time. A result arriving
// after CancelGeneration (or context cancellation) is discarded.
func (m *Manager) GenerateOutfit(ctx context.Context, hint string) (Outfit, error) {
	m.mu.Lock()
	if m.pending != 0 {
		m.mu.Unlock()
		return Outfit{}, ErrGenerationBusy
	}
	m.genSeq++
	token := m.genSeq
	m.pending = token
	wardrobe := make([]ClothingItem, len(m.items))
	for i, item := range m.items {
		wardrobe[i] = cloneItem(item)
	}
	m.mu.Unlock()

	if err := m.gen.wait(ctx); err != nil {
		m.mu.Lock()
		if m.pending == token {
			m.pending = 0
		}
		m.mu.Unlock()
		return Outfit{}, err
	}

	outfit := m.gen.Compose(hint, wardrobe)

	m.mu.Lock()
	if m.pending != token {
		m.mu.Unlock()
		return Outfit{}, ErrGenerationCancelled
	}
	m.pending = 0
	m.outfits = append(m.outfits, cloneOutfit(outfit))
	current := cloneOutfit(outfit)
	m.current = &current
	m.recomputeLocked()
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	return outfit, err
}

// GenerationBusy reports whether a generation request is in flight.
func (m *Manager) GenerationBusy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != 0
}

// CancelGeneration invalidates the in-flight generation, if any. The
// delayed work itself keeps running but its result will be discarded.
func (m *Manager) CancelGeneration() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == 0 {
		return false
	}
	m.pending = 0
	return true
}

// CurrentOutfit returns the currently displayed outfit, if one is selected.
func (m *Manager) CurrentOutfit() (Outfit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Outfit{}, false
	}
	return cloneOutfit(*m.current), true
}

// SetCurrentOutfit selects the outfit with the given id as current, or
// clears the selection when id is empty. The selection is session state and
// is not persisted.
func (m *Manager) SetCurrentOutfit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		m.current = nil
		return nil
	}
	if o := findOutfit(m.outfits, id); o != nil {
		current := cloneOutfit(*o)
		m.current = &current
		return nil
	}
	if o := findOutfit(m.liked, id); o != nil {
		current := cloneOutfit(*o)
		m.current = &current
		return nil
	}
	return ErrNotFound
}

// LikeOutfit adds a snapshot of the outfit to the liked collection. Liking
// an already-liked outfit is a no-op success.
func (m *Manager) LikeOutfit(ctx context.Context, id string) (Outfit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o := findOutfit(m.liked, id); o != nil {
		return cloneOutfit(*o), nil
	}
	o := findOutfit(m.outfits, id)
	if o == nil {
		return Outfit{}, ErrNotFound
	}
	m.liked = append(m.liked, cloneOutfit(*o))
	return cloneOutfit(*o), m.persistLocked(ctx)
}

// UnlikeOutfit removes the outfit from the liked collection only; the
// all-outfits and top-outfits collections are untouched.
func (m *Manager) UnlikeOutfit(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.liked {
		if m.liked[i].ID == id {
			m.liked = append(m.liked[:i], m.liked[i+1:]...)
			return m.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// RenameOutfit rewrites the outfit's name in every collection holding a
// copy: all-outfits, liked, the top-outfits ring and the current selection.
// Collections without a copy are left alone; the rename only fails when no
// copy exists anywhere.
func (m *Manager) RenameOutfit(ctx context.Context, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	renamed := false
	for _, list := range [][]Outfit{m.outfits, m.liked, m.profile.TopOutfits} {
		if o := findOutfit(list, id); o != nil {
			o.Name = name
			renamed = true
		}
	}
	if m.current != nil && m.current.ID == id {
		m.current.Name = name
		renamed = true
	}
	if !renamed {
		return ErrNotFound
	}
	return m.persistLocked(ctx)
}

// findOutfit returns a pointer into list, valid only while the manager lock
// is held.
func findOutfit(list []Outfit, id string) *Outfit {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// lookupOutfitLocked resolves an outfit id against all-outfits first, then
// the liked collection.
func (m *Manager) lookupOutfitLocked(id string) *Outfit {
	if o := findOutfit(m.outfits, id); o != nil {
		return o
	}
	return findOutfit(m.liked, id)
}

// --- calendar ---

func (m *Manager) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	for i, e := range m.events {
		out[i] = cloneEvent(e)
	}
	return out
}

func (m *Manager) AddEvent(ctx context.Context, event Event) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.ID = uuid.NewString()
	event.OutfitID = ""
	event.Outfit = nil
	m.events = append(m.events, event)
	return event, m.persistLocked(ctx)
}

func (m *Manager) UpdateEvent(ctx context.Context, id string, upd EventUpdate) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.events {
		if m.events[i].ID != id {
			continue
		}
		event := &m.events[i]
		if upd.Name != nil {
			event.Name = *upd.Name
		}
		if upd.Location != nil {
			event.Location = *upd.Location
		}
		if upd.Date != nil {
			event.Date = *upd.Date
		}
		if upd.Type != nil {
			event.Type = *upd.Type
		}
		return cloneEvent(*event), m.persistLocked(ctx)
	}
	return Event{}, ErrNotFound
}

func (m *Manager) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return m.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// AssignOutfitToEvent embeds a snapshot of the outfit into the event. The
// outfit id is resolved against all-outfits first, then liked outfits; an
// id found in neither fails with ErrNotFound and leaves the event's outfit
// fields exactly as they were.
func (m *Manager) AssignOutfitToEvent(ctx context.Context, eventID, outfitID string) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var event *Event
	for i := range m.events {
		if m.events[i].ID == eventID {
			event = &m.events[i]
			break
		}
	}
	if event == nil {
		return Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}

	o := m.lookupOutfitLocked(outfitID)
	if o == nil {
		return Event{}, fmt.Errorf("outfit %s: %w", outfitID, ErrNotFound)
	}

	embedded := cloneOutfit(*o)
	event.OutfitID = outfitID
	event.Outfit = &embedded
	return cloneEvent(*event), m.persistLocked(ctx)
}

// --- profile ---

func (m *Manager) Profile() UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile := m.profile
	profile.TopOutfits = cloneOutfits(m.profile.TopOutfits)
	return profile
}

func (m *Manager) UpdateProfile(ctx context.Context, upd ProfileUpdate) (UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if upd.Name != nil {
		m.profile.Name = *upd.Name
	}
	if upd.ProfilePicture != nil {
		m.profile.ProfilePicture = *upd.ProfilePicture
	}
	return m.profileLocked(), m.persistLocked(ctx)
}

func (m *Manager) UpdateUsername(ctx context.Context, name string) (UserProfile, error) {
	return m.UpdateProfile(ctx, ProfileUpdate{Name: &name})
}

// AddTopOutfit promotes the outfit to the front of the top-outfits ring.
// The ring holds at most three entries; the oldest is evicted when full. An
// id already present moves to the front without growing the ring.
func (m *Manager) AddTopOutfit(ctx context.Context, outfitID string) (UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o := m.lookupOutfitLocked(outfitID)
	if o == nil {
		return UserProfile{}, fmt.Errorf("outfit %s: %w", outfitID, ErrNotFound)
	}

	top := m.profile.TopOutfits
	for i := range top {
		if top[i].ID == outfitID {
			top = append(top[:i], top[i+1:]...)
			break
		}
	}
	if len(top) >= 3 {
		top = top[:2]
	}
	m.profile.TopOutfits = append([]Outfit{cloneOutfit(*o)}, top...)
	return m.profileLocked(), m.persistLocked(ctx)
}

func (m *Manager) RemoveTopOutfit(ctx context.Context, outfitID string) (UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	top := m.profile.TopOutfits
	for i := range top {
		if top[i].ID == outfitID {
			m.profile.TopOutfits = append(top[:i], top[i+1:]...)
			return m.profileLocked(), m.persistLocked(ctx)
		}
	}
	return UserProfile{}, ErrNotFound
}

func (m *Manager) profileLocked() UserProfile {
	profile := m.profile
	profile.TopOutfits = cloneOutfits(m.profile.TopOutfits)
	return profile
}

// Login marks the profile as logged in and records the session email.
// Wardrobe data is deliberately not partitioned per account; this is a
// single-user closet and login only drives the session fields.
func (m *Manager) Login(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile.IsLoggedIn = true
	m.profile.Email = email
	return m.persistLocked(ctx)
}

// Logout clears the session fields without discarding any closet data.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile.IsLoggedIn = false
	m.profile.Email = ""
	return m.persistLocked(ctx)
}

// --- onboarding ---

func (m *Manager) Onboarded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.onboarded
}

func (m *Manager) CompleteOnboarding(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onboarded = true
	return m.persistLocked(ctx)
}
