package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"motorsonline/internal/models"
	"motorsonline/internal/pricing"
)

// Draft lifecycle states.
const (
	StateNew         = "new"
	StateEditLoading = "edit_loading"
	StateEditing     = "editing"
	StatePreview     = "preview"
	StateSubmitting  = "submitting"
	StateDone        = "done"
	StateFailed      = "failed"
)

var draftTransitions = map[string]map[string]struct{}{
	StateNew:         {StatePreview: {}, StateSubmitting: {}, StateEditLoading: {}},
	StateEditLoading: {StateEditing: {}, StateFailed: {}},
	StateEditing:     {StatePreview: {}, StateSubmitting: {}},
	StatePreview:     {StateNew: {}, StateEditing: {}, StateSubmitting: {}},
	StateSubmitting:  {StateDone: {}, StateNew: {}, StateEditing: {}},
}

var (
	ErrBadTransition  = errors.New("client: illegal draft state transition")
	ErrUnknownFlag    = errors.New("client: unknown flag key")
	ErrSlotOutOfRange = errors.New("client: photo slot index out of range")
	// ErrListingGone means the listing could not be loaded for editing:
	// deleted, or not owned by the caller. The UI redirects on it.
	ErrListingGone = errors.New("client: listing is gone")
	// ErrStaleResponse marks a model list fetch that was superseded by a
	// newer brand selection while in flight.
	ErrStaleResponse = errors.New("client: stale model list response")
)

// PhotoSlot is one of the 40 fixed photo positions: a not-yet-uploaded local
// file, a previously stored reference (when editing), or empty.
type PhotoSlot struct {
	Data        []byte
	Name        string
	ContentType string
	Ref         *models.CarImage
}

func (s PhotoSlot) Empty() bool {
	return len(s.Data) == 0 && s.Ref == nil
}

// Draft holds the form-in-progress for one listing. It is owned by a single
// caller and is not safe for concurrent use.
type Draft struct {
	c     *Client
	state string

	// ID is set when editing an existing listing.
	ID  int
	Car models.Car

	// BasePrice is the VAT-exclusive price the seller edits. The stored
	// VAT-inclusive total is derived at submit time by the backend.
	BasePrice     float64
	DiscountPrice float64

	Equipment map[string]bool
	TechCheck map[string]bool

	Photos [models.MaxCarImages]PhotoSlot
	// removed tracks stored photos the user cleared while editing, keyed by
	// slot index. Refilling a slot un-tracks it.
	removed map[int]string

	// modelSeq sequences brand changes so a slow model list response for an
	// old brand never lands after a newer one.
	modelSeq  uint64
	ModelList []models.CarModel
	ModelBusy bool

	Contact      models.Contact
	ContactDirty bool
	ContactSaved bool

	// Err holds the failure that moved the draft to StateFailed.
	Err error
}

// NewDraft starts a blank listing draft.
func (c *Client) NewDraft() *Draft {
	return &Draft{
		c:         c,
		state:     StateNew,
		Equipment: make(map[string]bool),
		TechCheck: make(map[string]bool),
		removed:   make(map[int]string),
	}
}

func (d *Draft) State() string { return d.state }

func (d *Draft) transition(to string) error {
	if _, ok := draftTransitions[d.state][to]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, d.state, to)
	}
	d.state = to
	return nil
}

// OpenPreview moves the draft into the preview state.
func (d *Draft) OpenPreview() error {
	return d.transition(StatePreview)
}

// ClosePreview returns from preview to the state being previewed.
func (d *Draft) ClosePreview() error {
	if d.state != StatePreview {
		return fmt.Errorf("%w: not previewing", ErrBadTransition)
	}
	if d.ID != 0 {
		return d.transition(StateEditing)
	}
	return d.transition(StateNew)
}

// SetBrand selects a brand, clears any dependent model selection, and
// fetches the model list scoped to the new brand. A response superseded by a
// later SetBrand is discarded and reported as ErrStaleResponse.
func (d *Draft) SetBrand(ctx context.Context, brandID int) ([]models.CarModel, error) {
	d.Car.BrandID = brandID
	d.Car.ModelID = 0
	d.ModelList = nil
	d.modelSeq++
	seq := d.modelSeq

	d.ModelBusy = true
	list, err := d.c.Models(ctx, brandID)
	if seq != d.modelSeq {
		return nil, ErrStaleResponse
	}
	d.ModelBusy = false
	if err != nil {
		return nil, err
	}
	d.ModelList = list
	return list, nil
}

// ToggleEquipment flips one equipment flag. Turning off a flag with a
// dependent text sub-value clears that sub-value.
func (d *Draft) ToggleEquipment(key string) error {
	if !models.IsEquipmentKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownFlag, key)
	}
	d.Equipment[key] = !d.Equipment[key]
	if !d.Equipment[key] {
		switch key {
		case models.EquipmentStereo:
			d.Car.StereoText = ""
		case models.EquipmentAlloyWheels:
			d.Car.WheelSizeText = ""
		}
	}
	return nil
}

// ToggleTechCheck flips one technical check flag. Turning off the
// inspection-valid flag clears the dependent validity period.
func (d *Draft) ToggleTechCheck(key string) error {
	if !models.IsTechCheckKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownFlag, key)
	}
	d.TechCheck[key] = !d.TechCheck[key]
	if key == models.TechCheckInspectionValid && !d.TechCheck[key] {
		d.Car.InspectionValidUntil = ""
	}
	return nil
}

// SetPhoto places a local file into a slot. Refilling a slot whose stored
// photo was removed earlier un-tracks the removal.
func (d *Draft) SetPhoto(index int, data []byte, name, contentType string) error {
	if index < 0 || index >= models.MaxCarImages {
		return ErrSlotOutOfRange
	}
	d.Photos[index] = PhotoSlot{Data: data, Name: name, ContentType: contentType}
	delete(d.removed, index)
	return nil
}

// RemovePhoto clears a slot. When the slot held a previously stored photo,
// the removal is tracked so submission tells the backend to delete it.
func (d *Draft) RemovePhoto(index int) error {
	if index < 0 || index >= models.MaxCarImages {
		return ErrSlotOutOfRange
	}
	if ref := d.Photos[index].Ref; ref != nil {
		d.removed[index] = ref.Path
	}
	d.Photos[index] = PhotoSlot{}
	return nil
}

// Reorder moves the slot at src to dst, shifting only the slots between
// them. Reordering a slot with itself is a no-op.
func (d *Draft) Reorder(src, dst int) error {
	if src < 0 || src >= models.MaxCarImages || dst < 0 || dst >= models.MaxCarImages {
		return ErrSlotOutOfRange
	}
	if src == dst {
		return nil
	}
	moved := d.Photos[src]
	if src < dst {
		copy(d.Photos[src:dst], d.Photos[src+1:dst+1])
	} else {
		copy(d.Photos[dst+1:src+1], d.Photos[dst:src])
	}
	d.Photos[dst] = moved
	return nil
}

// RemovedPaths lists the stored photo paths cleared during this edit.
func (d *Draft) RemovedPaths() []string {
	paths := make([]string, 0, len(d.removed))
	for _, p := range d.removed {
		paths = append(paths, p)
	}
	return paths
}

// VatSplit derives the VAT amount and VAT-inclusive total shown next to the
// price field. Pure: it never touches the backend.
func (d *Draft) VatSplit() (vat, total float64) {
	rate := d.Car.VatRate
	if rate == 0 {
		rate = pricing.DefaultVatRate
	}
	return pricing.Split(d.BasePrice, rate, pricing.Refundable(d.Car.VatRefundable))
}

// Validate enforces the one submission precondition: the four reference
// selections must be present.
func (d *Draft) Validate() error {
	if d.Car.BrandID <= 0 || d.Car.ModelID <= 0 || d.Car.YearID <= 0 || d.Car.DriveTypeID <= 0 {
		return models.ErrMissingRequired
	}
	return nil
}

// LoadForEdit pulls an existing listing and the owner's contact card into
// the draft. The two reads are independent: a missing contact card is not an
// error. A listing that cannot be loaded yields ErrListingGone.
func (d *Draft) LoadForEdit(ctx context.Context, id int) error {
	if err := d.transition(StateEditLoading); err != nil {
		return err
	}

	var payload models.CarEditPayload
	err := d.c.doJSON(ctx, http.MethodGet, "/api/cars/"+strconv.Itoa(id)+"/edit", nil, &payload)
	if err != nil {
		d.Err = err
		d.state = StateFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return ErrListingGone
		}
		return err
	}

	d.ID = id
	d.Car = payload.Car
	d.BasePrice = payload.BasePrice
	if payload.Car.DiscountPrice != nil {
		refundable := pricing.Refundable(payload.Car.VatRefundable)
		d.DiscountPrice = pricing.BaseFromTotal(*payload.Car.DiscountPrice, payload.Car.VatRate, refundable)
	}
	d.Equipment = make(map[string]bool)
	for key, on := range payload.EquipmentFlags {
		if on {
			d.Equipment[key] = true
		}
	}
	d.TechCheck = make(map[string]bool)
	for key, on := range payload.TechCheckFlags {
		if on {
			d.TechCheck[key] = true
		}
	}

	d.Photos = [models.MaxCarImages]PhotoSlot{}
	for i, img := range payload.Car.Images {
		if i >= models.MaxCarImages {
			break
		}
		ref := img
		d.Photos[i] = PhotoSlot{Ref: &ref}
	}
	d.removed = make(map[int]string)

	if contact, err := d.c.Contact(ctx); err == nil {
		d.Contact = contact
		d.ContactSaved = true
	}

	return d.transition(StateEditing)
}

// SetContact stages contact edits; they persist on explicit SaveContact or
// after a successful create.
func (d *Draft) SetContact(contact models.Contact) {
	d.Contact = contact
	d.ContactDirty = true
	d.ContactSaved = false
}

// SaveContact persists the staged contact card independently of the listing.
func (d *Draft) SaveContact(ctx context.Context) error {
	saved, err := d.c.SaveContact(ctx, d.Contact)
	if err != nil {
		return err
	}
	d.Contact = saved
	d.ContactDirty = false
	d.ContactSaved = true
	return nil
}
