package client

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"motorsonline/internal/models"
)

// Submit validates the draft and dispatches it: POST for a new listing, PUT
// for an edit. The returned listing is the backend's stored version. A
// validation failure makes no network call and leaves the draft state
// untouched so the form stays populated.
func (d *Draft) Submit(ctx context.Context) (models.Car, error) {
	if err := d.Validate(); err != nil {
		return models.Car{}, err
	}
	if err := d.transition(StateSubmitting); err != nil {
		return models.Car{}, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := d.writeForm(writer); err != nil {
		d.fail(err)
		return models.Car{}, err
	}
	if err := writer.Close(); err != nil {
		d.fail(err)
		return models.Car{}, err
	}

	method := http.MethodPost
	path := "/api/cars"
	if d.ID != 0 {
		method = http.MethodPut
		path += "/" + strconv.Itoa(d.ID)
	}

	req, err := d.c.newRequest(ctx, method, path, &body)
	if err != nil {
		d.fail(err)
		return models.Car{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.c.httpClient.Do(req)
	if err != nil {
		d.fail(err)
		return models.Car{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		err := decodeError(resp)
		d.fail(err)
		return models.Car{}, err
	}

	var car models.Car
	if err := json.NewDecoder(resp.Body).Decode(&car); err != nil {
		d.fail(err)
		return models.Car{}, err
	}

	created := d.ID == 0
	d.ID = car.ID
	d.state = StateDone
	d.Err = nil

	// Contact persistence is a second, independent transaction. Its failure
	// never rolls back the listing; the card stays dirty for a later retry.
	if created && d.ContactDirty {
		if err := d.SaveContact(ctx); err != nil {
			log.Printf("contact save after listing create failed: %v", err)
		}
	}

	d.resetTransient()
	return car, nil
}

// fail records the error and returns the draft to its editable state so the
// user can retry with the form still populated.
func (d *Draft) fail(err error) {
	d.Err = err
	if d.ID != 0 {
		d.state = StateEditing
	} else {
		d.state = StateNew
	}
}

func (d *Draft) resetTransient() {
	d.Photos = [models.MaxCarImages]PhotoSlot{}
	d.removed = make(map[int]string)
	d.ModelList = nil
	d.ModelBusy = false
}

// writeForm serializes the draft as the multipart form the backend consumes:
// scalar fields, comma-joined flag CSVs, explicitly removed stored photo
// paths, retained stored photo references in slot order, and each unsent
// local photo as a file part.
func (d *Draft) writeForm(writer *multipart.Writer) error {
	fields := map[string]string{
		"brand_id":      strconv.Itoa(d.Car.BrandID),
		"model_id":      strconv.Itoa(d.Car.ModelID),
		"year_id":       strconv.Itoa(d.Car.YearID),
		"drive_type_id": strconv.Itoa(d.Car.DriveTypeID),

		"vehicle_type": d.Car.VehicleType,
		"body_type":    d.Car.BodyType,
		"category":     d.Car.Category,
		"fuel_type":    d.Car.FuelType,
		"transmission": d.Car.Transmission,
		"color":        d.Car.Color,

		"mileage":      strconv.Itoa(d.Car.Mileage),
		"power":        strconv.Itoa(d.Car.Power),
		"displacement": strconv.Itoa(d.Car.Displacement),
		"seats":        strconv.Itoa(d.Car.Seats),
		"doors":        strconv.Itoa(d.Car.Doors),
		"vin":          d.Car.VIN,
		"plate_number": d.Car.PlateNumber,

		"description":     d.Car.Description,
		"equipment_text":  d.Car.EquipmentText,
		"additional_info": d.Car.AdditionalInfo,

		"price":          strconv.FormatFloat(d.BasePrice, 'f', -1, 64),
		"vat_refundable": d.Car.VatRefundable,
		"vat_rate":       strconv.FormatFloat(d.Car.VatRate, 'f', -1, 64),

		"equipment":              flagCSV(models.EquipmentKeys, d.Equipment),
		"stereo_text":            d.Car.StereoText,
		"wheel_size_text":        d.Car.WheelSizeText,
		"tech_check":             flagCSV(models.TechCheckKeys, d.TechCheck),
		"inspection_valid_until": d.Car.InspectionValidUntil,
	}
	if d.DiscountPrice > 0 {
		fields["discount_price"] = strconv.FormatFloat(d.DiscountPrice, 'f', -1, 64)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}

	for _, path := range d.RemovedPaths() {
		if err := writer.WriteField("removed_images", path); err != nil {
			return err
		}
	}

	for _, slot := range d.Photos {
		if slot.Ref != nil {
			ref, err := json.Marshal(slot.Ref)
			if err != nil {
				return err
			}
			if err := writer.WriteField("existing_images", string(ref)); err != nil {
				return err
			}
			continue
		}
		if len(slot.Data) == 0 {
			continue
		}
		part, err := writer.CreateFormFile("images", slot.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(slot.Data); err != nil {
			return err
		}
	}
	return nil
}

// flagCSV joins the enabled flags in catalog order.
func flagCSV(catalog []string, flags map[string]bool) string {
	var on []string
	for _, key := range catalog {
		if flags[key] {
			on = append(on, key)
		}
	}
	return strings.Join(on, ",")
}
