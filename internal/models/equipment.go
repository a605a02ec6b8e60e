package models

import (
	"strings"
)

// EquipmentKeys is the fixed catalog of optional vehicle features a listing
// can carry. Persisted as a comma separated list of the keys that are on.
var EquipmentKeys = []string{
	"abs",
	"esp",
	"traction_control",
	"airbags",
	"side_airbags",
	"curtain_airbags",
	"isofix",
	"alarm",
	"immobilizer",
	"central_locking",
	"cruise_control",
	"adaptive_cruise",
	"lane_assist",
	"blind_spot_monitor",
	"parking_sensors_front",
	"parking_sensors_rear",
	"parking_camera",
	"camera_360",
	"air_conditioning",
	"climate_control",
	"dual_zone_climate",
	"heated_seats",
	"ventilated_seats",
	"heated_steering_wheel",
	"heated_windshield",
	"electric_seats",
	"memory_seats",
	"leather_interior",
	"sunroof",
	"panoramic_roof",
	"xenon_lights",
	"led_lights",
	"fog_lights",
	"light_sensor",
	"rain_sensor",
	"electric_windows",
	"electric_mirrors",
	"folding_mirrors",
	"stereo",
	"bluetooth",
	"usb",
	"apple_carplay",
	"android_auto",
	"navigation",
	"head_up_display",
	"keyless_entry",
	"start_stop",
	"tow_hook",
	"roof_rails",
	"valuveljed",
	"winter_tires",
	"spare_wheel",
}

// Keys whose presence unlocks a free-text sub-value on the listing form.
const (
	EquipmentStereo      = "stereo"
	EquipmentAlloyWheels = "valuveljed"
)

// TechCheckKeys is the separate flag set describing the technical state of
// the vehicle. inspection_valid gates the validity-period value.
var TechCheckKeys = []string{
	"inspection_done",
	"maintenance_done",
	"service_book",
	"hide_vin",
	"inspection_valid",
}

const TechCheckInspectionValid = "inspection_valid"

var (
	equipmentSet = keySet(EquipmentKeys)
	techCheckSet = keySet(TechCheckKeys)
)

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// IsEquipmentKey reports whether key belongs to the equipment catalog.
func IsEquipmentKey(key string) bool {
	_, ok := equipmentSet[key]
	return ok
}

// IsTechCheckKey reports whether key belongs to the tech-check flag set.
func IsTechCheckKey(key string) bool {
	_, ok := techCheckSet[key]
	return ok
}

// EncodeFlagCSV joins the enabled keys into the stored CSV form, keeping
// catalog order so the column stays stable between saves.
func EncodeFlagCSV(catalog []string, enabled map[string]bool) string {
	var on []string
	for _, key := range catalog {
		if enabled[key] {
			on = append(on, key)
		}
	}
	return strings.Join(on, ",")
}

// DecodeFlagCSV hydrates a flag map from the stored CSV, testing membership
// against the catalog. Unknown members are dropped.
func DecodeFlagCSV(catalog []string, csv string) map[string]bool {
	set := keySet(catalog)
	enabled := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		key := strings.TrimSpace(part)
		if key == "" {
			continue
		}
		if _, ok := set[key]; ok {
			enabled[key] = true
		}
	}
	return enabled
}
