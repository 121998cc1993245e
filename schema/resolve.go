// Package schema maps a dataset's arbitrary column headers onto the fixed
// set of canonical keys the engine computes over.
//
// Resolution is deliberately dumb: each key carries an ordered list of known
// literal header aliases, and the first alias present in the dataset wins.
// No fuzzy matching, no case folding — a header either is a known alias or
// it is not, and an unresolved key simply stays absent.
package schema

// ============================================================================
// CANONICAL KEYS + ALIAS TABLE
// ============================================================================

// Key is a canonical semantic column identifier, independent of the literal
// header text in any given dataset.
type Key string

const (
	KeyTerritory       Key = "territory"
	KeyGeoArchetype    Key = "geo_archetype"
	KeyCourierFlow     Key = "courier_flow"
	KeyMerchantSurface Key = "merchant_surface"
	KeyEaterRequestTS  Key = "eater_request_ts"
	KeyPickupDistance  Key = "pickup_distance"
	KeyDropoffDistance Key = "dropoff_distance"
	KeyATD             Key = "atd"
)

// Keys lists every canonical key in a fixed order.
var Keys = []Key{
	KeyTerritory,
	KeyGeoArchetype,
	KeyCourierFlow,
	KeyMerchantSurface,
	KeyEaterRequestTS,
	KeyPickupDistance,
	KeyDropoffDistance,
	KeyATD,
}

// CategoricalKeys lists the business-segmentation dimensions.
var CategoricalKeys = []Key{
	KeyTerritory,
	KeyGeoArchetype,
	KeyCourierFlow,
	KeyMerchantSurface,
}

// aliases maps each canonical key to its accepted literal header names,
// checked in priority order.
var aliases = map[Key][]string{
	KeyTerritory:       {"territory", "Territory"},
	KeyGeoArchetype:    {"geo_archetype", "Geo Archetype", "Geo_Archetype"},
	KeyCourierFlow:     {"courier_flow", "Courier flow", "delivery_flow", "workflow"},
	KeyMerchantSurface: {"merchant_surface", "Merchant surface", "merchantSurface"},
	KeyEaterRequestTS: {
		"eater_request_timestamp_local",
		"eater_request_ts_local",
		"eater_request_time",
		"eater_request",
	},
	KeyPickupDistance:  {"pickup_distance", "pickup_km"},
	KeyDropoffDistance: {"dropoff_distance", "dropoff_km"},
	KeyATD:             {"ATD", "atd", "avg_time_to_deliver"},
}

// Aliases returns the alias list for a key, in priority order.
func Aliases(k Key) []string {
	return append([]string(nil), aliases[k]...)
}

// DisplayName returns a human label for a canonical key.
func DisplayName(k Key) string {
	switch k {
	case KeyTerritory:
		return "Territory"
	case KeyGeoArchetype:
		return "Geo archetype"
	case KeyCourierFlow:
		return "Courier flow"
	case KeyMerchantSurface:
		return "Merchant surface"
	case KeyEaterRequestTS:
		return "Eater request time"
	case KeyPickupDistance:
		return "Pickup distance"
	case KeyDropoffDistance:
		return "Dropoff distance"
	case KeyATD:
		return "ATD"
	default:
		return string(k)
	}
}

// ============================================================================
// MAPPING
// ============================================================================

// Mapping records, per canonical key, the literal column name it resolved
// to. Keys with no matching alias are simply not present.
type Mapping map[Key]string

// Resolve scans the dataset's column names against the alias table and
// returns the Mapping. It reads no row data, and the same column set always
// yields the same result.
func Resolve(columns []string) Mapping {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	m := make(Mapping, len(Keys))
	for _, key := range Keys {
		for _, alias := range aliases[key] {
			if present[alias] {
				m[key] = alias
				break
			}
		}
	}
	return m
}

// Column returns the resolved column name for a key.
func (m Mapping) Column(k Key) (string, bool) {
	name, ok := m[k]
	return name, ok
}

// Has reports whether a key resolved to a column.
func (m Mapping) Has(k Key) bool {
	_, ok := m[k]
	return ok
}
