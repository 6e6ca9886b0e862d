package utils

import "travelassist_server/models"

// DecodePolyline decodes Google's encoded polyline format into coordinates.
// Each coordinate delta is a zig-zag encoded integer split into 5-bit chunks,
// every chunk offset by 63 with 0x20 marking continuation, and the running
// totals are scaled by 1e-5.
func DecodePolyline(encoded string) []models.LatLng {
	var points []models.LatLng
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		dLat, next, ok := decodeDelta(encoded, index)
		if !ok {
			break
		}
		lat += dLat

		dLng, after, ok := decodeDelta(encoded, next)
		if !ok {
			break
		}
		lng += dLng
		index = after

		points = append(points, models.LatLng{
			Latitude:  float64(lat) * 1e-5,
			Longitude: float64(lng) * 1e-5,
		})
	}
	return points
}

// decodeDelta reads one varint starting at index and returns the zig-zag
// decoded delta plus the index of the next unread byte.
func decodeDelta(encoded string, index int) (int, int, bool) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	delta := result >> 1
	if result&1 != 0 {
		delta = ^delta
	}
	return delta, index, true
}
