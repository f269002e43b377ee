package metadata

// PhotoMetadata is the structured record extracted from a photograph.
//
// String fields use the empty string to mean "not present in the file";
// ISO uses zero. The record is immutable once produced: the overlay
// renderer only reads from it.
type PhotoMetadata struct {
	Camera    CameraInfo     `json:"camera"`
	Settings  CameraSettings `json:"settings"`
	Timestamp string         `json:"timestamp,omitempty"`
	Location  *LocationInfo  `json:"location,omitempty"`
}

// CameraInfo identifies the camera that took the photograph.
type CameraInfo struct {
	Make  string `json:"make,omitempty"`  // e.g. "Canon"
	Model string `json:"model,omitempty"` // e.g. "EOS R5"
}

// CameraSettings holds the exposure settings, pre-formatted for display.
type CameraSettings struct {
	Aperture     string `json:"aperture,omitempty"`      // e.g. "f/2.8"
	ShutterSpeed string `json:"shutter_speed,omitempty"` // e.g. "1/250" or "2s"
	ISO          int    `json:"iso,omitempty"`           // 0 = unknown
	FocalLength  string `json:"focal_length,omitempty"`  // e.g. "50mm"
}

// LocationInfo is a GPS position in decimal degrees.
//
// Address requires a geocoding service and is left empty by the EXIF
// extractor; callers may fill it in.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
