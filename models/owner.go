package models

// Owner is a directory record for a drone owner. The current session's owner
// identity is resolved by matching the mobile number.
type Owner struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Mobile string   `json:"mobile"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}
