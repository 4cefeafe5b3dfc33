package models

import "time"

// Conversion status values.
const (
	ConversionStatusComplete = "complete"
	ConversionStatusError    = "error"
)

// ConversionRecord summarizes one SVG-to-scene translation run.
type ConversionRecord struct {
	ID               string    `json:"id"`
	FileID           string    `json:"fileId"`
	FileName         string    `json:"fileName"`
	Status           string    `json:"status"`
	ElementCount     int       `json:"elementCount"`
	BlobCount        int       `json:"blobCount"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
