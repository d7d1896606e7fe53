package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePlantShareQR generates a QR code image encoding the public
	// share link of a plant record.
	GeneratePlantShareQR(plantID uint64) ([]byte, error)
}
