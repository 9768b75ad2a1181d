package notifications

import (
	"fmt"

	"wedding-marketplace/internal/catalog"
)

// Render returns the text shown to a vendor for an event.
func Render(event catalog.Event) string {
	switch event.EventType {
	case catalog.EventListingCreated:
		return fmt.Sprintf("Listing %q (#%d) sudah tayang.", event.Name, event.ListingID)
	case catalog.EventListingDeleted:
		return fmt.Sprintf("Listing #%d sudah dihapus.", event.ListingID)
	case catalog.EventContactInitiated:
		if event.UserID == "" {
			return fmt.Sprintf("Calon pembeli menghubungi Anda lewat WhatsApp untuk listing #%d.", event.ListingID)
		}
		return fmt.Sprintf("Pembeli %s menghubungi Anda lewat WhatsApp untuk listing #%d.", event.UserID, event.ListingID)
	case catalog.EventContactStatusChanged:
		return fmt.Sprintf("Kontak #%d sekarang berstatus %s.", event.ContactID, event.Status)
	}
	return fmt.Sprintf("Event %s untuk listing #%d.", event.EventType, event.ListingID)
}
