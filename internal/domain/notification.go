package domain

import "time"

// RecipientKind tags the two notification identity namespaces. Buyer user
// ids and vendor storefront names are raw strings that could collide; the
// tag keeps them apart.
type RecipientKind string

const (
	RecipientKindBuyer  RecipientKind = "BUYER"
	RecipientKindVendor RecipientKind = "VENDOR"
)

// RecipientID is the tagged union BuyerID(string) | VendorID(string).
type RecipientID struct {
	Kind  RecipientKind
	Value string
}

// BuyerRecipient keys a notification on a buyer's user id.
func BuyerRecipient(userID string) RecipientID {
	return RecipientID{Kind: RecipientKindBuyer, Value: userID}
}

// VendorRecipient keys a notification on a seller's vendor identity.
func VendorRecipient(vendorName string) RecipientID {
	return RecipientID{Kind: RecipientKindVendor, Value: vendorName}
}

// RecipientFor resolves the notification identity for a viewer: buyers key
// on user id, sellers on vendor name. Writer and reader must agree on this
// mapping or notifications silently vanish.
func RecipientFor(user *User) RecipientID {
	if user.Role == RoleSeller {
		return VendorRecipient(user.VendorName)
	}
	return BuyerRecipient(user.ID)
}

// NotificationType enumerates display severities.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
)

// AppNotification is one entry in the per-recipient append-only log.
type AppNotification struct {
	ID               string
	Recipient        RecipientID
	Message          string
	Type             NotificationType
	Read             bool
	RelatedRequestID string
	CreatedAt        time.Time
}
