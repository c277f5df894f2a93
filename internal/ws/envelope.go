package ws

import "encoding/json"

// Inbound command kinds.
const (
	KindCreateListing = "create_listing"
	KindUpdateListing = "update_listing"
	KindDeleteListing = "delete_listing"
	KindListAll       = "list_all"
	KindListBySeller  = "list_by_seller"
)

// Outbound message kinds.
const (
	KindCatalog        = "catalog"
	KindSellerCatalog  = "seller_catalog"
	KindCreateAck      = "create_ack"
	KindUpdateAck      = "update_ack"
	KindDeleteAck      = "delete_ack"
	KindListingCreated = "listing_created"
	KindListingUpdated = "listing_updated"
	KindListingDeleted = "listing_deleted"
	KindError          = "error"
)

// Envelope is the inbound wire wrapper: a kind discriminator plus a
// kind-specific payload decoded by the processor.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is the outbound wire wrapper.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type CreateListingPayload struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         *int64 `json:"price"`
	Description   string `json:"description"`
	Condition     string `json:"condition"`
	Negotiable    bool   `json:"negotiable"`
	Location      string `json:"location"`
	PaymentOption string `json:"paymentOption"`
	SellerContact string `json:"sellerContact"`
	SellerID      string `json:"sellerId"`
	ImageRef      string `json:"imageRef"`
}

// UpdateListingPayload carries the target id plus any subset of the mutable
// attributes; nil means unchanged. Ownership (sellerId) is not mutable.
type UpdateListingPayload struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Price         *int64  `json:"price"`
	Description   *string `json:"description"`
	Condition     *string `json:"condition"`
	Negotiable    *bool   `json:"negotiable"`
	Location      *string `json:"location"`
	PaymentOption *string `json:"paymentOption"`
	SellerContact *string `json:"sellerContact"`
	ImageRef      *string `json:"imageRef"`
}

type DeleteListingPayload struct {
	ID string `json:"id"`
}

type ListBySellerPayload struct {
	SellerID string `json:"sellerId"`
}

type IDPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func errorMessage(msg string) Message {
	return Message{Type: KindError, Payload: ErrorPayload{Message: msg}}
}
