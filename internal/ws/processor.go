package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/okezie/marketlive-backend/internal/model"
	"github.com/okezie/marketlive-backend/internal/repository"
	"gorm.io/gorm"
)

// Processor maps one decoded inbound envelope to persistence operations and
// outbound messages. Acks and errors go to the sender only; change
// notifications are broadcast to every other session, and only after the
// corresponding write has completed. A failed write never broadcasts.
type Processor struct {
	repo  repository.ListingRepository
	clock Clock
}

func NewProcessor(repo repository.ListingRepository) *Processor {
	return &Processor{repo: repo}
}

func (p *Processor) Handle(ctx context.Context, env Envelope, sender *Session, reg *Registry) {
	switch env.Type {
	case KindCreateListing:
		p.handleCreate(ctx, env.Payload, sender, reg)
	case KindUpdateListing:
		p.handleUpdate(ctx, env.Payload, sender, reg)
	case KindDeleteListing:
		p.handleDelete(ctx, env.Payload, sender, reg)
	case KindListAll:
		p.Snapshot(ctx, sender, reg)
	case KindListBySeller:
		p.handleListBySeller(ctx, env.Payload, sender, reg)
	default:
		reg.SendTo(sender, errorMessage(fmt.Sprintf("unknown command kind: %s", env.Type)))
	}
}

// Snapshot sends the full ordered catalog to a single session. Used for the
// explicit list_all command and for the initial push on connect.
func (p *Processor) Snapshot(ctx context.Context, sender *Session, reg *Registry) {
	listings, err := p.repo.ListAll(ctx)
	if err != nil {
		reg.SendTo(sender, errorMessage("failed to load catalog"))
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	reg.SendTo(sender, Message{Type: KindCatalog, Payload: listings})
}

func (p *Processor) handleCreate(ctx context.Context, raw json.RawMessage, sender *Session, reg *Registry) {
	var req CreateListingPayload
	if err := json.Unmarshal(raw, &req); err != nil {
		reg.SendTo(sender, errorMessage("invalid create_listing payload"))
		return
	}

	listing := model.Listing{
		ID:            strings.TrimSpace(req.ID),
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		Condition:     strings.TrimSpace(req.Condition),
		Negotiable:    req.Negotiable,
		Location:      strings.TrimSpace(req.Location),
		PaymentOption: strings.TrimSpace(req.PaymentOption),
		SellerContact: strings.TrimSpace(req.SellerContact),
		SellerID:      strings.TrimSpace(req.SellerID),
		ImageRef:      strings.TrimSpace(req.ImageRef),
	}

	if msg := validateRequired([]requiredField{
		{"name", listing.Name},
		{"category", listing.Category},
		{"description", listing.Description},
		{"condition", listing.Condition},
		{"location", listing.Location},
		{"paymentOption", listing.PaymentOption},
		{"sellerContact", listing.SellerContact},
		{"sellerId", listing.SellerID},
		{"imageRef", listing.ImageRef},
	}); msg != "" {
		reg.SendTo(sender, errorMessage(msg))
		return
	}
	if req.Price == nil {
		reg.SendTo(sender, errorMessage("price is required"))
		return
	}
	if *req.Price < 0 {
		reg.SendTo(sender, errorMessage("price must be non-negative"))
		return
	}
	listing.Price = *req.Price

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	listing.UpdatedAtMS = p.clock.NowMS()

	if err := p.repo.Create(ctx, &listing); err != nil {
		reg.SendTo(sender, errorMessage("failed to save listing"))
		return
	}

	reg.SendTo(sender, Message{Type: KindCreateAck, Payload: IDPayload{ID: listing.ID}})
	reg.BroadcastExcept(Message{Type: KindListingCreated, Payload: listing}, sender)
}

func (p *Processor) handleUpdate(ctx context.Context, raw json.RawMessage, sender *Session, reg *Registry) {
	var req UpdateListingPayload
	if err := json.Unmarshal(raw, &req); err != nil {
		reg.SendTo(sender, errorMessage("invalid update_listing payload"))
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		reg.SendTo(sender, errorMessage("id is required"))
		return
	}

	listing, err := p.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reg.SendTo(sender, errorMessage("listing not found"))
			return
		}
		reg.SendTo(sender, errorMessage("failed to load listing"))
		return
	}

	if msg := applyUpdate(listing, &req); msg != "" {
		reg.SendTo(sender, errorMessage(msg))
		return
	}
	listing.UpdatedAtMS = p.clock.NowMS()

	rows, err := p.repo.Update(ctx, listing)
	if err != nil {
		reg.SendTo(sender, errorMessage("failed to save listing"))
		return
	}
	// A delete may land between the read and the write; zero affected rows
	// means the listing is gone and there is nothing to notify about.
	if rows == 0 {
		reg.SendTo(sender, errorMessage("listing not found"))
		return
	}

	reg.SendTo(sender, Message{Type: KindUpdateAck, Payload: IDPayload{ID: listing.ID}})
	reg.BroadcastExcept(Message{Type: KindListingUpdated, Payload: *listing}, sender)
}

func (p *Processor) handleDelete(ctx context.Context, raw json.RawMessage, sender *Session, reg *Registry) {
	var req DeleteListingPayload
	if err := json.Unmarshal(raw, &req); err != nil {
		reg.SendTo(sender, errorMessage("invalid delete_listing payload"))
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		reg.SendTo(sender, errorMessage("id is required"))
		return
	}

	rows, err := p.repo.Delete(ctx, id)
	if err != nil {
		reg.SendTo(sender, errorMessage("failed to delete listing"))
		return
	}

	// Deleting an absent id acks like a real delete but notifies nobody.
	reg.SendTo(sender, Message{Type: KindDeleteAck, Payload: IDPayload{ID: id}})
	if rows > 0 {
		reg.BroadcastExcept(Message{Type: KindListingDeleted, Payload: IDPayload{ID: id}}, sender)
	}
}

func (p *Processor) handleListBySeller(ctx context.Context, raw json.RawMessage, sender *Session, reg *Registry) {
	var req ListBySellerPayload
	if err := json.Unmarshal(raw, &req); err != nil {
		reg.SendTo(sender, errorMessage("invalid list_by_seller payload"))
		return
	}
	sellerID := strings.TrimSpace(req.SellerID)
	if sellerID == "" {
		reg.SendTo(sender, errorMessage("sellerId is required"))
		return
	}

	listings, err := p.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		reg.SendTo(sender, errorMessage("failed to load catalog"))
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	reg.SendTo(sender, Message{Type: KindSellerCatalog, Payload: listings})
}

type requiredField struct {
	name  string
	value string
}

func validateRequired(fields []requiredField) string {
	for _, f := range fields {
		if f.value == "" {
			return f.name + " is required"
		}
	}
	return ""
}

// applyUpdate copies the provided fields onto the listing. Provided strings
// must be non-empty after trimming and a provided price must be
// non-negative, matching the create-time rules.
func applyUpdate(listing *model.Listing, req *UpdateListingPayload) string {
	set := func(dst *string, name string, v *string) string {
		if v == nil {
			return ""
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			return name + " must not be empty"
		}
		*dst = t
		return ""
	}
	for _, f := range []struct {
		dst  *string
		name string
		v    *string
	}{
		{&listing.Name, "name", req.Name},
		{&listing.Category, "category", req.Category},
		{&listing.Description, "description", req.Description},
		{&listing.Condition, "condition", req.Condition},
		{&listing.Location, "location", req.Location},
		{&listing.PaymentOption, "paymentOption", req.PaymentOption},
		{&listing.SellerContact, "sellerContact", req.SellerContact},
		{&listing.ImageRef, "imageRef", req.ImageRef},
	} {
		if msg := set(f.dst, f.name, f.v); msg != "" {
			return msg
		}
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return "price must be non-negative"
		}
		listing.Price = *req.Price
	}
	if req.Negotiable != nil {
		listing.Negotiable = *req.Negotiable
	}
	return ""
}
