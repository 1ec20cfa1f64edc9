package stock

import "github.com/google/uuid"

// ItemKind distinguishes the two stockable identities.
type ItemKind string

const (
	ItemKindProduct ItemKind = "product"
	ItemKindVariant ItemKind = "variant"
)

// ItemRef identifies one stockable item: either a plain product or one of
// its variants. Stock rows key on exactly one of the two IDs, never both.
type ItemRef struct {
	kind  ItemKind
	id    uuid.UUID
	label string
}

// ProductRef builds a reference to a plain product. The label is used in
// operator-facing messages, typically the product name.
func ProductRef(id uuid.UUID, label string) ItemRef {
	return ItemRef{kind: ItemKindProduct, id: id, label: label}
}

// VariantRef builds a reference to a product variant.
func VariantRef(id uuid.UUID, label string) ItemRef {
	return ItemRef{kind: ItemKindVariant, id: id, label: label}
}

// Kind returns the reference kind.
func (r ItemRef) Kind() ItemKind {
	return r.kind
}

// ID returns the referenced product or variant ID.
func (r ItemRef) ID() uuid.UUID {
	return r.id
}

// Label returns the display label for messages.
func (r ItemRef) Label() string {
	return r.label
}

// ProductID returns the product ID when the reference is a product.
func (r ItemRef) ProductID() *uuid.UUID {
	if r.kind != ItemKindProduct {
		return nil
	}
	id := r.id
	return &id
}

// VariantID returns the variant ID when the reference is a variant.
func (r ItemRef) VariantID() *uuid.UUID {
	if r.kind != ItemKindVariant {
		return nil
	}
	id := r.id
	return &id
}
