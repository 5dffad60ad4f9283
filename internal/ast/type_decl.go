package ast

import "pine/internal/source"

// TypeItem is a struct ("type object") declaration.
type TypeItem struct {
	Name        source.StringID
	NameSpan    source.Span
	FieldsStart ParamID
	FieldsCount uint32
	Span        source.Span
}

func (i *Items) Type(id ItemID) (*TypeItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemType {
		return nil, false
	}
	return i.Types.Get(uint32(item.Payload)), true
}

func (i *Items) NewType(name source.StringID, nameSpan source.Span, fields []Param, span source.Span) ItemID {
	start, count := i.allocParams(fields)
	payload := i.Types.Allocate(TypeItem{
		Name:        name,
		NameSpan:    nameSpan,
		FieldsStart: start,
		FieldsCount: count,
		Span:        span,
	})
	return i.New(ItemType, span, PayloadID(payload))
}

// TypeFields returns the fields of decl in declaration order.
func (i *Items) TypeFields(decl *TypeItem) []Param {
	return i.ParamRange(decl.FieldsStart, decl.FieldsCount)
}
