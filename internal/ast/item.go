package ast

import (
	"fmt"

	"fortio.org/safecast"

	"pine/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemType
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// Param is a `name: type` pair; used for function parameters and struct fields.
type Param struct {
	Name source.StringID
	Type Type
	Span source.Span
}

type Items struct {
	Arena  *Arena[Item]
	Fns    *Arena[FnItem]
	Types  *Arena[TypeItem]
	Params *Arena[Param]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:  NewArena[Item](capHint),
		Fns:    NewArena[FnItem](capHint),
		Types:  NewArena[TypeItem](capHint),
		Params: NewArena[Param](capHint * 2),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// allocParams stores params contiguously and returns the first id and count.
func (i *Items) allocParams(params []Param) (ParamID, uint32) {
	if len(params) == 0 {
		return NoParamID, 0
	}
	count, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("param count overflow: %w", err))
	}
	var first ParamID
	for idx, p := range params {
		id := ParamID(i.Params.Allocate(p))
		if idx == 0 {
			first = id
		}
	}
	return first, count
}

// ParamRange returns the params stored by allocParams.
func (i *Items) ParamRange(start ParamID, count uint32) []Param {
	if !start.IsValid() || count == 0 {
		return nil
	}
	base := uint32(start) - 1
	return i.Params.Slice()[base : base+count]
}
