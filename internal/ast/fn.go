package ast

import "pine/internal/source"

type FnItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart ParamID
	ParamsCount uint32
	Return      Type
	Body        StmtID // всегда StmtBlock
	Span        source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// NewFn stores a function declaration together with its parameters.
func (i *Items) NewFn(name source.StringID, nameSpan source.Span, params []Param, ret Type, body StmtID, span source.Span) ItemID {
	start, count := i.allocParams(params)
	payload := i.Fns.Allocate(FnItem{
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: start,
		ParamsCount: count,
		Return:      ret,
		Body:        body,
		Span:        span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}

// FnParams returns the parameters of fn in declaration order.
func (i *Items) FnParams(fn *FnItem) []Param {
	return i.ParamRange(fn.ParamsStart, fn.ParamsCount)
}
