package types

import (
	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/units"
)

// ConvertRequest is the body of POST /convert.
type ConvertRequest = convert.Request

// ConvertResponse is returned by POST /convert. Result is nil when there was
// nothing to convert; Reason then says why.
type ConvertResponse struct {
	Category  string   `json:"category"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Result    *float64 `json:"result"`
	Formatted string   `json:"formatted"`
	Reason    string   `json:"reason,omitempty"`
}

// UnitInfo describes a unit of a category.
type UnitInfo struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Rule       string            `json:"rule"`
	Multiplier float64           `json:"multiplier,omitempty"`
	Base       bool              `json:"base,omitempty"`
	MultiInput *units.MultiInput `json:"multiInput,omitempty"`
}

// CategoryInfo describes a category and its units in display order.
type CategoryInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Units []UnitInfo `json:"units"`
}

// NewCategoryInfo converts a registry category to its wire form.
func NewCategoryInfo(c *units.Category) CategoryInfo {
	info := CategoryInfo{ID: c.ID, Name: c.Name}
	for _, u := range c.Units() {
		info.Units = append(info.Units, UnitInfo{
			ID:         u.ID,
			Label:      u.Label,
			Rule:       u.Rule.String(),
			Multiplier: u.Multiplier,
			Base:       u.IsBase(),
			MultiInput: u.MultiInput,
		})
	}
	return info
}

// NewConvertResponse builds the wire form of an evaluation result.
func NewConvertResponse(req ConvertRequest, res convert.Result, precision int, group bool) ConvertResponse {
	resp := ConvertResponse{
		Category: req.Category,
		From:     req.From,
		To:       req.To,
		Reason:   string(res.Reason),
	}
	if res.OK() {
		v := res.Value
		resp.Result = &v
		resp.Formatted = convert.Format(v, precision, group)
	}
	return resp
}
