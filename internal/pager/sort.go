// Package pager orders the working view and cuts out the displayed page.
package pager

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/matheuskafuri/billwatch/internal/congress"
)

// Column names a table column.
type Column string

const (
	ColumnNone          Column = ""
	ColumnNumber        Column = congress.FieldNumber
	ColumnActionDate    Column = congress.FieldActionDate
	ColumnUpdateDate    Column = congress.FieldUpdateDate
	ColumnOriginChamber Column = congress.FieldOriginChamber
	ColumnTitle         Column = congress.FieldTitle
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnNumber, ColumnActionDate, ColumnUpdateDate, ColumnOriginChamber, ColumnTitle}

// Sortable reports whether c can be sorted on. Titles cannot.
func (c Column) Sortable() bool {
	switch c {
	case ColumnNumber, ColumnActionDate, ColumnUpdateDate, ColumnOriginChamber:
		return true
	}
	return false
}

// Sort is the active ordering. The zero Sort keeps collection order.
type Sort struct {
	Column Column
	Order  Order
}

// Toggle returns the ordering after a click on column c: the active column
// flips direction, any other sortable column starts ascending, and
// unsortable columns leave the ordering unchanged.
func (s Sort) Toggle(c Column) Sort {
	if !c.Sortable() {
		return s
	}
	if s.Column == c {
		if s.Order == Asc {
			return Sort{Column: c, Order: Desc}
		}
		return Sort{Column: c, Order: Asc}
	}
	return Sort{Column: c, Order: Asc}
}

// SortBills returns a sorted copy of bills.
//
// Values are read with BillSummary.Field and compared as plain strings, so
// dates order by their raw ISO text rather than as instants. The sort is
// stable; equal values keep collection order in both directions.
func SortBills(bills []congress.BillSummary, s Sort) []congress.BillSummary {
	sorted := make([]congress.BillSummary, len(bills))
	copy(sorted, bills)
	if !s.Column.Sortable() {
		return sorted
	}

	field := string(s.Column)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Field(field), sorted[j].Field(field)
		if s.Order == Desc {
			return a > b
		}
		return a < b
	})
	return sorted
}

// ParseSort parses "column" or "column:order"; the order defaults to asc.
func ParseSort(expr string) (Sort, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Sort{}, nil
	}
	field, order, found := strings.Cut(expr, ":")
	col := Column(strings.TrimSpace(field))
	if !col.Sortable() {
		return Sort{}, fmt.Errorf("invalid sort column %q (valid: %s)", field, strings.Join(sortableNames(), ", "))
	}
	s := Sort{Column: col, Order: Asc}
	if found {
		switch Order(strings.ToLower(strings.TrimSpace(order))) {
		case Asc:
		case Desc:
			s.Order = Desc
		default:
			return Sort{}, errors.New("sort order must be 'asc' or 'desc'")
		}
	}
	return s, nil
}

func sortableNames() []string {
	var names []string
	for _, c := range Columns {
		if c.Sortable() {
			names = append(names, string(c))
		}
	}
	return names
}
