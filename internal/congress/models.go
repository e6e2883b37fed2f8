package congress

import (
	"fmt"
	"strings"
)

// Field names shared by the sort and display code. They match the JSON keys
// of both the summary record and its nested bill record.
const (
	FieldNumber        = "number"
	FieldActionDate    = "actionDate"
	FieldUpdateDate    = "updateDate"
	FieldOriginChamber = "originChamber"
	FieldTitle         = "title"
)

// BillRef is the bill record nested inside a summary.
type BillRef struct {
	Congress                int    `json:"congress"`
	Type                    string `json:"type"`
	Number                  string `json:"number"`
	OriginChamber           string `json:"originChamber"`
	OriginChamberCode       string `json:"originChamberCode"`
	Title                   string `json:"title"`
	URL                     string `json:"url"`
	ActionDate              string `json:"actionDate,omitempty"`
	UpdateDate              string `json:"updateDate,omitempty"`
	UpdateDateIncludingText string `json:"updateDateIncludingText,omitempty"`
}

// BillSummary is one entry of the summaries collection.
type BillSummary struct {
	ActionDate            string   `json:"actionDate"`
	ActionDesc            string   `json:"actionDesc"`
	UpdateDate            string   `json:"updateDate"`
	LastSummaryUpdateDate string   `json:"lastSummaryUpdateDate"`
	CurrentChamber        string   `json:"currentChamber"`
	CurrentChamberCode    string   `json:"currentChamberCode"`
	VersionCode           string   `json:"versionCode"`
	Text                  string   `json:"text"`
	Bill                  *BillRef `json:"bill,omitempty"`
}

// Pagination is the paging metadata returned next to each page.
type Pagination struct {
	Count int    `json:"count"`
	Next  string `json:"next,omitempty"`
}

// Page is one decoded response of the summaries endpoint.
type Page struct {
	Summaries  []BillSummary `json:"summaries"`
	Pagination Pagination    `json:"pagination"`
}

// Len returns the number of records on the page.
func (p Page) Len() int {
	return len(p.Summaries)
}

// ID identifies the bill a summary belongs to, e.g. "118-HR-16".
func (s BillSummary) ID() string {
	if s.Bill != nil && s.Bill.Number != "" {
		return fmt.Sprintf("%d-%s-%s", s.Bill.Congress, strings.ToUpper(s.Bill.Type), s.Bill.Number)
	}
	if u := s.DetailURL(); u != "" {
		return u
	}
	return s.VersionCode + "@" + s.UpdateDate
}

// Title returns the bill title, or "" when the summary carries no bill record.
func (s BillSummary) Title() string {
	if s.Bill == nil {
		return ""
	}
	return s.Bill.Title
}

// DetailURL returns the API URL of the bill's extended record.
func (s BillSummary) DetailURL() string {
	if s.Bill == nil {
		return ""
	}
	return s.Bill.URL
}

// Field looks a named field up on the nested bill record first, then on the
// summary itself, and returns "" when neither has a value.
func (s BillSummary) Field(name string) string {
	if s.Bill != nil {
		if v := s.Bill.field(name); v != "" {
			return v
		}
	}
	switch name {
	case FieldActionDate:
		return s.ActionDate
	case FieldUpdateDate:
		return s.UpdateDate
	}
	return ""
}

func (b *BillRef) field(name string) string {
	switch name {
	case FieldNumber:
		return b.Number
	case FieldOriginChamber:
		return b.OriginChamber
	case FieldTitle:
		return b.Title
	case FieldActionDate:
		return b.ActionDate
	case FieldUpdateDate:
		return b.UpdateDate
	}
	return ""
}

var billTypeSlugs = map[string]string{
	"HR":      "house-bill",
	"S":       "senate-bill",
	"HRES":    "house-resolution",
	"SRES":    "senate-resolution",
	"HJRES":   "house-joint-resolution",
	"SJRES":   "senate-joint-resolution",
	"HCONRES": "house-concurrent-resolution",
	"SCONRES": "senate-concurrent-resolution",
}

// PublicURL returns the congress.gov page for the bill, or "" if the summary
// does not carry enough information to build one.
func (s BillSummary) PublicURL() string {
	if s.Bill == nil || s.Bill.Congress <= 0 || s.Bill.Number == "" {
		return ""
	}
	slug, ok := billTypeSlugs[strings.ToUpper(s.Bill.Type)]
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://www.congress.gov/bill/%s-congress/%s/%s", ordinal(s.Bill.Congress), slug, s.Bill.Number)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
