package domain

import "github.com/shopspring/decimal"

// DateLayout is the calendar-date format used by every persisted date field.
const DateLayout = "2006-01-02"

type PropertyType string

const (
	PropertyApartment PropertyType = "Apartment"
	PropertyVilla     PropertyType = "Villa"
	PropertyBuilding  PropertyType = "Building"
	PropertyOther     PropertyType = "Other"
)

type ItemStatus string

const (
	StatusPass          ItemStatus = "Pass"
	StatusFail          ItemStatus = "Fail"
	StatusNotApplicable ItemStatus = "N/A"
)

type PropertyUse string

const (
	UseResidential PropertyUse = "Residential"
	UseCommercial  PropertyUse = "Commercial"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "Draft"
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoicePartial InvoiceStatus = "Partial"
	InvoicePaid    InvoiceStatus = "Paid"
)

type InvoiceTemplate string

const (
	TemplateClassic InvoiceTemplate = "classic"
	TemplateModern  InvoiceTemplate = "modern"
	TemplateCompact InvoiceTemplate = "compact"
)

// Inspection is a single property-visit record. Areas keep insertion order;
// the report renderer lays them out in the order they were entered.
type Inspection struct {
	ID               string       `json:"id"`
	ClientName       string       `json:"clientName"`
	PropertyLocation string       `json:"propertyLocation"`
	PropertyType     PropertyType `json:"propertyType"`
	InspectorName    string       `json:"inspectorName"`
	InspectionDate   string       `json:"inspectionDate"`
	Areas            []Area       `json:"areas"`
	AISummary        string       `json:"aiSummary,omitempty"`
}

type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Item struct {
	ID       string     `json:"id"`
	Category string     `json:"category"`
	Point    string     `json:"point"`
	Status   ItemStatus `json:"status"`
	Location string     `json:"location,omitempty"`
	Comments string     `json:"comments,omitempty"`
	Photos   []Photo    `json:"photos"`
}

// Photo holds the base64-encoded image payload inline; there is no separate
// blob storage, the photo travels with its inspection record.
type Photo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
}

type Client struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	Properties []Property `json:"properties"`
	CreatedAt  string     `json:"createdAt"`
}

type Property struct {
	ID       string          `json:"id"`
	Location string          `json:"location"`
	Type     PropertyUse     `json:"type"`
	Size     decimal.Decimal `json:"size"`
}

// Invoice carries a denormalized snapshot of the client taken at creation or
// edit time; later client edits do not touch existing invoices.
type Invoice struct {
	ID               string          `json:"id"`
	InvoiceNumber    string          `json:"invoiceNumber"`
	InvoiceDate      string          `json:"invoiceDate"`
	DueDate          string          `json:"dueDate"`
	ClientID         string          `json:"clientId"`
	ClientName       string          `json:"clientName"`
	ClientAddress    string          `json:"clientAddress,omitempty"`
	ClientEmail      string          `json:"clientEmail,omitempty"`
	PropertyLocation string          `json:"propertyLocation,omitempty"`
	Services         []ServiceLine   `json:"services"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Status           InvoiceStatus   `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	Template         InvoiceTemplate `json:"template"`
}

type ServiceLine struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}
